// Package customers answers whether a customer is known to the platform,
// backed by the customer directory gRPC service.
package customers

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ExistsMethod is the full gRPC method name of the directory lookup.
const ExistsMethod = "/customers.v1.CustomerDirectory/Exists"

// GRPCDirectory is a customer directory backed by gRPC.
type GRPCDirectory struct {
	conn grpc.ClientConnInterface
}

// NewGRPCDirectory creates a directory over conn.
func NewGRPCDirectory(conn grpc.ClientConnInterface) *GRPCDirectory {
	if conn == nil {
		return nil
	}
	return &GRPCDirectory{conn: conn}
}

// Dial opens a plaintext client connection to addr.
func Dial(addr string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, fmt.Errorf("customer directory: empty address")
	}
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("customer directory: dial %s: %w", addr, err)
	}
	return conn, nil
}

// Exists reports whether the customer is registered. A NotFound status is a
// plain "no".
func (d *GRPCDirectory) Exists(ctx context.Context, customerID string) (bool, error) {
	out := new(wrapperspb.BoolValue)
	err := d.conn.Invoke(ctx, ExistsMethod, wrapperspb.String(customerID), out)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, fmt.Errorf("customer directory: Exists: %w", err)
	}
	return out.GetValue(), nil
}
