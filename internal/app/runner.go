package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"go.uber.org/dig"

	"rider-dispatch/internal/config"
	"rider-dispatch/internal/logx"
	"rider-dispatch/internal/service/dispatch"
	"rider-dispatch/internal/service/sweeper"
)

const shutdownTimeout = 15 * time.Second

// MustRun starts the API using the provided DI container and blocks until
// the container context is done.
func MustRun(container *dig.Container) {
	if err := run(container); err != nil {
		switch {
		case errors.Is(err, context.Canceled):
			log.Println("shutdown requested, exiting")
			return
		case errors.Is(err, context.DeadlineExceeded):
			log.Println("startup aborted: startup timeout exceeded")
			return
		default:
			log.Fatalf("run error: %v", err)
		}
	}
}

type apiIn struct {
	dig.In
	Ctx         context.Context
	Config      *config.Config
	Logger      logx.Logger
	Server      *http.Server `name:"api_server"`
	Pprof       *http.Server `name:"pprof_server"`
	Coordinator *dispatch.Coordinator
	Sweeper     *sweeper.Sweeper
	Res         *resources
}

func run(container *dig.Container) error {
	return container.Invoke(apiRun)
}

func apiRun(in apiIn) error {
	logger := in.Logger
	defer in.Res.closeAll(logger)

	errCh := make(chan error, 2)
	startServer(in.Server, "dispatch-api", logger, errCh)
	if in.Pprof != nil {
		startServer(in.Pprof, "pprof", logger, errCh)
	}

	resumePending(in.Ctx, in.Coordinator, logger)

	if in.Config.Sweeper.InProcess {
		if err := in.Sweeper.Start(in.Ctx); err != nil {
			shutdown(logger, in.Server, in.Pprof)
			return err
		}
		defer in.Sweeper.Stop()
	}

	var runErr error
	select {
	case <-in.Ctx.Done():
		logger.Info("shutting down dispatch-api")
	case runErr = <-errCh:
		logger.Error("server stopped unexpectedly", logx.Err(runErr))
	}
	shutdown(logger, in.Server, in.Pprof)
	return runErr
}

func startServer(srv *http.Server, name string, logger logx.Logger, errCh chan<- error) {
	go func() {
		logger.Info(name+" listening", logx.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("%s listen: %w", name, err)
		}
	}()
}

// shutdown drains every non-nil server within shutdownTimeout.
func shutdown(logger logx.Logger, servers ...*http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for _, srv := range servers {
		if srv == nil {
			continue
		}
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("graceful shutdown error", logx.String("addr", srv.Addr), logx.Err(err))
			if err := srv.Close(); err != nil {
				logger.Error("server close error", logx.String("addr", srv.Addr), logx.Err(err))
			}
		}
	}
}
