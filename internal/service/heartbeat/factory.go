package heartbeat

import (
	"context"
	"strings"
)

type actionFunc func(context.Context, Event) error

type actionFactory struct {
	byKind map[string]actionFunc
}

func newActionFactory(onOnline, onOffline, onBusy, onLocation actionFunc) *actionFactory {
	return &actionFactory{
		byKind: map[string]actionFunc{
			KindOnline:    onOnline,
			KindAvailable: onOnline,
			KindOffline:   onOffline,
			KindBusy:      onBusy,
			KindLocation:  onLocation,
		},
	}
}

func (f *actionFactory) get(kind string) (actionFunc, bool) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	fn, ok := f.byKind[kind]
	return fn, ok
}
