package database

import (
	"context"
	"time"
)

// Pinger is a dependency that can report whether it is reachable.
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}

// CheckAll pings every dependency with a per-check timeout and returns "ok" or the error
// text keyed by name. ready is false if any check failed.
func CheckAll(ctx context.Context, timeout time.Duration, pingers ...Pinger) (status map[string]string, ready bool) {
	status = make(map[string]string, len(pingers))
	ready = true
	for _, p := range pingers {
		checkCtx, cancel := context.WithTimeout(ctx, timeout)
		err := p.Ping(checkCtx)
		cancel()
		if err != nil {
			status[p.Name()] = err.Error()
			ready = false
			continue
		}
		status[p.Name()] = "ok"
	}
	return status, ready
}
