// Package job runs compress/decompress operations as cancellable,
// named background jobs: at most one job may be in flight under a
// given name at a time, and a caller elsewhere in the process can look
// one up by name and cancel it.
package job

import (
	"context"
	"sync"
	"time"

	"github.com/akiutoslahti/go-salz/common/errs"
)

// Runner is one unit of work a job manager can launch: Compress and
// Decompress both implement it.
type Runner interface {
	Run(ctx context.Context) error
}

type info struct {
	runner Runner
	cancel context.CancelFunc
}

type manager struct {
	jobs sync.Map
}

// Manager is the process-wide job registry.
var Manager = &manager{}

// Launch registers runner under name and runs it to completion,
// blocking the calling goroutine. It returns errs.ErrDuplicateJob
// without running anything if name is already in flight. timeout <= 0
// means no deadline.
func Launch(name string, runner Runner, timeout time.Duration) error {
	if _, loaded := Manager.jobs.LoadOrStore(name, (*info)(nil)); loaded {
		return errs.ErrDuplicateJob
	}

	ctx := context.Background()
	var cancel context.CancelFunc
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	Manager.jobs.Store(name, &info{runner: runner, cancel: cancel})
	defer func() {
		cancel()
		Manager.jobs.Delete(name)
	}()

	return runner.Run(ctx)
}

// Stop cancels the job registered under name. It returns
// errs.ErrJobNotFound if no job is registered under that name.
func Stop(name string) error {
	v, ok := Manager.jobs.Load(name)
	if !ok {
		return errs.ErrJobNotFound
	}
	i, ok := v.(*info)
	if !ok || i == nil {
		return errs.ErrJobNotFound
	}
	i.cancel()
	return nil
}

// Names returns the names of all currently registered jobs.
func Names() []string {
	var names []string
	Manager.jobs.Range(func(key, value interface{}) bool {
		if _, ok := value.(*info); ok {
			names = append(names, key.(string))
		}
		return true
	})
	return names
}
