package async

import (
	"context"
	"runtime/debug"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
)

// Gather runs fn for every index in [0, n) concurrently and collects the
// results positionally.
//
// Parameters:
//   - ctx: Parent context. It is cancelled for the remaining tasks once any task fails
//   - n: Number of tasks
//   - limit: Maximum number of tasks running at once. Zero or negative means unbounded
//   - fn: Task function. It receives the task index
//
// Behavior:
//   - results[i] is the value returned by fn(ctx, i), regardless of completion order
//   - Returns the first error and discards all results if any task fails
//   - Recovers from panics, logs them with stack trace and turns them into errors
func Gather[T any](ctx context.Context, n, limit int, fn func(ctx context.Context, i int) (T, error)) ([]T, error) {
	results := make([]T, n)
	if n == 0 {
		return results, nil
	}

	eg, egCtx := errgroup.WithContext(ctx)
	if limit > 0 {
		eg.SetLimit(limit)
	}

	for i := range n {
		eg.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					stack := debug.Stack()
					ctxlog.From(egCtx).Error("panic in async task",
						"index", i,
						"recover", r,
						"stack", string(stack))
					err = goerr.New("panic in async task",
						goerr.V("index", i),
						goerr.V("recover", r))
				}
			}()

			v, err := fn(egCtx, i)
			if err != nil {
				return err
			}
			results[i] = v
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
