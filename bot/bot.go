package bot

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Transport connects a chat network to the Handler.
type Transport interface {
	Run(ctx context.Context) error
}

// Run runs every transport until ctx is cancelled or one of them fails,
// in which case the others are stopped too.
func Run(ctx context.Context, transports ...Transport) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, t := range transports {
		g.Go(func() error {
			return t.Run(ctx)
		})
	}
	return g.Wait()
}

// Serve starts liveness immediately and the transports returned by connect
// once connect succeeds. A connect error stops liveness too.
func Serve(ctx context.Context, liveness Transport, connect func(context.Context) ([]Transport, error)) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return liveness.Run(ctx)
	})
	g.Go(func() error {
		transports, err := connect(ctx)
		if err != nil {
			return err
		}
		return Run(ctx, transports...)
	})
	return g.Wait()
}
