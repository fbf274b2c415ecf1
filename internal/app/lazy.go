package app

import (
	"context"
	"sync"
)

// Lazy builds the container on first use so persistent CLI flags are parsed
// before configuration is loaded.
type Lazy struct {
	Options Options

	once      sync.Once
	container *Container
	err       error
}

// NewLazy returns a holder that will build with opts.
func NewLazy(opts Options) *Lazy {
	return &Lazy{Options: opts}
}

// Preloaded wraps an already built container.
func Preloaded(c *Container) *Lazy {
	l := &Lazy{container: c}
	l.once.Do(func() {})
	return l
}

// Get builds the container once and returns it.
func (l *Lazy) Get(ctx context.Context) (*Container, error) {
	l.once.Do(func() {
		l.container, l.err = BuildContainer(ctx, l.Options)
	})
	return l.container, l.err
}

// Close releases the container if it was built.
func (l *Lazy) Close() error {
	if l.container == nil {
		return nil
	}
	return l.container.Close()
}
