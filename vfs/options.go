package vfs

import "time"

type options struct {
	now func() time.Time
}

// Option configures image building and mutation.
type Option func(*options)

// WithClock sets the time source for every timestamp written.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func newOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) epoch() uint64 {
	return uint64(o.now().Unix())
}
