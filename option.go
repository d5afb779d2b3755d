package memtree

// options configures tree behavior.
type options[T any] struct {
	logger   Logger
	freeList *FreeList[T]
}

// defaultOptions returns safe default configuration.
func defaultOptions[T any]() options[T] {
	return options[T]{
		logger: DiscardLogger{},
	}
}

// Option configures tree options using the functional options pattern.
type Option[T any] func(*options[T])

// WithLogger sets the logger used for structural events (depth changes) and
// failed invariant checks. The default discards everything.
func WithLogger[T any](l Logger) Option[T] {
	return func(opts *options[T]) {
		opts.logger = l
	}
}

// WithFreeList sets a custom node free list, typically to share one between
// several trees storing the same key type.
func WithFreeList[T any](f *FreeList[T]) Option[T] {
	return func(opts *options[T]) {
		opts.freeList = f
	}
}
