package gateway

import (
	"context"
	"iter"
	"time"
)

// pageFunc fetches the next page and reports whether the provider has another one.
// Cursor or link state lives in the closure, so a sequence built from it cannot be restarted.
type pageFunc[T any] func(ctx context.Context) (items []T, more bool, err error)

// pages turns next into a finite sequence of pages, waiting delay between requests.
// The sequence ends after the last page or the first error.
func pages[T any](ctx context.Context, next pageFunc[T], delay time.Duration) iter.Seq2[[]T, error] {
	done := false
	return func(yield func([]T, error) bool) {
		for first := true; !done; first = false {
			if !first && delay > 0 {
				timer := time.NewTimer(delay)
				select {
				case <-ctx.Done():
					timer.Stop()
					done = true
					yield(nil, ctx.Err())
					return
				case <-timer.C:
				}
			}

			items, more, err := next(ctx)
			if err != nil {
				done = true
				yield(nil, err)
				return
			}
			done = !more
			if !yield(items, nil) {
				return
			}
		}
	}
}

// collectPages drains seq into a single slice.
func collectPages[T any](seq iter.Seq2[[]T, error]) ([]T, error) {
	all := []T{}
	for page, err := range seq {
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
	}
	return all, nil
}
