// Package deadline runs a cancellable call against a timer.
package deadline

import (
	"context"
	"errors"
	"time"
)

// ErrExpired is returned by Race when its own timeout fires first.
var ErrExpired = errors.New("deadline: timeout expired")

type outcome[T any] struct {
	val T
	err error
}

// Race runs fn with a context that is cancelled after timeout and returns as soon
// as either fn finishes or the timeout fires, whichever comes first. fn keeps
// running in the background after an expiry until it observes cancellation.
//
// If the timeout fires, Race returns ErrExpired. If the parent context ends
// first, its error is returned unchanged so callers can tell an outer deadline
// from this one.
func Race[T any](parent context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	done := make(chan outcome[T], 1)
	go func() {
		v, err := fn(ctx)
		done <- outcome[T]{val: v, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil && ctx.Err() != nil {
			if perr := parent.Err(); perr != nil {
				return zero, perr
			}
			return zero, ErrExpired
		}
		return out.val, out.err
	case <-ctx.Done():
		if perr := parent.Err(); perr != nil {
			return zero, perr
		}
		return zero, ErrExpired
	}
}
