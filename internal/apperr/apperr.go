// Package apperr classifies course pipeline failures so handlers can map them
// to status codes and clients can tell them apart.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the category of a pipeline failure.
type Kind string

const (
	KindValidation           Kind = "ValidationError"
	KindBatchLimitExceeded   Kind = "BatchLimitExceeded"
	KindUpstream             Kind = "UpstreamServiceError"
	KindLLMTimeout           Kind = "LlmTimeout"
	KindModelUnavailable     Kind = "ModelUnavailable"
	KindMalformedModelOutput Kind = "MalformedModelOutput"
	KindPipelineTimeout      Kind = "PipelineTimeout"
	KindInternal             Kind = "InternalError"
)

// Error is a classified failure. Op names the stage that failed.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New wraps err with a kind and operation name.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Errorf builds a classified error from a format string.
func Errorf(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the kind of the outermost *Error in err's chain, or
// KindInternal when there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// ModelUnavailable reports whether err is a model-stage failure that survived retries.
func ModelUnavailable(err error) bool {
	k := KindOf(err)
	return k == KindLLMTimeout || k == KindModelUnavailable || k == KindMalformedModelOutput
}

// HTTPStatus maps a kind to the status code returned to clients.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindValidation, KindBatchLimitExceeded:
		return http.StatusBadRequest
	case KindPipelineTimeout:
		return http.StatusRequestTimeout
	case KindLLMTimeout, KindModelUnavailable, KindMalformedModelOutput:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
