// Package hooks provides pre/post interception points for the
// authentication request lifecycle. Callbacks register against a named
// lifecycle path; before-callbacks may deny the request with an error,
// after-callbacks observe the outcome and cannot affect the response.
package hooks

import (
	"context"

	"github.com/nqhuy/signup-gate/model"
)

// Lifecycle paths callbacks can register against.
const (
	PathSignUpEmail = "/sign-up/email"
	PathSignInEmail = "/sign-in/email"
)

// Request carries the inbound request state visible to before-callbacks.
type Request struct {
	Path  string
	Email string
}

// Result carries the outcome of a completed lifecycle operation.
type Result struct {
	Path string
	User *model.User
}

// BeforeFunc runs before the lifecycle operation. Returning a non-nil error
// denies the request and short-circuits both remaining callbacks and the
// operation itself.
type BeforeFunc func(ctx context.Context, req *Request) error

// AfterFunc runs after the lifecycle operation completes successfully.
type AfterFunc func(ctx context.Context, res *Result)

type Registry struct {
	before map[string][]BeforeFunc
	after  map[string][]AfterFunc
}

func NewRegistry() *Registry {
	return &Registry{
		before: make(map[string][]BeforeFunc),
		after:  make(map[string][]AfterFunc),
	}
}

func (r *Registry) Before(path string, fn BeforeFunc) {
	r.before[path] = append(r.before[path], fn)
}

func (r *Registry) After(path string, fn AfterFunc) {
	r.after[path] = append(r.after[path], fn)
}

// RunBefore invokes the before-callbacks registered for req.Path in
// registration order, stopping at the first denial.
func (r *Registry) RunBefore(ctx context.Context, req *Request) error {
	for _, fn := range r.before[req.Path] {
		if err := fn(ctx, req); err != nil {
			return err
		}
	}
	return nil
}

// RunAfter invokes the after-callbacks registered for res.Path. Callbacks
// are observe-only; RunAfter has no return value to propagate.
func (r *Registry) RunAfter(ctx context.Context, res *Result) {
	for _, fn := range r.after[res.Path] {
		fn(ctx, res)
	}
}
