package strategy

import (
	"context"
	"fmt"

	"library-auth/internal/auth"
)

// Registry maps method names to strategies. Built once during setup
// and immutable afterwards.
type Registry struct {
	strategies map[string]Strategy
}

// NewRegistry registers the given strategies by name.
// Strategy names must be unique.
func NewRegistry(list ...Strategy) *Registry {
	m := make(map[string]Strategy, len(list))
	for _, s := range list {
		m[s.Name()] = s
	}
	return &Registry{strategies: m}
}

// Authenticate dispatches to the named strategy.
func (r *Registry) Authenticate(ctx context.Context, method string, in Input) (auth.Outcome, error) {
	s, ok := r.strategies[method]
	if !ok {
		return auth.Outcome{}, fmt.Errorf("%w: %s", auth.ErrUnknownStrategy, method)
	}
	return s.Authenticate(ctx, in)
}

// Names lists the registered method names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	return names
}
