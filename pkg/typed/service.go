// Package typed narrows loads to a single payload variant.
package typed

import (
	"context"
	"fmt"

	"github.com/stabilefrisur/aa-data-handler/pkg/core"
)

// Service wraps a core.Service to provide type-safe access to one payload
// variant. T is core.Table, core.Series, core.Book or core.Chart.
type Service[T core.Payload] struct {
	svc *core.Service
}

// NewService creates a new typed service wrapper.
func NewService[T core.Payload](svc *core.Service) *Service[T] {
	return &Service[T]{svc: svc}
}

// Save persists v. See core.Service.Save.
func (s *Service[T]) Save(ctx context.Context, v T, name string, f core.Format, dir string, opts ...core.SaveOption) (core.Entry, error) {
	return s.svc.Save(ctx, v, name, f, dir, opts...)
}

// Load resolves q to exactly one file and returns its payload as T.
func (s *Service[T]) Load(ctx context.Context, q core.Query) (T, error) {
	var zero T
	p, err := s.svc.LoadOne(ctx, q)
	if err != nil {
		return zero, err
	}
	return As[T](p)
}

// LoadAll resolves q and converts every match. The first file holding
// another variant fails the whole load.
func (s *Service[T]) LoadAll(ctx context.Context, q core.Query) ([]T, error) {
	res, err := s.svc.Load(ctx, q)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(res))
	for _, l := range res {
		v, err := As[T](l.Payload)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", l.Path, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// As converts p to T. A Series is accepted where a Table is wanted and is
// converted with Series.Frame. An xlsx file with several sheets loads as a
// Book, so Table requests for it fail.
func As[T core.Payload](p core.Payload) (T, error) {
	var zero T
	if v, ok := p.(T); ok {
		return v, nil
	}
	if s, ok := p.(core.Series); ok {
		if v, ok := any(s.Frame()).(T); ok {
			return v, nil
		}
	}
	return zero, fmt.Errorf("%w: got %s, want %s", core.ErrUnsupportedType, kindOf(p), kindOf(zero))
}

func kindOf(p core.Payload) string {
	if p == nil {
		return "nil payload"
	}
	return p.Kind()
}
