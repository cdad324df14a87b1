package datahandler

import (
	"github.com/stabilefrisur/aa-data-handler/pkg/core"
	"github.com/stabilefrisur/aa-data-handler/pkg/typed"
)

// TypedHandler narrows saves and loads to one payload variant.
type TypedHandler[T core.Payload] = typed.Service[T]

// NewTyped wraps h for the payload variant T, e.g. NewTyped[Table](h).
func NewTyped[T core.Payload](h *Handler) *TypedHandler[T] {
	return typed.NewService[T](h)
}
