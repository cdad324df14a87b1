// Package lifecycle exposes file log saves as a lifecycle event source.
package lifecycle

import (
	"context"
	"fmt"

	"github.com/aretw0/lifecycle"

	"github.com/stabilefrisur/aa-data-handler/pkg/core"
)

// SaveEvent announces one save recorded in the file log.
type SaveEvent struct {
	core.Entry
}

func (e SaveEvent) String() string {
	return fmt.Sprintf("saved %s at %s (id %s)", e.Path, e.Timestamp, e.ID)
}

// Follower streams file log entries as they are appended.
// *filelog.Log satisfies it.
type Follower interface {
	Follow(ctx context.Context) (<-chan core.Entry, error)
}

type saveSource struct {
	log Follower
	out chan lifecycle.Event
}

// NewSource creates a lifecycle.Source emitting a SaveEvent for every entry
// appended to log after Start.
func NewSource(log Follower) lifecycle.Source {
	return &saveSource{
		log: log,
		out: make(chan lifecycle.Event),
	}
}

func (s *saveSource) Events() <-chan lifecycle.Event {
	return s.out
}

// Start begins following the log. The events channel is closed when ctx is
// done or the follow stream ends. If Start fails it is never closed.
func (s *saveSource) Start(ctx context.Context) error {
	entries, err := s.log.Follow(ctx)
	if err != nil {
		return fmt.Errorf("failed to follow file log: %w", err)
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-entries:
				if !ok {
					return nil
				}
				select {
				case s.out <- SaveEvent{Entry: e}:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
