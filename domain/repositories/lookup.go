package repositories

import (
	"context"
	"errors"

	"github.com/satriahrh/starlight/domain"
)

// ErrNotImplemented is returned by lookups that have no backend configured
var ErrNotImplemented = errors.New("not implemented")

// CoordinateLookup resolves a sky position to a plain-text answer
type CoordinateLookup interface {
	Lookup(ctx context.Context, coords domain.Coordinates) (string, error)
}
