package weapons

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks -source=interface.go

import (
	"context"
	"time"

	"github.com/KirkDiggler/quakecraft-arsenal/internal/identifier"
)

// Repository persists weapon definitions so tuning survives restarts
type Repository interface {
	// Save creates or replaces a definition
	Save(ctx context.Context, def *Definition) error

	// Get retrieves a definition by weapon identifier
	Get(ctx context.Context, id identifier.Identifier) (*Definition, error)

	// List returns every stored definition ordered by identifier
	List(ctx context.Context) ([]*Definition, error)

	// Delete removes a definition
	Delete(ctx context.Context, id identifier.Identifier) error
}

// TimeProvider stamps definitions on save
type TimeProvider interface {
	Now() time.Time
}

type systemTime struct{}

func (systemTime) Now() time.Time { return time.Now().UTC() }

// SystemTime returns a TimeProvider backed by the wall clock
func SystemTime() TimeProvider { return systemTime{} }
