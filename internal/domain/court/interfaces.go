package court

import (
	"context"

	"beachbox/internal/domain/unit"
)

// UnitLookup resolves the unit a court is attached to.
type UnitLookup interface {
	GetByID(ctx context.Context, id int64) (*unit.Unit, error)
}
