package live

import (
	"context"

	authModels "tennis-stats-api/packages/auth/models"
	"tennis-stats-api/packages/core/models"
)

// Store persists the statistics of one (set, match player) pair.
//
// Load returns the three records normalized, defaults included when nothing
// was saved yet. SaveAll upserts the three records independently and reports
// each table on its own.
type Store interface {
	Load(ctx context.Context, auth authModels.AuthContext, setID, matchPlayerID uint) (*models.SetStatsBundle, error)
	SaveAll(ctx context.Context, auth authModels.AuthContext, bundle models.SetStatsBundle) models.SaveResult
}
