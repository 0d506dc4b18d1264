package storage

import (
	"context"

	"github.com/alaines/alertas-api/pkg/models"
	"github.com/alaines/alertas-api/pkg/resources"
)

// IncidentsRepo is read-only. Incident rows are ingested by an external
// pipeline and only consulted here.
type IncidentsRepo interface {
	Count(ctx context.Context, queryParams *resources.QueryParameters) (int, error)
	SelectAll(ctx context.Context, queryParams *resources.QueryParameters) ([]models.Incident, error)
	SelectExists(ctx context.Context, id int64) (bool, *models.Incident, error)
	SelectExistsByUUID(ctx context.Context, uuid string) (bool, *models.Incident, error)

	// SelectNearCandidates returns incidents inside the bounding box
	// enclosing the search circle, narrowed by the given filters. Exact
	// distance filtering happens in the service layer.
	SelectNearCandidates(ctx context.Context, minLat, maxLat, minLon, maxLon float64, filters []resources.FilterOption) ([]models.Incident, error)
}
