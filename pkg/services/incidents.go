package services

import (
	"context"

	"github.com/alaines/alertas-api/pkg/models"
	"github.com/alaines/alertas-api/pkg/resources"
)

type IncidentsService interface {
	GetIncidents(ctx context.Context, input GetIncidentsInput) ([]models.Incident, error)
	GetIncidentByID(ctx context.Context, input GetIncidentByIDInput) (*models.Incident, error)
	GetIncidentsNear(ctx context.Context, input GetIncidentsNearInput) ([]models.IncidentWithDistance, error)
}

type GetIncidentsInput struct {
	QueryParameters *resources.QueryParameters
}

type GetIncidentByIDInput struct {
	ID int64 `validate:"required,gt=0"`
}

// GetIncidentsNearInput uses pointers so that "absent" and "zero" remain
// distinguishable: lat/lon are mandatory, radius and limit have defaults.
type GetIncidentsNearInput struct {
	Latitude  *float64
	Longitude *float64
	Radius    *float64
	Limit     *int
	Filters   []resources.FilterOption
}
