package services

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/alaines/alertas-api/pkg/errs"
	"github.com/alaines/alertas-api/pkg/helpers"
	"github.com/alaines/alertas-api/pkg/models"
	"github.com/alaines/alertas-api/pkg/resources"
	"github.com/alaines/alertas-api/pkg/storage"
)

const defaultNearRadiusMeters = 1000.0

var incidentValidate *validator.Validate

type IncidentsServiceBackend struct {
	incidentsStorage storage.IncidentsRepo
	service          IncidentsService
	logger           *logrus.Entry
}

type IncidentsBuilder struct {
	Logger           *logrus.Entry
	IncidentsStorage storage.IncidentsRepo
}

func NewIncidentsService(builder IncidentsBuilder) IncidentsService {
	incidentValidate = validator.New()
	svc := &IncidentsServiceBackend{
		incidentsStorage: builder.IncidentsStorage,
		logger:           builder.Logger,
	}

	svc.service = svc
	return svc
}

func (svc *IncidentsServiceBackend) SetService(service IncidentsService) {
	svc.service = service
}

func (svc *IncidentsServiceBackend) GetIncidents(ctx context.Context, input GetIncidentsInput) ([]models.Incident, error) {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	queryParams := input.QueryParameters
	if queryParams == nil {
		queryParams = &resources.QueryParameters{}
	}

	// Incident listings are always newest first.
	if queryParams.Sort.SortField == "" {
		queryParams.Sort = resources.SortOptions{
			SortField: "pub_time",
			SortMode:  resources.SortModeDesc,
		}
	}

	lFunc.Debugf("getting all incidents")
	return svc.incidentsStorage.SelectAll(ctx, queryParams)
}

func (svc *IncidentsServiceBackend) GetIncidentByID(ctx context.Context, input GetIncidentByIDInput) (*models.Incident, error) {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	err := incidentValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("struct validation error: %s", err)
		return nil, errs.ErrValidateBadRequest
	}

	exists, incident, err := svc.incidentsStorage.SelectExists(ctx, input.ID)
	if err != nil {
		lFunc.Errorf("something went wrong while checking if incident '%d' exists in storage engine: %s", input.ID, err)
		return nil, err
	} else if !exists {
		lFunc.Errorf("incident %d can not be found in storage engine", input.ID)
		return nil, errs.ErrIncidentNotFound
	}

	return incident, nil
}

func (svc *IncidentsServiceBackend) GetIncidentsNear(ctx context.Context, input GetIncidentsNearInput) ([]models.IncidentWithDistance, error) {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	if input.Latitude == nil || input.Longitude == nil {
		lFunc.Errorf("rejecting near query without coordinates")
		return nil, fmt.Errorf("lat y lon son requeridos: %w", errs.ErrValidateBadRequest)
	}

	lat := *input.Latitude
	lon := *input.Longitude
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		lFunc.Errorf("rejecting near query with non-finite coordinates")
		return nil, fmt.Errorf("lat y lon deben ser números válidos: %w", errs.ErrValidateBadRequest)
	}

	radius := defaultNearRadiusMeters
	if input.Radius != nil {
		radius = *input.Radius
	}
	if math.IsNaN(radius) || radius <= 0 {
		lFunc.Errorf("rejecting near query with non-positive radius")
		return nil, fmt.Errorf("radius debe ser un número mayor a 0: %w", errs.ErrValidateBadRequest)
	}

	limit := resources.DefaultPageSize
	if input.Limit != nil {
		if *input.Limit <= 0 {
			lFunc.Errorf("rejecting near query with non-positive limit")
			return nil, fmt.Errorf("limit debe ser un número mayor a 0: %w", errs.ErrValidateBadRequest)
		}
		limit = resources.ClampLimit(*input.Limit)
	}

	deltaLat, deltaLon := helpers.BoundingBox(lat, radius)
	candidates, err := svc.incidentsStorage.SelectNearCandidates(ctx,
		lat-deltaLat, lat+deltaLat,
		lon-deltaLon, lon+deltaLon,
		input.Filters)
	if err != nil {
		lFunc.Errorf("could not query incident candidates: %s", err)
		return nil, err
	}

	results := make([]models.IncidentWithDistance, 0, len(candidates))
	for _, incident := range candidates {
		distance := helpers.GeodesicDistance(lat, lon, incident.Latitude, incident.Longitude)
		if distance <= radius {
			results = append(results, models.IncidentWithDistance{
				Incident: incident,
				Distance: distance,
			})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})

	if len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}
