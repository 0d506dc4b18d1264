package services

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alaines/alertas-api/pkg/errs"
	"github.com/alaines/alertas-api/pkg/models"
	"github.com/alaines/alertas-api/pkg/resources"
)

func TestGetIncidents(t *testing.T) {
	svc, db := setupIncidentsService(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		seedIncident(t, db, models.Incident{
			UUID:      fmt.Sprintf("c400aa00-0000-4000-8000-00000000000%d", i),
			Type:      "ACCIDENT",
			City:      ptr("Lima"),
			Status:    "ACTIVE",
			PubTime:   base.Add(time.Duration(i) * time.Hour),
			Latitude:  -12.05,
			Longitude: -77.03,
		})
	}
	seedIncident(t, db, models.Incident{
		UUID:      "c400aa00-0000-4000-8000-000000000009",
		Type:      "JAM",
		City:      ptr("Callao"),
		Status:    "ACTIVE",
		PubTime:   base.Add(30 * time.Minute),
		Latitude:  -12.06,
		Longitude: -77.12,
	})

	t.Run("DefaultsToNewestFirst", func(t *testing.T) {
		incidents, err := svc.GetIncidents(ctx, GetIncidentsInput{})
		require.NoError(t, err)
		require.Len(t, incidents, 4)
		for i := 1; i < len(incidents); i++ {
			assert.False(t, incidents[i].PubTime.After(incidents[i-1].PubTime))
		}
	})

	t.Run("FiltersByType", func(t *testing.T) {
		incidents, err := svc.GetIncidents(ctx, GetIncidentsInput{
			QueryParameters: &resources.QueryParameters{
				Filters: []resources.FilterOption{
					{Field: "type", FilterOperation: resources.EnumEqual, Value: "JAM"},
				},
			},
		})
		require.NoError(t, err)
		require.Len(t, incidents, 1)
		require.NotNil(t, incidents[0].City)
		assert.Equal(t, "Callao", *incidents[0].City)
	})

	t.Run("LimitBoundsTheResult", func(t *testing.T) {
		incidents, err := svc.GetIncidents(ctx, GetIncidentsInput{
			QueryParameters: &resources.QueryParameters{Limit: 2},
		})
		require.NoError(t, err)
		assert.Len(t, incidents, 2)
	})
}

func TestGetIncidentByID(t *testing.T) {
	svc, db := setupIncidentsService(t)
	ctx := context.Background()

	incident := seedIncident(t, db, models.Incident{
		UUID:      "c400aa00-0001-4000-8000-000000000001",
		Type:      "HAZARD",
		Status:    "ACTIVE",
		PubTime:   time.Now(),
		Latitude:  -12.1,
		Longitude: -77.0,
	})

	got, err := svc.GetIncidentByID(ctx, GetIncidentByIDInput{ID: incident.ID})
	require.NoError(t, err)
	assert.Equal(t, incident.UUID, got.UUID)

	_, err = svc.GetIncidentByID(ctx, GetIncidentByIDInput{ID: 9999})
	assert.ErrorIs(t, err, errs.ErrIncidentNotFound)
}

func TestGetIncidentsNear(t *testing.T) {
	svc, db := setupIncidentsService(t)
	ctx := context.Background()

	// Plaza Mayor de Lima as the query center.
	centerLat, centerLon := -12.0464, -77.0428

	near := seedIncident(t, db, models.Incident{
		UUID:      "c400aa00-0002-4000-8000-000000000001",
		Type:      "ACCIDENT",
		Status:    "ACTIVE",
		PubTime:   time.Now(),
		Latitude:  centerLat + 0.002,
		Longitude: centerLon,
	})
	nearer := seedIncident(t, db, models.Incident{
		UUID:      "c400aa00-0002-4000-8000-000000000002",
		Type:      "JAM",
		Status:    "ACTIVE",
		PubTime:   time.Now(),
		Latitude:  centerLat + 0.0005,
		Longitude: centerLon,
	})
	// Miraflores, roughly 8 km away, outside any kilometer-scale radius.
	seedIncident(t, db, models.Incident{
		UUID:      "c400aa00-0002-4000-8000-000000000003",
		Type:      "ACCIDENT",
		Status:    "ACTIVE",
		PubTime:   time.Now(),
		Latitude:  -12.1211,
		Longitude: -77.0297,
	})

	t.Run("SortedAscendingWithinRadius", func(t *testing.T) {
		results, err := svc.GetIncidentsNear(ctx, GetIncidentsNearInput{
			Latitude:  ptr(centerLat),
			Longitude: ptr(centerLon),
		})
		require.NoError(t, err)
		require.Len(t, results, 2)

		assert.Equal(t, nearer.UUID, results[0].UUID)
		assert.Equal(t, near.UUID, results[1].UUID)
		for _, result := range results {
			assert.LessOrEqual(t, result.Distance, 1000.0)
		}
		assert.LessOrEqual(t, results[0].Distance, results[1].Distance)
	})

	t.Run("WiderRadiusReachesFartherIncidents", func(t *testing.T) {
		results, err := svc.GetIncidentsNear(ctx, GetIncidentsNearInput{
			Latitude:  ptr(centerLat),
			Longitude: ptr(centerLon),
			Radius:    ptr(10000.0),
		})
		require.NoError(t, err)
		assert.Len(t, results, 3)
	})

	t.Run("LimitTruncatesClosestFirst", func(t *testing.T) {
		results, err := svc.GetIncidentsNear(ctx, GetIncidentsNearInput{
			Latitude:  ptr(centerLat),
			Longitude: ptr(centerLon),
			Radius:    ptr(10000.0),
			Limit:     ptr(1),
		})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, nearer.UUID, results[0].UUID)
	})

	t.Run("FiltersApplyToCandidates", func(t *testing.T) {
		results, err := svc.GetIncidentsNear(ctx, GetIncidentsNearInput{
			Latitude:  ptr(centerLat),
			Longitude: ptr(centerLon),
			Radius:    ptr(10000.0),
			Filters: []resources.FilterOption{
				{Field: "type", FilterOperation: resources.EnumEqual, Value: "JAM"},
			},
		})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, nearer.UUID, results[0].UUID)
	})

	t.Run("RejectsMissingCoordinates", func(t *testing.T) {
		_, err := svc.GetIncidentsNear(ctx, GetIncidentsNearInput{Latitude: ptr(centerLat)})
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValidateBadRequest)
		assert.Contains(t, err.Error(), "lat y lon son requeridos")
	})

	t.Run("RejectsNonFiniteCoordinates", func(t *testing.T) {
		nan := math.NaN()
		_, err := svc.GetIncidentsNear(ctx, GetIncidentsNearInput{
			Latitude:  &nan,
			Longitude: ptr(centerLon),
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValidateBadRequest)
		assert.Contains(t, err.Error(), "lat y lon deben ser números válidos")
	})

	t.Run("RejectsNonPositiveRadius", func(t *testing.T) {
		for _, radius := range []float64{0, -50} {
			_, err := svc.GetIncidentsNear(ctx, GetIncidentsNearInput{
				Latitude:  ptr(centerLat),
				Longitude: ptr(centerLon),
				Radius:    ptr(radius),
			})
			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrValidateBadRequest)
			assert.Contains(t, err.Error(), "radius debe ser un número mayor a 0")
		}
	})

	t.Run("RejectsNonPositiveLimit", func(t *testing.T) {
		_, err := svc.GetIncidentsNear(ctx, GetIncidentsNearInput{
			Latitude:  ptr(centerLat),
			Longitude: ptr(centerLon),
			Limit:     ptr(0),
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValidateBadRequest)
		assert.Contains(t, err.Error(), "limit debe ser un número mayor a 0")
	})
}
