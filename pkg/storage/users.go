package storage

import (
	"context"

	"github.com/alaines/alertas-api/pkg/models"
)

// UsersRepo is read-only. User accounts are managed elsewhere.
type UsersRepo interface {
	SelectExists(ctx context.Context, id int64) (bool, *models.User, error)
}
