package postgres

import (
	"context"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/alaines/alertas-api/pkg/models"
	"github.com/alaines/alertas-api/pkg/storage"
)

type UsersStore struct {
	db      *gorm.DB
	querier gormDBQuerier[models.User]
}

func NewUsersRepository(logger *logrus.Entry, db *gorm.DB) (storage.UsersRepo, error) {
	return &UsersStore{
		db:      db,
		querier: newGormDBQuerier[models.User](db, "users", "id"),
	}, nil
}

func (s *UsersStore) SelectExists(ctx context.Context, id int64) (bool, *models.User, error) {
	return s.querier.SelectExists(ctx, id, nil)
}
