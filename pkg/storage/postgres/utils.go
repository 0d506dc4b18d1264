package postgres

import (
	"context"
	"embed"
	"fmt"
	"strings"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/alaines/alertas-api/pkg/config"
	"github.com/alaines/alertas-api/pkg/helpers"
	"github.com/alaines/alertas-api/pkg/resources"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

func CreatePostgresDBConnection(logger *logrus.Entry, cfg config.PostgresPSEConfig, database string) (*gorm.DB, error) {
	dbLogger := &GormLogger{
		logger: logger,
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable", cfg.Hostname, cfg.Username, cfg.Password, database, cfg.Port)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: dbLogger,
	})

	return db, err
}

type migrator struct {
	db     *gorm.DB
	logger *logrus.Entry
	Goose  *goose.Provider
}

func NewMigrator(log *logrus.Entry, db *gorm.DB) *migrator {
	dbName := db.Migrator().CurrentDatabase()

	lMig := log.WithField("migrations", dbName)

	sqlDB, err := db.DB()
	if err != nil {
		lMig.Fatalf("could not get db connection: %s", err)
	}

	m, err := goose.NewProvider(goose.DialectPostgres, sqlDB, embedMigrations)
	if err != nil {
		lMig.Fatalf("could not create migrator: %s", err)
	}

	return &migrator{
		db:     db,
		logger: lMig,
		Goose:  m,
	}
}

func (migrator *migrator) MigrateToLatest() {
	c, t, err := migrator.Goose.GetVersions(context.Background())
	if err != nil {
		migrator.logger.Fatalf("could not get db version: %s", err)
	}

	migrator.logger.Infof("Current version: %d", c)
	migrator.logger.Infof("Target version: %d", t)

	r, err := migrator.Goose.UpTo(context.Background(), t)
	if err != nil {
		migrator.logger.Fatalf("could not migrate db: %s", err)
	}

	migrator.logger.Infof("Migrated %d steps", len(r))
}

type gormDBQuerier[E any] struct {
	*gorm.DB
	tableName        string
	primaryKeyColumn string
}

func newGormDBQuerier[E any](db *gorm.DB, tableName string, primaryKeyColumn string) gormDBQuerier[E] {
	return gormDBQuerier[E]{
		DB:               db,
		tableName:        tableName,
		primaryKeyColumn: primaryKeyColumn,
	}
}

type gormExtraOps struct {
	query           interface{}
	additionalWhere []interface{}
}

func applyExtraOpts(tx *gorm.DB, extraOpts []gormExtraOps) *gorm.DB {
	for _, whereQuery := range extraOpts {
		tx = tx.Where(whereQuery.query, whereQuery.additionalWhere...)
	}

	return tx
}

func (db *gormDBQuerier[E]) Count(ctx context.Context, extraOpts []gormExtraOps) (int, error) {
	var count int64
	tx := db.Table(db.tableName).WithContext(ctx)

	tx = applyExtraOpts(tx, extraOpts)

	tx.Count(&count)
	if err := tx.Error; err != nil {
		return -1, err
	}

	return int(count), nil
}

func (db *gormDBQuerier[E]) CountFiltered(ctx context.Context, filters []resources.FilterOption, extraOpts []gormExtraOps) (int, error) {
	var count int64
	tx := db.Table(db.tableName).WithContext(ctx)

	for _, filter := range filters {
		tx = FilterOperandToWhereClause(filter, tx)
	}

	tx = applyExtraOpts(tx, extraOpts)

	tx.Count(&count)
	if err := tx.Error; err != nil {
		return -1, err
	}

	return int(count), nil
}

func (db *gormDBQuerier[E]) SelectAll(ctx context.Context, queryParams *resources.QueryParameters, extraOpts []gormExtraOps) ([]E, error) {
	var elems []E
	tx := db.Table(db.tableName).WithContext(ctx)

	limit := resources.DefaultPageSize

	if queryParams != nil {
		limit = resources.ClampLimit(queryParams.Limit)

		if queryParams.Sort.SortField != "" {
			sortMode := string(resources.SortModeAsc)
			if queryParams.Sort.SortMode != "" {
				sortMode = string(queryParams.Sort.SortMode)
			}

			sortBy := strings.ReplaceAll(queryParams.Sort.SortField, ".", "_")
			tx = tx.Order(sortBy + " " + sortMode)
		}

		for _, filter := range queryParams.Filters {
			tx = FilterOperandToWhereClause(filter, tx)
		}
	}

	tx = applyExtraOpts(tx, extraOpts)
	tx = tx.Limit(limit)

	if rs := tx.Find(&elems); rs.Error != nil {
		return nil, rs.Error
	}

	return elems, nil
}

// Selects first element from DB. If queryCol is empty or nil, the primary
// key column defined in the creation process is used.
func (db *gormDBQuerier[E]) SelectExists(ctx context.Context, queryID any, queryCol *string) (bool, *E, error) {
	searchCol := db.primaryKeyColumn
	if queryCol != nil && *queryCol != "" {
		searchCol = *queryCol
	}

	var elem E
	tx := db.Table(db.tableName).WithContext(ctx).Limit(1).Find(&elem, fmt.Sprintf("%s = ?", searchCol), queryID)
	if tx.Error != nil {
		return false, nil, tx.Error
	}

	if tx.RowsAffected == 0 {
		return false, nil, nil
	}

	return true, &elem, nil
}

func (db *gormDBQuerier[E]) Insert(ctx context.Context, elem *E) (*E, error) {
	tx := db.Table(db.tableName).WithContext(ctx).Create(elem)
	if err := tx.Error; err != nil {
		return nil, err
	}

	return elem, nil
}

func (db *gormDBQuerier[E]) Update(ctx context.Context, elem *E, elemID any) (*E, error) {
	tx := db.Table(db.tableName).WithContext(ctx).Where(fmt.Sprintf("%s = ?", db.primaryKeyColumn), elemID).Save(elem)
	if err := tx.Error; err != nil {
		return nil, err
	}

	if tx.RowsAffected != 1 {
		return nil, gorm.ErrRecordNotFound
	}

	return elem, nil
}

func (db *gormDBQuerier[E]) Delete(ctx context.Context, elemID any) error {
	var elem E
	tx := db.Table(db.tableName).WithContext(ctx).Where(fmt.Sprintf("%s = ?", db.primaryKeyColumn), elemID).Delete(&elem)
	if err := tx.Error; err != nil {
		return err
	}

	if tx.RowsAffected != 1 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// FilterOperandToWhereClause translates a filter into a parameterized
// WHERE clause. Values never get interpolated into the SQL text. The
// case-insensitive operations use LOWER() so the same clause works on
// postgres and sqlite.
func FilterOperandToWhereClause(filter resources.FilterOption, tx *gorm.DB) *gorm.DB {
	if strings.Contains(filter.Field, ".") {
		filter.Field = strings.ReplaceAll(filter.Field, ".", "_")
	}

	switch filter.FilterOperation {
	case resources.StringEqual:
		return tx.Where(fmt.Sprintf("%s = ?", filter.Field), filter.Value)
	case resources.StringEqualIgnoreCase:
		return tx.Where(fmt.Sprintf("LOWER(%s) = LOWER(?)", filter.Field), filter.Value)
	case resources.StringContains:
		return tx.Where(fmt.Sprintf("%s LIKE ?", filter.Field), fmt.Sprintf("%%%s%%", filter.Value))
	case resources.StringContainsIgnoreCase:
		return tx.Where(fmt.Sprintf("LOWER(%s) LIKE LOWER(?)", filter.Field), fmt.Sprintf("%%%s%%", filter.Value))
	case resources.DateEqual:
		return tx.Where(fmt.Sprintf("%s = ?", filter.Field), filter.Value)
	case resources.DateBefore:
		return tx.Where(fmt.Sprintf("%s < ?", filter.Field), filter.Value)
	case resources.DateBeforeOrEqual:
		return tx.Where(fmt.Sprintf("%s <= ?", filter.Field), filter.Value)
	case resources.DateAfter:
		return tx.Where(fmt.Sprintf("%s > ?", filter.Field), filter.Value)
	case resources.DateAfterOrEqual:
		return tx.Where(fmt.Sprintf("%s >= ?", filter.Field), filter.Value)
	case resources.NumberEqual:
		return tx.Where(fmt.Sprintf("%s = ?", filter.Field), filter.Value)
	case resources.NumberLessThan:
		return tx.Where(fmt.Sprintf("%s < ?", filter.Field), filter.Value)
	case resources.NumberLessOrEqualThan:
		return tx.Where(fmt.Sprintf("%s <= ?", filter.Field), filter.Value)
	case resources.NumberGreaterThan:
		return tx.Where(fmt.Sprintf("%s > ?", filter.Field), filter.Value)
	case resources.NumberGreaterOrEqualThan:
		return tx.Where(fmt.Sprintf("%s >= ?", filter.Field), filter.Value)
	case resources.EnumEqual:
		return tx.Where(fmt.Sprintf("%s = ?", filter.Field), filter.Value)
	case resources.EnumNotEqual:
		return tx.Where(fmt.Sprintf("%s <> ?", filter.Field), filter.Value)
	default:
		return tx
	}
}

func NewGormLogger(logger *logrus.Entry) *GormLogger {
	return &GormLogger{
		logger: logger,
	}
}

// Logrus GORM iface implementation
type GormLogger struct {
	logger *logrus.Entry
}

func (l *GormLogger) LogMode(lvl gormlogger.LogLevel) gormlogger.Interface {
	newlogger := *l
	return &newlogger
}

func (l *GormLogger) Info(ctx context.Context, str string, rest ...interface{}) {
	le := helpers.ConfigureLogger(ctx, l.logger)
	le.Infof(str, rest...)
}

func (l *GormLogger) Warn(ctx context.Context, str string, rest ...interface{}) {
	le := helpers.ConfigureLogger(ctx, l.logger)
	le.Warnf(str, rest...)
}

func (l *GormLogger) Error(ctx context.Context, str string, rest ...interface{}) {
	le := helpers.ConfigureLogger(ctx, l.logger)
	le.Errorf(str, rest...)
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	le := helpers.ConfigureLogger(ctx, l.logger)
	sql, rows := fc()
	if err != nil {
		le.Errorf("Took: %s, Err:%s, SQL: %s, AffectedRows: %d", time.Since(begin).String(), err, sql, rows)
	} else {
		le.Tracef("Took: %s, SQL: %s, AffectedRows: %d", time.Since(begin).String(), sql, rows)
	}
}
