package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/evyataryagoni/ipdata/internal/models"
	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// MySQLStore implements Store using MySQL with GORM.
type MySQLStore struct {
	db *gorm.DB
}

// NewMySQLStore connects to MySQL and migrates the ipdata and location
// tables. The DSN format is user:password@tcp(host:port)/dbname?parseTime=true.
func NewMySQLStore(dsn string) (*MySQLStore, error) {
	config := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true, // surface duplicate keys as gorm.ErrDuplicatedKey
	}

	db, err := gorm.Open(mysql.Open(dsn), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MySQL: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping MySQL database: %w", err)
	}

	// Location first: ipdata carries the foreign key.
	if err := db.AutoMigrate(&models.LocationModel{}, &models.IPDataModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &MySQLStore{db: db}, nil
}

// FindIPDataByIP fetches one ipdata row by address.
func (s *MySQLStore) FindIPDataByIP(ctx context.Context, ip string) (*models.IPDataModel, error) {
	var rec models.IPDataModel

	result := s.db.WithContext(ctx).Where("ip = ?", ip).First(&rec)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrIPNotFound
		}
		return nil, classify(result.Error)
	}

	return &rec, nil
}

// GetLocationByID fetches one location row by primary key.
func (s *MySQLStore) GetLocationByID(ctx context.Context, id string) (*models.LocationModel, error) {
	var loc models.LocationModel

	result := s.db.WithContext(ctx).Where("id = ?", id).First(&loc)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, classify(result.Error)
	}

	return &loc, nil
}

// CreateIPData persists an ipdata row and resolves its location in one
// transaction.
//
// The location is keyed by geoname id and never updated once written. If a
// concurrent create inserts the same geoname id first, the uniqueness
// constraint fires and the losing transaction re-reads the winner's row
// instead of failing.
func (s *MySQLStore) CreateIPData(ctx context.Context, rec *models.IPDataModel, loc *models.LocationModel) (*CreateResult, error) {
	res := &CreateResult{}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.LocationModel

		err := tx.Where("geoname_id = ?", loc.GeonameID).First(&existing).Error
		switch {
		case err == nil:
			res.Location = &existing

		case errors.Is(err, gorm.ErrRecordNotFound):
			loc.ID = uuid.NewString()
			if err := tx.Create(loc).Error; err != nil {
				if !errors.Is(err, gorm.ErrDuplicatedKey) {
					return err
				}
				// Lost the insert race; use the winner's row.
				if err := tx.Where("geoname_id = ?", loc.GeonameID).First(&existing).Error; err != nil {
					return err
				}
				res.Location = &existing
			} else {
				res.Location = loc
				res.LocationCreated = true
			}

		default:
			return err
		}

		rec.ID = uuid.NewString()
		rec.LocationID = res.Location.ID
		if err := tx.Create(rec).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrIPExists
			}
			return err
		}

		res.IPData = rec
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}

	return res, nil
}

// DeleteIPData deletes the ipdata row and garbage-collects its location.
//
// The location row is locked FOR UPDATE and the reference count is evaluated
// before the ipdata row is removed, compared against > 1: a location is kept
// only while some other ipdata row still references it. The lock prevents a
// concurrent create from attaching to the location between the count and the
// delete.
func (s *MySQLStore) DeleteIPData(ctx context.Context, ip string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec models.IPDataModel
		if err := tx.Where("ip = ?", ip).First(&rec).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrIPNotFound
			}
			return err
		}

		var loc models.LocationModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", rec.LocationID).
			First(&loc).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		haveLocation := err == nil

		var refs int64
		if haveLocation {
			if err := tx.Model(&models.IPDataModel{}).
				Where("location_id = ?", loc.ID).
				Count(&refs).Error; err != nil {
				return err
			}
		}

		// The ipdata row goes first to satisfy the foreign key.
		if err := tx.Delete(&rec).Error; err != nil {
			return err
		}

		if haveLocation && refs <= 1 {
			if err := tx.Delete(&loc).Error; err != nil {
				return err
			}
		}

		return nil
	})

	return classify(err)
}

// Ping reports whether the database is reachable.
func (s *MySQLStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return classify(err)
	}
	return classify(sqlDB.PingContext(ctx))
}

// Close closes the database connection.
func (s *MySQLStore) Close() error {
	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

// classify maps driver errors onto the store's error taxonomy. Recognized
// sentinels pass through untouched; everything else becomes ErrUnavailable.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrIPNotFound) || errors.Is(err, ErrLocationNotFound) || errors.Is(err, ErrIPExists) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
