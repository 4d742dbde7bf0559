package store

import (
	"context"
	"errors"

	"github.com/evyataryagoni/ipdata/internal/models"
)

// Sentinel errors the service layer switches on. Any storage failure that is
// not one of these is wrapped in ErrUnavailable and safe to retry, since
// every write path is transactional and leaves no partial state behind.
var (
	ErrIPNotFound       = errors.New("ip address not found")
	ErrLocationNotFound = errors.New("location not found")
	ErrIPExists         = errors.New("ip address already exists")
	ErrUnavailable      = errors.New("datastore unavailable")
)

// CreateResult carries the rows written or reused by CreateIPData.
type CreateResult struct {
	IPData   *models.IPDataModel
	Location *models.LocationModel

	// LocationCreated is false when an existing location row with the same
	// geoname id was reused.
	LocationCreated bool
}

// Store defines the transactional operations the service layer requires.
// Allows swapping the MySQL implementation for a mock in tests.
type Store interface {
	// FindIPDataByIP fetches one ipdata row by address.
	FindIPDataByIP(ctx context.Context, ip string) (*models.IPDataModel, error)

	// GetLocationByID fetches one location row by primary key.
	GetLocationByID(ctx context.Context, id string) (*models.LocationModel, error)

	// CreateIPData persists an ipdata row and its location as one unit of
	// work. The location is resolved get-or-create by geoname id: an
	// existing row is reused unchanged, otherwise the candidate is inserted.
	CreateIPData(ctx context.Context, rec *models.IPDataModel, loc *models.LocationModel) (*CreateResult, error)

	// DeleteIPData deletes the ipdata row for the address and, when no other
	// ipdata row references the same location, the location row too. Both
	// deletes run in one transaction.
	DeleteIPData(ctx context.Context, ip string) error

	// Ping reports whether the datastore is reachable.
	Ping(ctx context.Context) error

	// Close cleans up resources (database connections, etc.).
	Close() error
}
