package store

import (
	"context"

	"github.com/evyataryagoni/ipdata/internal/models"
	"github.com/google/uuid"
)

// MockStore is an in-memory Store used in tests. It mirrors the semantics of
// the MySQL implementation (get-or-create locations, reference-counted
// deletes) and records every call so tests can verify interactions.
type MockStore struct {
	IPData    map[string]*models.IPDataModel   // keyed by ip
	Locations map[string]*models.LocationModel // keyed by id

	// Call recording
	FindIPDataCalls   []string
	GetLocationCalls  []string
	CreateIPDataCalls []string
	DeleteIPDataCalls []string
	CloseCalled       bool

	// Forced errors; when set the corresponding method fails with it.
	FindIPDataErr   error
	GetLocationErr  error
	CreateIPDataErr error
	DeleteIPDataErr error
	PingErr         error
	CloseErr        error
}

// NewMockStore creates an empty mock store.
func NewMockStore() *MockStore {
	return &MockStore{
		IPData:    make(map[string]*models.IPDataModel),
		Locations: make(map[string]*models.LocationModel),
	}
}

// FindIPDataByIP implements Store.
func (m *MockStore) FindIPDataByIP(_ context.Context, ip string) (*models.IPDataModel, error) {
	m.FindIPDataCalls = append(m.FindIPDataCalls, ip)

	if m.FindIPDataErr != nil {
		return nil, m.FindIPDataErr
	}
	rec, ok := m.IPData[ip]
	if !ok {
		return nil, ErrIPNotFound
	}
	copied := *rec
	return &copied, nil
}

// GetLocationByID implements Store.
func (m *MockStore) GetLocationByID(_ context.Context, id string) (*models.LocationModel, error) {
	m.GetLocationCalls = append(m.GetLocationCalls, id)

	if m.GetLocationErr != nil {
		return nil, m.GetLocationErr
	}
	loc, ok := m.Locations[id]
	if !ok {
		return nil, ErrLocationNotFound
	}
	copied := *loc
	return &copied, nil
}

// CreateIPData implements Store with the same get-or-create and conflict
// semantics as the MySQL implementation.
func (m *MockStore) CreateIPData(_ context.Context, rec *models.IPDataModel, loc *models.LocationModel) (*CreateResult, error) {
	m.CreateIPDataCalls = append(m.CreateIPDataCalls, rec.IP)

	if m.CreateIPDataErr != nil {
		return nil, m.CreateIPDataErr
	}
	if _, ok := m.IPData[rec.IP]; ok {
		return nil, ErrIPExists
	}

	res := &CreateResult{}
	for _, existing := range m.Locations {
		if existing.GeonameID == loc.GeonameID {
			res.Location = existing
			break
		}
	}
	if res.Location == nil {
		loc.ID = uuid.NewString()
		m.Locations[loc.ID] = loc
		res.Location = loc
		res.LocationCreated = true
	}

	rec.ID = uuid.NewString()
	rec.LocationID = res.Location.ID
	m.IPData[rec.IP] = rec
	res.IPData = rec

	return res, nil
}

// DeleteIPData implements Store; the location row is removed only when no
// other ipdata row references it.
func (m *MockStore) DeleteIPData(_ context.Context, ip string) error {
	m.DeleteIPDataCalls = append(m.DeleteIPDataCalls, ip)

	if m.DeleteIPDataErr != nil {
		return m.DeleteIPDataErr
	}
	rec, ok := m.IPData[ip]
	if !ok {
		return ErrIPNotFound
	}

	refs := 0
	for _, other := range m.IPData {
		if other.LocationID == rec.LocationID {
			refs++
		}
	}

	delete(m.IPData, ip)
	if refs <= 1 {
		delete(m.Locations, rec.LocationID)
	}

	return nil
}

// Ping implements Store.
func (m *MockStore) Ping(_ context.Context) error {
	return m.PingErr
}

// Close implements Store.
func (m *MockStore) Close() error {
	m.CloseCalled = true
	return m.CloseErr
}
