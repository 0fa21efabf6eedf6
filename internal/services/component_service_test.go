package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"skybound/flightline/internal/constants"
	"skybound/flightline/internal/duestatus"
	"skybound/flightline/internal/models/dtos"
	"skybound/flightline/internal/models/entities"
)

// Mock ComponentStore
type mockComponentStore struct {
	findByIDFunc       func(ctx context.Context, id string) (*entities.AircraftComponent, error)
	listByAircraftFunc func(ctx context.Context, aircraftID string) ([]entities.AircraftComponent, error)
	listActiveFunc     func(ctx context.Context, schoolID string) ([]entities.AircraftComponent, error)
	insertFunc         func(ctx context.Context, c *entities.AircraftComponent) error
	updateFunc         func(ctx context.Context, c *entities.AircraftComponent) error
	setExtensionFunc   func(ctx context.Context, id string, percent *float64) (*entities.AircraftComponent, error)
	deleteFunc         func(ctx context.Context, id string) error
}

func (m *mockComponentStore) FindByID(ctx context.Context, id string) (*entities.AircraftComponent, error) {
	return m.findByIDFunc(ctx, id)
}

func (m *mockComponentStore) ListByAircraft(ctx context.Context, aircraftID string) ([]entities.AircraftComponent, error) {
	return m.listByAircraftFunc(ctx, aircraftID)
}

func (m *mockComponentStore) ListActiveBySchool(ctx context.Context, schoolID string) ([]entities.AircraftComponent, error) {
	return m.listActiveFunc(ctx, schoolID)
}

func (m *mockComponentStore) Insert(ctx context.Context, c *entities.AircraftComponent) error {
	return m.insertFunc(ctx, c)
}

func (m *mockComponentStore) Update(ctx context.Context, c *entities.AircraftComponent) error {
	return m.updateFunc(ctx, c)
}

func (m *mockComponentStore) SetExtension(ctx context.Context, id string, percent *float64) (*entities.AircraftComponent, error) {
	return m.setExtensionFunc(ctx, id, percent)
}

func (m *mockComponentStore) Delete(ctx context.Context, id string) error {
	return m.deleteFunc(ctx, id)
}

// Mock AircraftReader
type mockAircraftReader struct {
	findByIDFunc     func(ctx context.Context, id string) (*entities.Aircraft, error)
	listBySchoolFunc func(ctx context.Context, schoolID string) ([]entities.Aircraft, error)
}

func (m *mockAircraftReader) FindByID(ctx context.Context, id string) (*entities.Aircraft, error) {
	return m.findByIDFunc(ctx, id)
}

func (m *mockAircraftReader) ListBySchool(ctx context.Context, schoolID string) ([]entities.Aircraft, error) {
	return m.listBySchoolFunc(ctx, schoolID)
}

// roundTripCache stores values the way a Redis-backed cache does: every value
// goes through JSON, so a stored []entities.AircraftComponent comes back as
// []interface{}, not the original slice type.
type roundTripCache struct {
	store map[string]interface{}
}

func newRoundTripCache() *roundTripCache {
	return &roundTripCache{store: make(map[string]interface{})}
}

func (c *roundTripCache) Set(key string, value interface{}, _ time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	var out interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return
	}
	c.store[key] = out
}

func (c *roundTripCache) Get(key string) (interface{}, bool) {
	v, ok := c.store[key]
	return v, ok
}

func (c *roundTripCache) Delete(key string) {
	delete(c.store, key)
}

func (c *roundTripCache) GetOrSet(key string, d time.Duration, loader func() (any, error)) (interface{}, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err := loader()
	if err != nil {
		return nil, err
	}
	c.Set(key, v, d)
	return v, nil
}

func (c *roundTripCache) Close() error { return nil }

func ownedFixture() (*mockComponentStore, *mockAircraftReader, *entities.AircraftComponent) {
	comp := &entities.AircraftComponent{
		ID:              "comp-1",
		AircraftID:      "ac-1",
		Name:            "100h inspection",
		ComponentType:   constants.ComponentInspection,
		IntervalType:    duestatus.IntervalTypeHours,
		IntervalHours:   fptr(100),
		CurrentDueHours: fptr(1000),
		Status:          constants.ComponentActive,
	}

	store := &mockComponentStore{
		findByIDFunc: func(ctx context.Context, id string) (*entities.AircraftComponent, error) {
			if id != comp.ID {
				return nil, errors.New("no rows")
			}
			return comp, nil
		},
	}
	aircraft := &mockAircraftReader{
		findByIDFunc: func(ctx context.Context, id string) (*entities.Aircraft, error) {
			if id != "ac-1" {
				return nil, errors.New("no rows")
			}
			return &entities.Aircraft{ID: "ac-1", SchoolID: "school-1", CurrentHours: fptr(950)}, nil
		},
	}
	return store, aircraft, comp
}

func TestComponentService_ListForAircraft_RedisStyleCacheHit(t *testing.T) {
	store, aircraft, comp := ownedFixture()

	listCalls := 0
	store.listByAircraftFunc = func(ctx context.Context, aircraftID string) ([]entities.AircraftComponent, error) {
		listCalls++
		return []entities.AircraftComponent{*comp}, nil
	}

	service := NewComponentService(store, aircraft, nil, newRoundTripCache())

	first, err := service.ListForAircraft(context.Background(), "school-1", "ac-1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(first.Components) != 1 {
		t.Fatalf("Expected 1 component, got %d", len(first.Components))
	}

	// Second call must be served by the cache even though the backend handed
	// the rows back as decoded JSON rather than the original slice type.
	second, err := service.ListForAircraft(context.Background(), "school-1", "ac-1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if listCalls != 1 {
		t.Errorf("Expected 1 repository call, got %d", listCalls)
	}
	if len(second.Components) != 1 {
		t.Fatalf("Expected 1 component from cache, got %d", len(second.Components))
	}
	got := second.Components[0]
	if got.ID != comp.ID || got.Name != comp.Name {
		t.Errorf("Cached row decoded wrong: got %s/%s", got.ID, got.Name)
	}
	if got.CurrentDueHours == nil || *got.CurrentDueHours != 1000 {
		t.Errorf("Expected cached due hours 1000, got %v", got.CurrentDueHours)
	}
	if got.AircraftComponent.Status != constants.ComponentActive {
		t.Errorf("Expected cached status active, got %s", got.AircraftComponent.Status)
	}
}

func TestComponentService_Update_ForeignSchoolRejected(t *testing.T) {
	store, aircraft, comp := ownedFixture()

	updateCalls := 0
	store.updateFunc = func(ctx context.Context, c *entities.AircraftComponent) error {
		updateCalls++
		return nil
	}

	service := NewComponentService(store, aircraft, nil, newRoundTripCache())

	name := "renamed"
	_, err := service.Update(context.Background(), "school-2", comp.ID, &dtos.UpdateComponentReq{Name: &name})
	if err == nil {
		t.Fatal("Expected error updating another school's component")
	}
	if err.Error() != constants.MsgComponentNotFound {
		t.Errorf("Expected not-found error, got %v", err)
	}
	if updateCalls != 0 {
		t.Errorf("Expected no repository update, got %d", updateCalls)
	}
}

func TestComponentService_SetExtension_ForeignSchoolRejected(t *testing.T) {
	store, aircraft, comp := ownedFixture()

	extCalls := 0
	store.setExtensionFunc = func(ctx context.Context, id string, percent *float64) (*entities.AircraftComponent, error) {
		extCalls++
		return comp, nil
	}

	service := NewComponentService(store, aircraft, nil, newRoundTripCache())

	if _, err := service.SetExtension(context.Background(), "school-2", comp.ID, fptr(10)); err == nil {
		t.Fatal("Expected error extending another school's component")
	}
	if extCalls != 0 {
		t.Errorf("Expected no repository write, got %d", extCalls)
	}
}

func TestComponentService_SetExtension_SameSchool(t *testing.T) {
	store, aircraft, comp := ownedFixture()

	store.setExtensionFunc = func(ctx context.Context, id string, percent *float64) (*entities.AircraftComponent, error) {
		ext := *percent
		updated := *comp
		updated.ExtensionPercent = &ext
		return &updated, nil
	}

	service := NewComponentService(store, aircraft, nil, newRoundTripCache())

	updated, err := service.SetExtension(context.Background(), "school-1", comp.ID, fptr(10))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if updated.ExtensionPercent == nil || *updated.ExtensionPercent != 10 {
		t.Errorf("Expected extension 10, got %v", updated.ExtensionPercent)
	}
}

func TestComponentService_Delete_ForeignSchoolRejected(t *testing.T) {
	store, aircraft, comp := ownedFixture()

	deleteCalls := 0
	store.deleteFunc = func(ctx context.Context, id string) error {
		deleteCalls++
		return nil
	}

	service := NewComponentService(store, aircraft, nil, newRoundTripCache())

	if err := service.Delete(context.Background(), "school-2", comp.ID); err == nil {
		t.Fatal("Expected error deleting another school's component")
	}
	if deleteCalls != 0 {
		t.Errorf("Expected no repository delete, got %d", deleteCalls)
	}
}

func TestComponentService_Get_ForeignSchoolRejected(t *testing.T) {
	store, aircraft, comp := ownedFixture()

	service := NewComponentService(store, aircraft, nil, newRoundTripCache())

	if _, err := service.Get(context.Background(), "school-2", comp.ID); err == nil {
		t.Fatal("Expected error reading another school's component")
	}

	row, err := service.Get(context.Background(), "school-1", comp.ID)
	if err != nil {
		t.Fatalf("Expected no error for owning school, got %v", err)
	}
	if row.ID != comp.ID {
		t.Errorf("Expected component %s, got %s", comp.ID, row.ID)
	}
}
