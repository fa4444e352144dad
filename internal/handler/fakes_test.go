package handler

// In-memory store implementations backing the handler tests. They mirror
// the MySQL repositories' observable behavior, including the sentinel
// errors and the session swap's compare-and-swap semantics.

import (
	"context"
	"sync"
	"time"

	"github.com/courtside/facility-reservation/internal/model"
	"github.com/courtside/facility-reservation/internal/repository"
)

type memUserStore struct {
	mu    sync.Mutex
	users map[string]*model.User // keyed by id
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[string]*model.User)}
}

func (m *memUserStore) Create(_ context.Context, u *model.User, roles []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.UserName == u.UserName {
			return repository.ErrUserNameExists
		}
	}
	cp := *u
	cp.Roles = append([]string(nil), roles...)
	cp.CreatedAt = time.Now().UTC()
	m.users[cp.ID] = &cp
	return nil
}

func (m *memUserStore) GetByUserName(_ context.Context, userName string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.UserName == userName {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *memUserStore) GetByID(_ context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

type memSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*model.Session
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[string]*model.Session)}
}

func (m *memSessionStore) Create(_ context.Context, s *model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.sessions[s.ID] = &cp
	return nil
}

func (m *memSessionStore) Get(_ context.Context, id string) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memSessionStore) Swap(_ context.Context, id, oldHash, newHash string, expiresAt time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok || s.Revoked || s.RefreshTokenHash != oldHash {
		return false, nil
	}
	s.RefreshTokenHash = newHash
	s.ExpiresAt = expiresAt
	return true, nil
}

func (m *memSessionStore) Revoke(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok || s.Revoked {
		return false, nil
	}
	s.Revoked = true
	return true, nil
}

type memFacilityStore struct {
	mu         sync.Mutex
	nextID     uint64
	facilities map[uint64]*model.Facility
}

func newMemFacilityStore() *memFacilityStore {
	return &memFacilityStore{facilities: make(map[uint64]*model.Facility)}
}

func (m *memFacilityStore) Create(_ context.Context, f *model.Facility) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	f.ID = m.nextID
	f.CreatedAt = time.Now().UTC()
	f.UpdatedAt = f.CreatedAt
	cp := *f
	m.facilities[f.ID] = &cp
	return nil
}

func (m *memFacilityStore) GetByID(_ context.Context, id uint64) (*model.Facility, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.facilities[id]
	if !ok {
		return nil, repository.ErrFacilityNotFound
	}
	cp := *f
	return &cp, nil
}

func (m *memFacilityStore) List(_ context.Context) ([]model.Facility, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Facility, 0, len(m.facilities))
	for id := uint64(1); id <= m.nextID; id++ {
		if f, ok := m.facilities[id]; ok {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (m *memFacilityStore) Update(_ context.Context, f *model.Facility) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.facilities[f.ID]; !ok {
		return repository.ErrFacilityNotFound
	}
	f.UpdatedAt = time.Now().UTC()
	cp := *f
	m.facilities[f.ID] = &cp
	return nil
}

func (m *memFacilityStore) Delete(_ context.Context, id uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.facilities[id]; !ok {
		return repository.ErrFacilityNotFound
	}
	delete(m.facilities, id)
	return nil
}

type memTimeSlotStore struct {
	mu     sync.Mutex
	nextID uint64
	slots  map[uint64]*model.TimeSlot
}

func newMemTimeSlotStore() *memTimeSlotStore {
	return &memTimeSlotStore{slots: make(map[uint64]*model.TimeSlot)}
}

func (m *memTimeSlotStore) Create(_ context.Context, ts *model.TimeSlot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	ts.ID = m.nextID
	ts.CreatedAt = time.Now().UTC()
	ts.UpdatedAt = ts.CreatedAt
	cp := *ts
	m.slots[ts.ID] = &cp
	return nil
}

func (m *memTimeSlotStore) GetByID(_ context.Context, facilityID, id uint64) (*model.TimeSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ts, ok := m.slots[id]
	if !ok || ts.FacilityID != facilityID {
		return nil, repository.ErrTimeSlotNotFound
	}
	cp := *ts
	return &cp, nil
}

func (m *memTimeSlotStore) ListByFacility(_ context.Context, facilityID uint64) ([]model.TimeSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.TimeSlot
	for id := uint64(1); id <= m.nextID; id++ {
		if ts, ok := m.slots[id]; ok && ts.FacilityID == facilityID {
			out = append(out, *ts)
		}
	}
	return out, nil
}

func (m *memTimeSlotStore) Update(_ context.Context, ts *model.TimeSlot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.slots[ts.ID]; !ok {
		return repository.ErrTimeSlotNotFound
	}
	ts.UpdatedAt = time.Now().UTC()
	cp := *ts
	m.slots[ts.ID] = &cp
	return nil
}

func (m *memTimeSlotStore) Delete(_ context.Context, id uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.slots[id]; !ok {
		return repository.ErrTimeSlotNotFound
	}
	delete(m.slots, id)
	return nil
}

type memReservationStore struct {
	mu           sync.Mutex
	nextID       uint64
	slots        *memTimeSlotStore
	reservations map[uint64]*model.Reservation
}

func newMemReservationStore(slots *memTimeSlotStore) *memReservationStore {
	return &memReservationStore{slots: slots, reservations: make(map[uint64]*model.Reservation)}
}

func (m *memReservationStore) Create(_ context.Context, r *model.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	r.ID = m.nextID
	r.CreatedAt = time.Now().UTC()
	r.UpdatedAt = r.CreatedAt
	cp := *r
	m.reservations[r.ID] = &cp
	return nil
}

func (m *memReservationStore) GetByID(ctx context.Context, facilityID, timeSlotID, id uint64) (*model.Reservation, error) {
	if _, err := m.slots.GetByID(ctx, facilityID, timeSlotID); err != nil {
		return nil, repository.ErrReservationNotFound
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reservations[id]
	if !ok || r.TimeSlotID != timeSlotID {
		return nil, repository.ErrReservationNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memReservationStore) ListByTimeSlot(_ context.Context, timeSlotID uint64) ([]model.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Reservation
	for id := uint64(1); id <= m.nextID; id++ {
		if r, ok := m.reservations[id]; ok && r.TimeSlotID == timeSlotID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *memReservationStore) Update(_ context.Context, r *model.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reservations[r.ID]; !ok {
		return repository.ErrReservationNotFound
	}
	r.UpdatedAt = time.Now().UTC()
	cp := *r
	m.reservations[r.ID] = &cp
	return nil
}

func (m *memReservationStore) Delete(_ context.Context, id uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reservations[id]; !ok {
		return repository.ErrReservationNotFound
	}
	delete(m.reservations, id)
	return nil
}
