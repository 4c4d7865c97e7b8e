package repository

import (
	"context"
	"sync"
	"time"

	"github.com/HanielHB/multienda-multicaja-sub000/internal/model"
)

type memEntry struct {
	campos map[string]string
	expira time.Time // zero = never
}

type memorySessionStore struct {
	mu      sync.Mutex
	entries map[string]*memEntry
	now     func() time.Time
}

// NewMemorySessionStore keeps sessions in process memory. Used by tests and by
// SESSION_BACKEND=memory for single-instance development.
func NewMemorySessionStore() SessionStore {
	return &memorySessionStore{entries: make(map[string]*memEntry), now: time.Now}
}

// entry returns the live entry for id, dropping it when expired. Caller holds mu.
func (m *memorySessionStore) entry(id string) *memEntry {
	e, ok := m.entries[id]
	if !ok {
		return nil
	}
	if !e.expira.IsZero() && !m.now().Before(e.expira) {
		delete(m.entries, id)
		return nil
	}
	return e
}

func (m *memorySessionStore) Get(_ context.Context, id string) (model.Sesion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := m.entry(id)
	if e == nil {
		return model.Sesion{}, nil
	}
	return decodeSesion(e.campos), nil
}

func (m *memorySessionStore) Set(_ context.Context, id string, s model.Sesion, ttl time.Duration) error {
	campos, err := encodeSesion(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(campos) == 0 {
		delete(m.entries, id)
		return nil
	}
	e := &memEntry{campos: campos}
	if ttl > 0 {
		e.expira = m.now().Add(ttl)
	}
	m.entries[id] = e
	return nil
}

func (m *memorySessionStore) SetCajaActiva(_ context.Context, id, cajaID, sesionCajaID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := m.entry(id)
	if e == nil {
		return ErrSesionNoEncontrada
	}
	e.campos[campoCajaActiva] = cajaID
	if sesionCajaID != "" {
		e.campos[campoSesionCajaID] = sesionCajaID
	} else {
		delete(e.campos, campoSesionCajaID)
	}
	return nil
}

func (m *memorySessionStore) ClearCajaActiva(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e := m.entry(id); e != nil {
		delete(e.campos, campoCajaActiva)
		delete(e.campos, campoSesionCajaID)
	}
	return nil
}

func (m *memorySessionStore) Clear(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}
