package dataset

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vinodismyname/mcpcsv/config"
)

// Handle pairs a loaded, immutable dataset with metadata for TTL eviction.
type Handle struct {
	ID       string
	Path     string
	Header   Header
	Data     Dataset
	LoadedAt time.Time

	mu        sync.Mutex
	expiresAt time.Time
}

// DatasetGate coordinates capacity for open dataset handles (backed by
// runtime.Controller).
type DatasetGate interface {
	AcquireDataset(ctx context.Context) error
	ReleaseDataset()
}

// PathValidator abstracts filesystem path validation. Implementations should
// return a canonical absolute path if allowed, or an error when denied.
type PathValidator interface {
	ValidateOpenPath(path string) (string, error)
}

// ErrHandleNotFound indicates an unknown or expired handle ID.
var ErrHandleNotFound = errors.New("dataset: handle not found")

// Manager caches loaded datasets behind uuid handles with idle-TTL eviction.
// Datasets are immutable once loaded, so reads need no per-handle locking;
// the manager only guards its own map and each handle's expiry timestamp.
type Manager struct {
	mu           sync.RWMutex
	handles      map[string]*Handle
	ttl          time.Duration
	cleanupEvery time.Duration
	clock        func() time.Time
	gate         DatasetGate
	stopCh       chan struct{}
	cleanupWG    sync.WaitGroup
	validator    PathValidator
}

// NewManager constructs a lifecycle manager with a TTL-bearing handle cache.
// Pass ttl or cleanupEvery <= 0 to use defaults from config. Gate can be nil
// for tests; clock defaults to time.Now when nil.
func NewManager(ttl, cleanupEvery time.Duration, gate DatasetGate, clock func() time.Time) *Manager {
	if ttl <= 0 {
		ttl = config.DefaultDatasetIdleTTL
	}
	if cleanupEvery <= 0 {
		cleanupEvery = config.DefaultDatasetCleanupPeriod
	}
	if clock == nil {
		clock = time.Now
	}
	return &Manager{
		handles:      make(map[string]*Handle),
		ttl:          ttl,
		cleanupEvery: cleanupEvery,
		clock:        clock,
		gate:         gate,
		stopCh:       make(chan struct{}),
	}
}

// SetValidator installs the security path validator consulted by Open.
func (m *Manager) SetValidator(v PathValidator) {
	m.validator = v
}

// Start launches periodic eviction of expired handles.
func (m *Manager) Start() {
	m.cleanupWG.Add(1)
	ticker := time.NewTicker(m.cleanupEvery)
	go func() {
		defer m.cleanupWG.Done()
		defer ticker.Stop()
		for {
			select {
			case <-m.stopCh:
				return
			case <-ticker.C:
				m.EvictExpired()
			}
		}
	}()
}

// Close stops background cleanup and drops all cached handles.
func (m *Manager) Close(ctx context.Context) error {
	close(m.stopCh)
	done := make(chan struct{})
	go func() { m.cleanupWG.Wait(); close(done) }()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for id := range m.handles {
		delete(m.handles, id)
		m.release()
	}
	return nil
}

// Open loads the dataset at path, registers a TTL-bearing handle, and returns
// its ID. The manager enforces open-dataset capacity via the gate when
// provided. Path policy, extension allow-listing included, belongs entirely to
// the validator when one is installed.
func (m *Manager) Open(ctx context.Context, path string) (string, error) {
	if err := m.acquire(ctx); err != nil {
		return "", err
	}

	if m.validator != nil {
		canonical, err := m.validator.ValidateOpenPath(path)
		if err != nil {
			m.release()
			return "", err
		}
		path = canonical
	}

	data, header, err := LoadWithHeader(path)
	if err != nil {
		m.release()
		return "", err
	}

	loadedAt := m.clock()
	h := &Handle{
		ID:        uuid.NewString(),
		Path:      path,
		Header:    header,
		Data:      data,
		LoadedAt:  loadedAt,
		expiresAt: loadedAt.Add(m.ttl),
	}

	m.mu.Lock()
	m.handles[h.ID] = h
	m.mu.Unlock()

	return h.ID, nil
}

// Adopt registers an already-loaded dataset as a managed handle. Intended for
// tests or advanced flows.
func (m *Manager) Adopt(ctx context.Context, header Header, data Dataset) (string, error) {
	if err := m.acquire(ctx); err != nil {
		return "", err
	}
	loadedAt := m.clock()
	h := &Handle{
		ID:        uuid.NewString(),
		Header:    header,
		Data:      data,
		LoadedAt:  loadedAt,
		expiresAt: loadedAt.Add(m.ttl),
	}
	m.mu.Lock()
	m.handles[h.ID] = h
	m.mu.Unlock()
	return h.ID, nil
}

// Get returns the handle when present and refreshes its TTL.
func (m *Manager) Get(id string) (*Handle, bool) {
	m.mu.RLock()
	h, ok := m.handles[id]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	// Refresh TTL on access (idle timeout semantics)
	now := m.clock()
	h.mu.Lock()
	h.expiresAt = now.Add(m.ttl)
	h.mu.Unlock()
	return h, true
}

// WithDataset resolves a handle and executes fn against its immutable data.
func (m *Manager) WithDataset(id string, fn func(Header, Dataset) error) error {
	h, ok := m.Get(id)
	if !ok {
		return ErrHandleNotFound
	}
	return fn(h.Header, h.Data)
}

// CloseHandle removes a handle by ID, releasing capacity via the gate.
func (m *Manager) CloseHandle(id string) error {
	m.mu.Lock()
	_, ok := m.handles[id]
	if ok {
		delete(m.handles, id)
	}
	m.mu.Unlock()
	if !ok {
		return ErrHandleNotFound
	}
	m.release()
	return nil
}

// EvictExpired drops handles whose idle TTL has elapsed.
func (m *Manager) EvictExpired() {
	now := m.clock()
	var expired []string

	m.mu.RLock()
	for id, h := range m.handles {
		if h.Expired(now) {
			expired = append(expired, id)
		}
	}
	m.mu.RUnlock()

	for _, id := range expired {
		m.mu.Lock()
		_, ok := m.handles[id]
		if ok {
			delete(m.handles, id)
		}
		m.mu.Unlock()
		if ok {
			m.release()
		}
	}
}

// Count returns the current number of cached handles.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.handles)
}

func (m *Manager) acquire(ctx context.Context) error {
	if m.gate == nil {
		return nil
	}
	return m.gate.AcquireDataset(ctx)
}

func (m *Manager) release() {
	if m.gate == nil {
		return
	}
	m.gate.ReleaseDataset()
}

// Expired reports whether the handle has reached its TTL.
func (h *Handle) Expired(now time.Time) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return now.After(h.expiresAt)
}
