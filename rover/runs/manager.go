package runs

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wricardo/mcp-training/roversim/rover/service"
)

var (
	ErrRunNotFound      = errors.New("run not found")
	ErrRunAlreadyExists = errors.New("run already exists")
	ErrInvalidRun       = errors.New("invalid run")
)

// Manager keeps completed runs in memory
type Manager struct {
	runs map[string]*service.Run
	mu   sync.RWMutex
}

// NewManager creates a new run manager
func NewManager() *Manager {
	return &Manager{
		runs: make(map[string]*service.Run),
	}
}

// Add stores a run, generating an ID when none is set
func (m *Manager) Add(run *service.Run) (*service.Run, error) {
	if run == nil || run.Request == nil {
		return nil, ErrInvalidRun
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	now := time.Now()
	if run.CreatedAt.IsZero() {
		run.CreatedAt = now
	}
	if run.LastAccessedAt.IsZero() {
		run.LastAccessedAt = now
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToLower(run.ID)
	if _, exists := m.runs[key]; exists {
		return nil, ErrRunAlreadyExists
	}

	m.runs[key] = run
	cp := *run
	return &cp, nil
}

// Get retrieves a copy of a run by ID (case-insensitive). Touch never
// mutates a returned copy.
func (m *Manager) Get(id string) (*service.Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	run, exists := m.runs[strings.ToLower(id)]
	if !exists {
		return nil, ErrRunNotFound
	}
	cp := *run
	return &cp, nil
}

// List returns copies of all runs, newest first
func (m *Manager) List() []*service.Run {
	m.mu.RLock()
	result := make([]*service.Run, 0, len(m.runs))
	for _, run := range m.runs {
		cp := *run
		result = append(result, &cp)
	}
	m.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

// Delete removes a run
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToLower(id)
	if _, exists := m.runs[key]; !exists {
		return ErrRunNotFound
	}
	delete(m.runs, key)
	return nil
}

// Touch updates the last accessed time for a run
func (m *Manager) Touch(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	run, exists := m.runs[strings.ToLower(id)]
	if !exists {
		return ErrRunNotFound
	}
	run.LastAccessedAt = time.Now()
	return nil
}

// CleanupExpired removes runs that haven't been accessed in the given duration
func (m *Manager) CleanupExpired(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0

	for id, run := range m.runs {
		if run.LastAccessedAt.Before(cutoff) {
			delete(m.runs, id)
			removed++
		}
	}

	return removed
}

// Count returns the number of stored runs
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.runs)
}
