package scenario

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

var (
	ErrScenarioNotFound = errors.New("scenario not found")
	ErrInvalidScenario  = errors.New("invalid scenario")
)

// Info summarizes a scenario file for listings
type Info struct {
	Filename    string `json:"filename"`
	ScenarioID  string `json:"scenario_id"` // The identifier to use when running the scenario
	Name        string `json:"name"`
	Description string `json:"description"`
	GridSize    int    `json:"grid_size"`
	Obstacles   int    `json:"obstacles"`
	Commands    int    `json:"commands"`
}

// Manager handles scenario loading and caching
type Manager struct {
	dir             string
	defaultScenario *Scenario
	scenarios       map[string]*Scenario
	mu              sync.RWMutex
}

// NewManager creates a new scenario manager rooted at dir
func NewManager(dir string) (*Manager, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, fmt.Errorf("scenario directory does not exist: %s", dir)
	}

	m := &Manager{
		dir:       dir,
		scenarios: make(map[string]*Scenario),
	}

	if err := m.loadDefaultScenario(); err != nil {
		return nil, fmt.Errorf("failed to load default scenario: %w", err)
	}

	return m, nil
}

// Dir returns the directory scenarios are read from
func (m *Manager) Dir() string {
	return m.dir
}

// LoadScenario loads a scenario by name
func (m *Manager) LoadScenario(name string) (*Scenario, error) {
	name = strings.TrimSuffix(name, ".json")
	if name == "" || strings.ContainsAny(name, `/\`) || name == ".." {
		return nil, ErrScenarioNotFound
	}

	m.mu.RLock()
	if s, exists := m.scenarios[name]; exists {
		m.mu.RUnlock()
		return s, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if s, exists := m.scenarios[name]; exists {
		return s, nil
	}

	data, err := os.ReadFile(filepath.Join(m.dir, name+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrScenarioNotFound
		}
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: failed to parse scenario: %v", ErrInvalidScenario, err)
	}

	if err := Validate(&s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}

	m.scenarios[name] = &s
	return &s, nil
}

// ListScenarios returns information about all valid scenario files, sorted by filename
func (m *Manager) ListScenarios() ([]*Info, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario directory: %w", err)
	}

	var infos []*Info

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		id := strings.TrimSuffix(entry.Name(), ".json")

		s, err := m.LoadScenario(id)
		if err != nil {
			// Skip invalid scenarios
			continue
		}

		infos = append(infos, &Info{
			Filename:    entry.Name(),
			ScenarioID:  id,
			Name:        s.Name,
			Description: s.Description,
			GridSize:    s.GridSize,
			Obstacles:   len(s.Obstacles),
			Commands:    len(s.Commands),
		})
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Filename < infos[j].Filename })
	return infos, nil
}

// GetDefault returns the default scenario
func (m *Manager) GetDefault() *Scenario {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultScenario
}

// SetDefault sets the default scenario by name
func (m *Manager) SetDefault(name string) error {
	s, err := m.LoadScenario(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultScenario = s
	return nil
}

// RefreshCache drops cached scenarios so the next load rereads them from disk
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.scenarios = make(map[string]*Scenario)
	m.mu.Unlock()

	return m.loadDefaultScenario()
}

// SaveScenario validates and writes a scenario to disk
func (m *Manager) SaveScenario(name string, s *Scenario) error {
	if err := Validate(s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}

	name = strings.TrimSuffix(name, ".json")
	if name == "" || strings.ContainsAny(name, `/\`) || name == ".." {
		return fmt.Errorf("%w: invalid scenario id %q", ErrInvalidScenario, name)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal scenario: %w", err)
	}

	if err := os.WriteFile(filepath.Join(m.dir, name+".json"), data, 0644); err != nil {
		return fmt.Errorf("failed to write scenario file: %w", err)
	}

	m.mu.Lock()
	m.scenarios[name] = s
	m.mu.Unlock()

	return nil
}

// loadDefaultScenario prefers "default.json", then the first file found, then the built-in scenario
func (m *Manager) loadDefaultScenario() error {
	s, err := m.LoadScenario("default")
	if err != nil {
		infos, listErr := m.ListScenarios()
		if listErr != nil || len(infos) == 0 {
			s = Default()
		} else if s, err = m.LoadScenario(infos[0].ScenarioID); err != nil {
			s = Default()
		}
	}

	m.mu.Lock()
	m.defaultScenario = s
	m.mu.Unlock()
	return nil
}
