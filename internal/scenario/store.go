// Package scenario persists named simulation scenarios as YAML files under
// the data path, so an MCP client can save a configuration once and re-run or
// tweak it across sessions.
package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"cis-mcp/internal/simulation"
)

const fileExt = ".yaml"

var nameRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

// Store reads and writes scenario files in a single directory. Safe for
// concurrent use by the server and CLI handlers.
type Store struct {
	mu  sync.RWMutex
	dir string
}

// NewStore creates the scenario directory if needed and returns a store over it.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create scenario directory %q: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Save validates and writes a scenario under the given name, overwriting any
// previous version.
func (s *Store) Save(name string, cfg simulation.ScenarioConfig) error {
	if err := validName(name); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("scenario %q: %w", name, err)
	}

	data, err := marshalScenario(cfg)
	if err != nil {
		return fmt.Errorf("encode scenario %q: %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, name+fileExt)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write scenario %q: %w", name, err)
	}
	log.Debug().Str("name", name).Str("path", path).Msg("Scenario saved")
	return nil
}

// Get loads a named scenario. Stored files are validated on the way out so a
// hand-edited file can't smuggle an unrunnable configuration past the boundary.
func (s *Store) Get(name string) (simulation.ScenarioConfig, error) {
	if err := validName(name); err != nil {
		return simulation.ScenarioConfig{}, err
	}

	s.mu.RLock()
	data, err := os.ReadFile(filepath.Join(s.dir, name+fileExt))
	s.mu.RUnlock()
	if err != nil {
		if os.IsNotExist(err) {
			return simulation.ScenarioConfig{}, fmt.Errorf("scenario %q not found", name)
		}
		return simulation.ScenarioConfig{}, fmt.Errorf("read scenario %q: %w", name, err)
	}

	cfg, err := unmarshalScenario(data)
	if err != nil {
		return simulation.ScenarioConfig{}, fmt.Errorf("parse scenario %q: %w", name, err)
	}
	if err := cfg.Validate(); err != nil {
		return simulation.ScenarioConfig{}, fmt.Errorf("scenario %q: %w", name, err)
	}
	return cfg, nil
}

// List returns the saved scenario names in lexical order.
func (s *Store) List() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read scenario directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), fileExt))
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes a named scenario. Deleting a missing scenario is an error so
// clients get feedback on typos.
func (s *Store) Delete(name string) error {
	if err := validName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, name+fileExt)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("scenario %q not found", name)
		}
		return fmt.Errorf("delete scenario %q: %w", name, err)
	}
	return nil
}

func validName(name string) error {
	if !nameRe.MatchString(name) {
		return fmt.Errorf("invalid scenario name %q: use letters, digits, '-', '_' or '.'", name)
	}
	return nil
}
