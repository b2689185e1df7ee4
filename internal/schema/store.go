package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/revanth0212/commerce-extensibility-mcp/internal/common"
)

// Store owns the authoritative mapping from tool name to descriptor, plus
// the parallel name -> compiled validator cache. The two mappings are always
// updated together: a validator exists for every indexed name and vice versa.
type Store struct {
	dir    string
	logger *common.Logger

	mu          sync.RWMutex
	descriptors map[string]*Descriptor
	validators  map[string]*Validator
	order       []string
}

// NewStore creates a Store backed by a directory of *.json descriptors.
// Call Load before first use.
func NewStore(dir string, logger *common.Logger) *Store {
	return &Store{
		dir:         dir,
		logger:      logger,
		descriptors: map[string]*Descriptor{},
		validators:  map[string]*Validator{},
	}
}

// Load reads every descriptor document from the backing directory and
// rebuilds the index. Malformed or duplicate descriptors are logged and
// skipped — a single bad file never aborts the whole load. The new
// generation replaces the old atomically under the write lock, so lookups
// never observe a half-populated index.
func (s *Store) Load() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("failed to read schema directory %s: %w", s.dir, err)
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)

	descriptors := make(map[string]*Descriptor, len(files))
	validators := make(map[string]*Validator, len(files))
	order := make([]string, 0, len(files))

	for _, name := range files {
		path := filepath.Join(s.dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			s.logger.Warn().Str("file", name).Str("error", err.Error()).Msg("skipping unreadable descriptor")
			continue
		}
		d, err := ParseDescriptor(data)
		if err != nil {
			s.logger.Warn().Str("file", name).Str("error", err.Error()).Msg("skipping invalid descriptor")
			continue
		}
		if _, dup := descriptors[d.Name]; dup {
			s.logger.Warn().Str("file", name).Str("name", d.Name).Msg("skipping duplicate descriptor")
			continue
		}
		descriptors[d.Name] = d
		validators[d.Name] = Compile(d)
		order = append(order, d.Name)
	}

	s.mu.Lock()
	s.descriptors = descriptors
	s.validators = validators
	s.order = order
	s.mu.Unlock()

	s.logger.Info().Int("tools", len(order)).Str("dir", s.dir).Msg("tool descriptors loaded")
	return nil
}

// Reload clears the index and validator cache and re-runs Load. The swap is
// atomic; concurrent lookups see either the old generation or the new one.
func (s *Store) Reload() error {
	return s.Load()
}

// Get returns the descriptor for name.
func (s *Store) Get(name string) (*Descriptor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.descriptors[name]
	return d, ok
}

// Validator returns the compiled validator for name.
func (s *Store) Validator(name string) (*Validator, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.validators[name]
	return v, ok
}

// Lookup returns the descriptor and its compiled validator under a single
// read lock. Callers that need both must use this instead of separate Get
// and Validator calls, so a concurrent reload can never yield one without
// the other.
func (s *Store) Lookup(name string) (*Descriptor, *Validator, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.descriptors[name]
	if !ok {
		return nil, nil, false
	}
	return d, s.validators[name], true
}

// GetAll returns the loaded descriptors in load order (sorted file order,
// deterministic within a single load).
func (s *Store) GetAll() []*Descriptor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Descriptor, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.descriptors[name])
	}
	return out
}

// Names returns the loaded tool names in load order.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Count returns the number of loaded descriptors.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
