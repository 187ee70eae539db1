// Package policy holds the in-memory filter-policy table: for every
// (role, resource) pair, the row-level security filter configuration the
// engine interprets. The table is data supplied by operators, loaded once at
// startup and optionally hot-reloaded.
package policy

import (
	"sync"

	"fieldops/internal/rls"
)

// Table maps role -> resource -> filter config.
type Table map[string]map[string]rls.FilterConfig

// Store provides thread-safe lookup over a policy table. Lookup is total:
// unknown roles or resources resolve to DenyAll.
type Store struct {
	mu    sync.RWMutex
	table Table
}

func NewStore() *Store {
	return &Store{table: Table{}}
}

// Lookup resolves the filter config for a (role, resource) pair,
// defaulting to DenyAll when either is unknown.
func (s *Store) Lookup(role, resource string) rls.FilterConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	resources, ok := s.table[role]
	if !ok {
		return rls.DenyAll()
	}
	cfg, ok := resources[resource]
	if !ok {
		return rls.DenyAll()
	}
	return cfg
}

// Replace swaps in a new table atomically.
func (s *Store) Replace(t Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = t
}

// SetFilter adds or overwrites a single entry.
func (s *Store) SetFilter(role, resource string, cfg rls.FilterConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.table[role] == nil {
		s.table[role] = map[string]rls.FilterConfig{}
	}
	s.table[role][resource] = cfg
}

// Roles returns the role names present in the table.
func (s *Store) Roles() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	roles := make([]string, 0, len(s.table))
	for r := range s.table {
		roles = append(roles, r)
	}
	return roles
}
