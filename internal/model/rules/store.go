package rules

// Store exposes the matcher tables to services and HTTP handlers.
type Store interface {
	Catalog() Catalog
	Table(d Dimension) ([]Rule, bool)
}

// MemoryStore implements Store with an in-memory catalog.
type MemoryStore struct {
	catalog Catalog
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied catalog.
func NewMemoryStore(catalog Catalog) *MemoryStore {
	return &MemoryStore{catalog: catalog.Clone()}
}

// Catalog returns a copy of every table.
func (s *MemoryStore) Catalog() Catalog {
	return s.catalog.Clone()
}

// Table returns a copy of one dimension's rules.
func (s *MemoryStore) Table(d Dimension) ([]Rule, bool) {
	table, ok := s.catalog.Table(d)
	if !ok {
		return nil, false
	}
	return cloneRules(table), true
}
