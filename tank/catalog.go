package tank

import "fmt"

// Catalog is an ordered, name-unique list of tanks. Order is preserved from
// the input table so LP variable indices and plan rows stay deterministic.
type Catalog []Tank

// NewCatalog validates every tank and the uniqueness of names, returning an
// independent copy of the input slice.
func NewCatalog(tanks []Tank) (Catalog, error) {
	seen := make(map[string]struct{}, len(tanks))
	cat := make(Catalog, len(tanks))
	for i, t := range tanks {
		if _, dup := seen[t.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTank, t.Name)
		}
		seen[t.Name] = struct{}{}
		if err := t.Validate(); err != nil {
			return nil, err
		}
		cat[i] = t
	}

	return cat, nil
}

// Clone returns a deep copy. Tanks are plain values, so a slice copy is a
// full isolation boundary; what-if scenario runs rely on this.
func (c Catalog) Clone() Catalog {
	cp := make(Catalog, len(c))
	copy(cp, c)

	return cp
}

// State snapshots the current content of every tank, keyed by name. This is
// the map the sequencer carries forward between stages.
func (c Catalog) State() map[string]float64 {
	m := make(map[string]float64, len(c))
	for _, t := range c {
		m[t.Name] = t.Current
	}

	return m
}

// WithState returns a copy of the catalog with each tank's content replaced
// from state (clamped to the tank's [Min, Max]). Tanks absent from the map
// keep their catalog content.
func (c Catalog) WithState(state map[string]float64) Catalog {
	cp := c.Clone()
	for i, t := range cp {
		if tons, ok := state[t.Name]; ok {
			cp[i] = t.WithCurrent(tons)
		}
	}

	return cp
}

// Find returns the tank with the given name and whether it exists.
func (c Catalog) Find(name string) (Tank, bool) {
	for _, t := range c {
		if t.Name == name {
			return t, true
		}
	}

	return Tank{}, false
}
