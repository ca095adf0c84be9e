package algebra

import "strings"

// Set is a named, ordered, deduplicated label collection. It doubles as an
// index symbol: referencing a Set inside an expression stands for "each
// element of the set".
type Set struct {
	symbolBase
	operable
	singleton  bool
	forwarding bool
	records    [][]string
	seen       map[string]bool
}

// NewSet declares a set in the container. Redeclaring an existing name is
// legal only when domain, singleton-ness and domain forwarding are unchanged;
// the redeclaration then just overwrites description and records.
func NewSet(c *Container, name string, opts ...Option) (*Set, error) {
	cfg := buildConfig(opts)
	if len(cfg.domain) == 0 {
		cfg.domain = []IndexSet{Universe}
	}

	if existing, ok := c.Get(name); ok {
		prior, isSet := existing.(*Set)
		if !isSet {
			return nil, validationf("cannot redeclare %s %q as a Set", existing.Kind(), name)
		}
		if err := prior.checkRedeclaration(cfg); err != nil {
			return nil, err
		}
		prior.applyOverwrites(cfg)
		if cfg.hasRecords {
			if err := prior.SetRecords(cfg.records); err != nil {
				return nil, err
			}
		}
		return prior, nil
	}

	if err := c.validateOwnership(name, cfg.domain); err != nil {
		return nil, err
	}

	s := &Set{
		symbolBase: symbolBase{
			name:        name,
			description: cfg.description,
			domain:      cfg.domain,
			cont:        c,
		},
		singleton:  cfg.singleton,
		forwarding: cfg.forwarding,
		seen:       make(map[string]bool),
	}
	s.bind(s)
	if err := c.register(s); err != nil {
		return nil, err
	}
	if cfg.hasRecords {
		if err := s.SetRecords(cfg.records); err != nil {
			// registration already happened; roll it back so no
			// partially-valid symbol survives
			_ = c.Remove(name)
			return nil, err
		}
	}
	return s, nil
}

func (s *Set) checkRedeclaration(cfg declConfig) error {
	if !sameDomain(s.domain, cfg.domain) {
		return validationf("redeclaration of set %q changes its domain", s.name)
	}
	if cfg.singleton != s.singleton {
		return validationf("redeclaration of set %q changes singleton-ness", s.name)
	}
	if cfg.forwarding != s.forwarding {
		return validationf("redeclaration of set %q changes domain forwarding", s.name)
	}
	return nil
}

func (s *Set) applyOverwrites(cfg declConfig) {
	if cfg.hasDescription {
		s.description = cfg.description
	}
}

// Kind returns KindSet.
func (s *Set) Kind() Kind { return KindSet }

// IsSingleton reports whether the set admits at most one element.
func (s *Set) IsSingleton() bool { return s.singleton }

// DomainForwarding reports whether assignments through this set may grow its
// domain sets.
func (s *Set) DomainForwarding() bool { return s.forwarding }

// SetRecords replaces the set's labels. Host values are normalized through
// the records bridge; duplicate label tuples collapse onto their first
// occurrence, preserving insertion order.
func (s *Set) SetRecords(data any) error {
	tuples, err := toLabelTuples(data, s.Dimension())
	if err != nil {
		return err
	}
	records := make([][]string, 0, len(tuples))
	seen := make(map[string]bool, len(tuples))
	for _, tuple := range tuples {
		key := strings.Join(tuple, "\x1f")
		if seen[key] {
			continue
		}
		seen[key] = true
		records = append(records, tuple)
	}
	if s.singleton && len(records) != 1 {
		return validationf(
			"singleton set %q requires exactly 1 record, got %d", s.name, len(records))
	}
	s.records = records
	s.seen = seen
	s.markAssigned()
	return nil
}

// Records returns the label tuples in insertion order.
func (s *Set) Records() [][]string { return s.records }

// Labels returns the first position of every record; the natural view for
// one-dimensional sets.
func (s *Set) Labels() []string {
	out := make([]string, len(s.records))
	for i, r := range s.records {
		out[i] = r[0]
	}
	return out
}

// Len returns the number of records.
func (s *Set) Len() int { return len(s.records) }

// contains reports whether the label appears in any position of any record.
func (s *Set) contains(label string) bool {
	for _, r := range s.records {
		for _, l := range r {
			if l == label {
				return true
			}
		}
	}
	return false
}

// Ref builds an indexed view of the set, e.g. sub.Ref(i) for membership
// tests and membership assignment.
func (s *Set) Ref(idx ...Index) (*SetRef, error) {
	dom, err := expandIndices(s, idx)
	if err != nil {
		return nil, err
	}
	return newSetRef(s, dom), nil
}

// SameAs builds the element-wise identity comparison with another index
// symbol.
func (s *Set) SameAs(other IndexSet) Operand {
	return SameAs(s, other)
}

// First is the set attribute that is nonzero on the first element.
func (s *Set) First() Operand { return newSetAttr(s, "first") }

// Last is the set attribute that is nonzero on the last element.
func (s *Set) Last() Operand { return newSetAttr(s, "last") }

// Pos is the set attribute holding the element's relative position.
func (s *Set) Pos() Operand { return newSetAttr(s, "pos") }

// setAttr is a set attribute reference such as i.first. It is element-wise
// over the set, so the set itself is its free domain.
type setAttr struct {
	operable
	set  IndexSet
	attr string
}

func newSetAttr(set IndexSet, attr string) *setAttr {
	a := &setAttr{set: set, attr: attr}
	a.bind(a)
	return a
}

func (a *setAttr) Render() string               { return a.set.Name() + "." + a.attr }
func (a *setAttr) FreeDomain() []IndexSet       { return []IndexSet{a.set} }
func (a *setAttr) ControlledDomain() []IndexSet { return nil }

func (a *setAttr) substitute(sub substitution) Operand {
	if repl, ok := sub[a.set.Name()]; ok {
		return newSetAttr(repl, a.attr)
	}
	return a
}

// IndexSet implementation: a Set is its own root.

func (s *Set) Root() *Set         { return s }
func (s *Set) indexText() string  { return s.name }
func (s *Set) owner() *Container  { return s.cont }
func (s *Set) isIndexSet()        {}

// Operand implementation: a bare set reference stands for its own index.

func (s *Set) Render() string               { return s.name }
func (s *Set) FreeDomain() []IndexSet       { return []IndexSet{s} }
func (s *Set) ControlledDomain() []IndexSet { return nil }

func (s *Set) substitute(sub substitution) Operand {
	if repl, ok := sub[s.name]; ok {
		return repl
	}
	return s
}

func (s *Set) declaration() string {
	var b strings.Builder
	if s.singleton {
		b.WriteString("Singleton ")
	}
	b.WriteString("Set ")
	b.WriteString(s.name)
	b.WriteString(domainText(indexSetsToIndices(s.domain)))
	if s.description != "" {
		b.WriteString(` "` + s.description + `"`)
	}
	if len(s.records) > 0 {
		parts := make([]string, len(s.records))
		for i, r := range s.records {
			parts[i] = strings.Join(r, ".")
		}
		b.WriteString(" / " + strings.Join(parts, ", ") + " /")
	}
	b.WriteString(";")
	return b.String()
}
