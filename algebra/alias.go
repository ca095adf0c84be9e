package algebra

// Alias is a named reference to a Set (possibly through another Alias). It
// is interchangeable with its root set for domain purposes but provides a
// distinct index symbol, which is what disambiguates repeated use of one set
// within a single expression. An Alias never owns labels.
type Alias struct {
	symbolBase
	operable
	aliasWith IndexSet
	root      *Set
}

// NewAlias declares an alias of an existing set or alias. The chain must
// resolve to exactly one root set; self-referential chains are rejected.
func NewAlias(c *Container, name string, aliasWith IndexSet) (*Alias, error) {
	if aliasWith == nil {
		return nil, typeErrorf("alias %q: aliased symbol must not be nil", name)
	}
	if aliasWith.Root() == nil {
		return nil, typeErrorf("alias %q: cannot alias the universe wildcard", name)
	}
	if aliasWith.owner() != c {
		return nil, validationf(
			"alias %q: aliased symbol %q belongs to a different container",
			name, aliasWith.Name())
	}

	if existing, ok := c.Get(name); ok {
		prior, isAlias := existing.(*Alias)
		if !isAlias {
			return nil, validationf("cannot redeclare %s %q as an Alias", existing.Kind(), name)
		}
		if prior.aliasWith != aliasWith {
			return nil, validationf("redeclaration of alias %q changes the aliased symbol", name)
		}
		return prior, nil
	}

	root, err := resolveRoot(name, aliasWith)
	if err != nil {
		return nil, err
	}

	a := &Alias{
		symbolBase: symbolBase{name: name, cont: c},
		aliasWith:  aliasWith,
		root:       root,
	}
	a.bind(a)
	if err := c.register(a); err != nil {
		return nil, err
	}
	return a, nil
}

// resolveRoot follows the alias chain to its root set. The walk is bounded
// by a visited map so a malformed self-referential chain fails instead of
// looping forever.
func resolveRoot(name string, aliasWith IndexSet) (*Set, error) {
	visited := map[string]bool{name: true}
	current := aliasWith
	for {
		if set, ok := current.(*Set); ok {
			return set, nil
		}
		alias, ok := current.(*Alias)
		if !ok {
			return nil, typeErrorf("alias %q: aliased symbol must be a Set or Alias, got %T", name, current)
		}
		if visited[alias.Name()] {
			return nil, validationf("alias %q: self-referential alias chain", name)
		}
		visited[alias.Name()] = true
		current = alias.aliasWith
	}
}

// Kind returns KindAlias.
func (a *Alias) Kind() Kind { return KindAlias }

// AliasWith returns the directly aliased symbol.
func (a *Alias) AliasWith() IndexSet { return a.aliasWith }

// Domain delegates to the root set; an alias has no domain of its own.
func (a *Alias) Domain() []IndexSet { return a.root.Domain() }

// Dimension delegates to the root set.
func (a *Alias) Dimension() int { return a.root.Dimension() }

// Records delegates to the root set; an alias never owns labels.
func (a *Alias) Records() [][]string { return a.root.Records() }

// First is the set attribute that is nonzero on the first element.
func (a *Alias) First() Operand { return newSetAttr(a, "first") }

// Last is the set attribute that is nonzero on the last element.
func (a *Alias) Last() Operand { return newSetAttr(a, "last") }

// Pos is the set attribute holding the element's relative position.
func (a *Alias) Pos() Operand { return newSetAttr(a, "pos") }

// Ref builds an indexed view, like Set.Ref.
func (a *Alias) Ref(idx ...Index) (*SetRef, error) {
	dom, err := expandIndices(a, idx)
	if err != nil {
		return nil, err
	}
	return newSetRef(a, dom), nil
}

// IndexSet implementation.

func (a *Alias) Root() *Set        { return a.root }
func (a *Alias) indexText() string { return a.name }
func (a *Alias) owner() *Container { return a.cont }
func (a *Alias) isIndexSet()       {}

// Operand implementation.

func (a *Alias) Render() string               { return a.name }
func (a *Alias) FreeDomain() []IndexSet       { return []IndexSet{a} }
func (a *Alias) ControlledDomain() []IndexSet { return nil }

func (a *Alias) substitute(sub substitution) Operand {
	if repl, ok := sub[a.name]; ok {
		return repl
	}
	return a
}

func (a *Alias) declaration() string {
	return "Alias(" + a.aliasWith.Name() + "," + a.name + ");"
}
