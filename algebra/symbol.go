package algebra

// Kind is the closed enumeration of symbol kinds. Cross-cutting concerns
// (rendering, validation, record reloads) dispatch on it instead of
// scattering type assertions across call sites.
type Kind int

const (
	KindSet Kind = iota
	KindAlias
	KindParameter
	KindVariable
	KindEquation
)

func (k Kind) String() string {
	switch k {
	case KindSet:
		return "Set"
	case KindAlias:
		return "Alias"
	case KindParameter:
		return "Parameter"
	case KindVariable:
		return "Variable"
	case KindEquation:
		return "Equation"
	}
	return "Unknown"
}

// Symbol is a named symbolic object registered in a Container.
type Symbol interface {
	// Name returns the registered symbol name.
	Name() string
	// Kind returns the symbol's kind tag.
	Kind() Kind
	// Description returns the optional quoted description.
	Description() string
	// Domain returns the declared index domain; empty means scalar.
	Domain() []IndexSet
	// Dimension is the total index arity, counting multi-dimensional
	// domain entries once per spanned position.
	Dimension() int
	// Container returns the owning container.
	Container() *Container
	// Modified reports whether host-side records are stale relative to the
	// external runtime's last known state.
	Modified() bool

	declaration() string
	setModified(bool)
}

// symbolBase carries the state shared by every symbol kind.
type symbolBase struct {
	name        string
	description string
	domain      []IndexSet
	cont        *Container
	modified    bool
}

func (s *symbolBase) Name() string          { return s.name }
func (s *symbolBase) Description() string   { return s.description }
func (s *symbolBase) Domain() []IndexSet    { return s.domain }
func (s *symbolBase) Container() *Container { return s.cont }
func (s *symbolBase) Modified() bool        { return s.modified }
func (s *symbolBase) setModified(m bool)    { s.modified = m }

func (s *symbolBase) Dimension() int {
	return domainDimension(s.domain)
}

// domainDimension sums the dimensions of the entries, so a multi-dimensional
// entry contributes more than one position.
func domainDimension(domain []IndexSet) int {
	dim := 0
	for _, d := range domain {
		dim += d.Dimension()
	}
	return dim
}

// markAssigned flags the symbol and its container as out of sync with the
// external runtime.
func (s *symbolBase) markAssigned() {
	s.modified = true
}
