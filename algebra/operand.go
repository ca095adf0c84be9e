package algebra

import (
	"strconv"
	"strings"

	"github.com/vk/optmodel/internal/sentinel"
)

// Operand is one node of an expression tree: a symbol reference, a literal,
// or a composite operation. Operands are ephemeral; they are built for a
// single statement and consumed by rendering.
type Operand interface {
	// Render serializes the node to a source-text fragment.
	Render() string
	// FreeDomain returns the ordered free indices of the node.
	FreeDomain() []IndexSet
	// ControlledDomain returns the indices contracted away inside the node.
	ControlledDomain() []IndexSet
	// substitute rewrites leaf references per the mapping and returns the
	// rewritten node. Indices bound by an inner reduction shadow the mapping.
	substitute(sub substitution) Operand
}

// substitution maps an index symbol name to its replacement.
type substitution map[string]IndexSet

// Index is anything accepted as an index argument when referencing a symbol:
// a Set, an Alias, a quoted label literal, or the All wildcard.
type Index interface {
	indexText() string
}

// Lit is a literal label used as an index, e.g. a.Ref(Lit("i1")).
// It renders quoted.
type Lit string

func (l Lit) indexText() string { return `"` + string(l) + `"` }

type allIndices struct{}

func (allIndices) indexText() string { return "..." }

// All expands to the full declared domain of the referenced symbol. It is
// the only legal index for a scalar symbol.
var All Index = allIndices{}

// IndexSet is an index symbol usable as a domain axis: a Set, an Alias, or
// the Universe wildcard.
type IndexSet interface {
	Index
	Operand
	// Name returns the index symbol's name.
	Name() string
	// Root resolves the underlying Set; a Set resolves to itself and the
	// Universe wildcard to nil.
	Root() *Set
	// Dimension returns the number of index positions this entry spans.
	Dimension() int
	owner() *Container
	isIndexSet()
}

type universe struct{}

func (universe) indexText() string             { return "*" }
func (universe) Render() string                { return "*" }
func (universe) Name() string                  { return "*" }
func (universe) Root() *Set                    { return nil }
func (universe) Dimension() int                { return 1 }
func (universe) owner() *Container             { return nil }
func (universe) isIndexSet()                   {}
func (universe) FreeDomain() []IndexSet        { return nil }
func (universe) ControlledDomain() []IndexSet  { return nil }
func (u universe) substitute(substitution) Operand { return u }

// Universe is the wildcard domain axis that admits any label.
var Universe IndexSet = universe{}

// sameBase reports whether two index symbols denote provably the same
// underlying set, directly or through aliases. The Universe wildcard is
// compatible with everything.
func sameBase(a, b IndexSet) bool {
	if a.Root() == nil || b.Root() == nil {
		return true
	}
	return a.Root() == b.Root()
}

// containsIndex reports whether dom contains an entry with the same symbol
// name as idx.
func containsIndex(dom []IndexSet, idx IndexSet) bool {
	for _, d := range dom {
		if d.Name() == idx.Name() {
			return true
		}
	}
	return false
}

// mergeDomains computes the order-preserving positional union of two free
// domains, deduplicated by index symbol name.
func mergeDomains(a, b []IndexSet) []IndexSet {
	out := make([]IndexSet, 0, len(a)+len(b))
	for _, d := range a {
		if !containsIndex(out, d) {
			out = append(out, d)
		}
	}
	for _, d := range b {
		if !containsIndex(out, d) {
			out = append(out, d)
		}
	}
	return out
}

// freeOf and controlledOf tolerate nil operands (unary expressions).
func freeOf(op Operand) []IndexSet {
	if op == nil {
		return nil
	}
	return op.FreeDomain()
}

func controlledOf(op Operand) []IndexSet {
	if op == nil {
		return nil
	}
	return op.ControlledDomain()
}

// Number is a numeric literal operand. The runtime's special values
// (infinities, NA, EPS) render as their source-text names.
type Number struct {
	operable
	value float64
}

// Num wraps a float64 as a literal operand.
func Num(v float64) *Number {
	n := &Number{value: v}
	n.bind(n)
	return n
}

// Value returns the wrapped float64.
func (n *Number) Value() float64 { return n.value }

func (n *Number) Render() string {
	if s := sentinel.Classify(n.value); s != sentinel.None {
		return sentinel.Name(s)
	}
	text := strconv.FormatFloat(n.value, 'g', -1, 64)
	if n.value < 0 {
		// A bare negative literal directly after an operator is not valid
		// source text, so it is always parenthesized.
		return "(" + text + ")"
	}
	return text
}

func (n *Number) FreeDomain() []IndexSet       { return nil }
func (n *Number) ControlledDomain() []IndexSet { return nil }

func (n *Number) substitute(substitution) Operand { return n }

// toOperand coerces a host value into an operand. Numeric host types wrap
// into Number; booleans render as the runtime's yes/no.
func toOperand(v any) (Operand, error) {
	switch x := v.(type) {
	case Operand:
		return x, nil
	case float64:
		return Num(x), nil
	case float32:
		return Num(float64(x)), nil
	case int:
		return Num(float64(x)), nil
	case int64:
		return Num(float64(x)), nil
	case bool:
		if x {
			return word("yes"), nil
		}
		return word("no"), nil
	case nil:
		return nil, nil
	}
	return nil, typeErrorf("operand must be an expression, a symbol reference or a number, got %T", v)
}

func mustOperand(v any) Operand {
	op, err := toOperand(v)
	if err != nil {
		panic(err)
	}
	return op
}

// word is a bare keyword operand such as yes/no.
type word string

func (w word) Render() string                { return string(w) }
func (w word) FreeDomain() []IndexSet        { return nil }
func (w word) ControlledDomain() []IndexSet  { return nil }
func (w word) substitute(substitution) Operand { return w }

// domainText renders a domain list as a parenthesized index tuple.
// Literal entries render quoted, the wildcard as *.
func domainText(dom []Index) string {
	if len(dom) == 0 {
		return ""
	}
	parts := make([]string, len(dom))
	for i, d := range dom {
		parts[i] = d.indexText()
	}
	return "(" + strings.Join(parts, ",") + ")"
}

func indexSetsToIndices(dom []IndexSet) []Index {
	out := make([]Index, len(dom))
	for i, d := range dom {
		out[i] = d
	}
	return out
}
