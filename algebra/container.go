package algebra

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/vk/optmodel/internal/ident"
)

// Container is the per-model symbol registry: an ordered name-to-symbol
// mapping plus the ordered log of statements (declarations, assignments,
// solve directives) that the code generator serializes. A Container is a
// single-owner object graph; symbols from one Container never appear in the
// domains or expressions of another.
type Container struct {
	logger     *slog.Logger
	data       map[string]Symbol
	order      []string
	statements []Statement
}

// ContainerOption customizes a new Container.
type ContainerOption func(*Container)

// WithLogger attaches a logger used to debug-log registry mutations.
func WithLogger(logger *slog.Logger) ContainerOption {
	return func(c *Container) { c.logger = logger }
}

// NewContainer creates an empty registry. There is deliberately no implicit
// default container; every symbol constructor takes its registry explicitly.
func NewContainer(opts ...ContainerOption) *Container {
	c := &Container{data: make(map[string]Symbol)}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Get looks up a symbol by name.
func (c *Container) Get(name string) (Symbol, bool) {
	sym, ok := c.data[name]
	return sym, ok
}

// Symbols returns all registered symbols in insertion order.
func (c *Container) Symbols() []Symbol {
	out := make([]Symbol, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.data[name])
	}
	return out
}

// ModifiedSymbols returns the symbols whose host-side records are stale
// relative to the last external-runtime round trip, in insertion order.
// Only these need to be re-fetched after a solve.
func (c *Container) ModifiedSymbols() []Symbol {
	var out []Symbol
	for _, name := range c.order {
		if c.data[name].Modified() {
			out = append(out, c.data[name])
		}
	}
	return out
}

// register validates the name and stores the symbol, appending its
// declaration to the statement log.
func (c *Container) register(sym Symbol) error {
	if err := ident.Validate(sym.Name()); err != nil {
		return &ValidationError{Message: err.Error()}
	}
	if _, exists := c.data[sym.Name()]; exists {
		return validationf("symbol %q already exists in the container", sym.Name())
	}
	c.data[sym.Name()] = sym
	c.order = append(c.order, sym.Name())
	c.statements = append(c.statements, declarationStatement{sym: sym})
	c.logger.Debug("symbol registered", "name", sym.Name(), "kind", sym.Kind().String())
	return nil
}

// addAssignment appends a rendered assignment statement targeting the named
// symbol.
func (c *Container) addAssignment(target string, text string) {
	c.statements = append(c.statements, textStatement{target: target, text: text})
	c.logger.Debug("assignment recorded", "target", target)
}

// addDirective appends a rendered statement not tied to one data symbol
// (model declarations, solve directives).
func (c *Container) addDirective(text string) {
	c.statements = append(c.statements, textStatement{text: text})
}

// Remove deletes symbols in bulk and rewrites the statement log so that
// neither the declarations nor any assignment targeting a removed symbol
// survives. Removal fails if a surviving symbol still references a removed
// one in its domain.
func (c *Container) Remove(names ...string) error {
	doomed := make(map[string]bool, len(names))
	for _, name := range names {
		if _, ok := c.data[name]; !ok {
			return validationf("cannot remove %q: no such symbol", name)
		}
		doomed[name] = true
	}

	for _, keepName := range c.order {
		if doomed[keepName] {
			continue
		}
		for _, d := range c.data[keepName].Domain() {
			if d.Root() != nil && doomed[d.Name()] {
				return validationf(
					"cannot remove %q: symbol %q still uses it in its domain",
					d.Name(), keepName)
			}
		}
		if alias, ok := c.data[keepName].(*Alias); ok && doomed[alias.AliasWith().Name()] {
			return validationf(
				"cannot remove %q: alias %q still references it",
				alias.AliasWith().Name(), keepName)
		}
	}

	kept := c.order[:0]
	for _, name := range c.order {
		if doomed[name] {
			delete(c.data, name)
		} else {
			kept = append(kept, name)
		}
	}
	c.order = kept

	rewritten := make([]Statement, 0, len(c.statements))
	for _, st := range c.statements {
		if doomed[st.targetSymbol()] {
			continue
		}
		rewritten = append(rewritten, st)
	}
	c.statements = rewritten
	c.logger.Debug("symbols removed", "count", len(names))
	return nil
}

// validateOwnership checks that every real set in the domain lives in this
// container. Identity-based ownership at construction time is the only
// locking discipline the core needs.
func (c *Container) validateOwnership(name string, domain []IndexSet) error {
	for _, d := range domain {
		if d.owner() != nil && d.owner() != c {
			return validationf(
				"domain entry %q of %q belongs to a different container",
				d.Name(), name)
		}
	}
	return nil
}

// nextAlias returns a fresh, deterministically named index symbol over the
// same root set, reusing an already-registered disambiguation alias when one
// exists. Names follow AliasOf<set>_<n> with a monotonically increasing n,
// so repeated runs generate identical source text.
func (c *Container) nextAlias(s IndexSet) (IndexSet, error) {
	prefix := "AliasOf" + s.Name()
	num := 1
	if i := strings.LastIndex(s.Name(), "_"); i > 0 && strings.HasPrefix(s.Name(), "AliasOf") {
		if n, err := strconv.Atoi(s.Name()[i+1:]); err == nil {
			prefix = s.Name()[:i]
			num = n
		}
	}

	expected := fmt.Sprintf("%s_%d", prefix, num+1)
	if sym, ok := c.data[expected]; ok {
		alias, isAlias := sym.(*Alias)
		if !isAlias {
			return nil, validationf(
				"cannot disambiguate over %q: name %q is taken by a %s",
				s.Name(), expected, sym.Kind())
		}
		return alias, nil
	}
	return NewAlias(c, expected, s)
}

// GenerateSource serializes the statement log to declarative source text,
// one statement per line, in recorded order.
func (c *Container) GenerateSource() string {
	var b strings.Builder
	for i, st := range c.statements {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(st.Text())
	}
	return b.String()
}

// Statements returns the rendered statement log.
func (c *Container) Statements() []string {
	out := make([]string, len(c.statements))
	for i, st := range c.statements {
		out[i] = st.Text()
	}
	return out
}

// Statement is one unit of generated source text held in the log.
type Statement interface {
	// Text renders the statement.
	Text() string
	// targetSymbol names the symbol the statement belongs to, "" for
	// directives that survive any removal.
	targetSymbol() string
}

// declarationStatement renders lazily so that records attached after
// declaration still appear in the generated data block.
type declarationStatement struct {
	sym Symbol
}

func (d declarationStatement) Text() string         { return d.sym.declaration() }
func (d declarationStatement) targetSymbol() string { return d.sym.Name() }

// textStatement is an eagerly rendered assignment or directive. Expression
// trees are ephemeral, so their text is captured at append time.
type textStatement struct {
	target string
	text   string
}

func (t textStatement) Text() string         { return t.text }
func (t textStatement) targetSymbol() string { return t.target }
