package algebra

import (
	"sort"
	"strings"

	"github.com/vk/optmodel/internal/ident"
)

// Problem is the closed enumeration of problem types a model may declare.
type Problem int

const (
	LP Problem = iota
	MIP
	NLP
	MINLP
	QCP
	MIQCP
	DNLP
	CNS
	MCP
)

var problemNames = map[Problem]string{
	LP: "lp", MIP: "mip", NLP: "nlp", MINLP: "minlp", QCP: "qcp",
	MIQCP: "miqcp", DNLP: "dnlp", CNS: "cns", MCP: "mcp",
}

func (p Problem) String() string {
	if name, ok := problemNames[p]; ok {
		return name
	}
	return "unknown"
}

// Sense is the closed enumeration of optimization directions.
type Sense int

const (
	Minimize Sense = iota
	Maximize
	Feasibility
)

func (s Sense) String() string {
	switch s {
	case Minimize:
		return "minimizing"
	case Maximize:
		return "maximizing"
	case Feasibility:
		return "feasibility"
	}
	return "unknown"
}

// Model names a solvable group of equations. Declaring one appends a model
// statement to the container log; solving appends a solve directive and
// hands the generated source to a SolveRunner.
type Model struct {
	name      string
	cont      *Container
	problem   Problem
	sense     Sense
	equations []*Equation
	objective *Variable
	matches   map[*Equation]*Variable
}

// ModelOption configures a model declaration.
type ModelOption func(*Model)

// WithObjective sets the scalar objective variable. Required unless the
// sense is Feasibility.
func WithObjective(v *Variable) ModelOption {
	return func(m *Model) { m.objective = v }
}

// WithMatches declares complementarity pairs for MCP models.
func WithMatches(matches map[*Equation]*Variable) ModelOption {
	return func(m *Model) { m.matches = matches }
}

// NewModel validates and declares a model over the given equations.
func NewModel(c *Container, name string, problem Problem, sense Sense, equations []*Equation, opts ...ModelOption) (*Model, error) {
	if err := ident.Validate(name); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	if _, ok := problemNames[problem]; !ok {
		return nil, validationf("model %q: unknown problem type %d", name, int(problem))
	}
	if sense != Minimize && sense != Maximize && sense != Feasibility {
		return nil, validationf("model %q: unknown sense %d", name, int(sense))
	}

	m := &Model{
		name:      name,
		cont:      c,
		problem:   problem,
		sense:     sense,
		equations: equations,
	}
	for _, opt := range opts {
		opt(m)
	}

	if len(m.equations) == 0 && len(m.matches) == 0 {
		return nil, validationf("model %q requires at least one equation", name)
	}
	for _, eq := range m.equations {
		if eq == nil {
			return nil, typeErrorf("model %q: equation must not be nil", name)
		}
		if eq.Container() != c {
			return nil, validationf(
				"model %q: equation %q belongs to a different container", name, eq.Name())
		}
	}

	if len(m.matches) > 0 && problem != MCP {
		return nil, validationf("model %q: matches apply to MCP models only", name)
	}
	for eq, v := range m.matches {
		if eq == nil || v == nil {
			return nil, typeErrorf("model %q: match pairs must not be nil", name)
		}
		if eq.Container() != c || v.Container() != c {
			return nil, validationf("model %q: match pair crosses containers", name)
		}
		if eq.Dimension() != v.Dimension() {
			return nil, validationf(
				"model %q: match pair %q/%q disagrees on dimension (%d vs %d)",
				name, eq.Name(), v.Name(), eq.Dimension(), v.Dimension())
		}
	}

	if m.sense != Feasibility {
		if m.objective == nil {
			return nil, validationf("model %q: %s requires an objective variable", name, m.sense)
		}
		if m.objective.Dimension() != 0 {
			return nil, validationf("model %q: objective %q must be scalar", name, m.objective.Name())
		}
		if m.objective.Container() != c {
			return nil, validationf("model %q: objective belongs to a different container", name)
		}
	}

	c.addDirective(m.declaration())
	return m, nil
}

// Name returns the model name.
func (m *Model) Name() string { return m.name }

// Equations returns the model's equations.
func (m *Model) Equations() []*Equation { return m.equations }

func (m *Model) declaration() string {
	var parts []string
	for _, eq := range m.equations {
		parts = append(parts, eq.Name())
	}
	// map iteration order is not reproducible; generated source must be
	var pairs []string
	for eq, v := range m.matches {
		pairs = append(pairs, eq.Name()+"."+v.Name())
	}
	sort.Strings(pairs)
	parts = append(parts, pairs...)
	return "Model " + m.name + " / " + strings.Join(parts, ", ") + " /;"
}

// solveDirective renders the solve statement for the log.
func (m *Model) solveDirective() string {
	text := "solve " + m.name + " using " + m.problem.String()
	if m.sense != Feasibility {
		text += " " + m.sense.String() + " " + m.objective.Name()
	}
	return text + ";"
}
