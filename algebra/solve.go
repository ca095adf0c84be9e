package algebra

import (
	"context"
	"fmt"
)

// ModelStatus is the closed enumeration of model statuses the external
// runtime reports. Codes outside the recognized set are fatal.
type ModelStatus int

const (
	StatusOptimalGlobal ModelStatus = iota + 1
	StatusOptimalLocal
	StatusUnbounded
	StatusInfeasibleGlobal
	StatusInfeasibleLocal
	StatusInfeasibleIntermed
	StatusFeasible
	StatusIntegerSolution
	StatusNonIntegerIntermed
	StatusIntegerInfeasible
	StatusLicenseError
	StatusErrorUnknown
	StatusErrorNoSolution
	StatusNoSolutionReturned
	StatusSolvedUnique
	StatusSolved
	StatusSolvedSingular
	StatusUnboundedNoSolution
	StatusInfeasibleNoSolution
)

var modelStatusNames = map[ModelStatus]string{
	StatusOptimalGlobal:        "OptimalGlobal",
	StatusOptimalLocal:         "OptimalLocal",
	StatusUnbounded:            "Unbounded",
	StatusInfeasibleGlobal:     "InfeasibleGlobal",
	StatusInfeasibleLocal:      "InfeasibleLocal",
	StatusInfeasibleIntermed:   "InfeasibleIntermed",
	StatusFeasible:             "Feasible",
	StatusIntegerSolution:      "IntegerSolution",
	StatusNonIntegerIntermed:   "NonIntegerIntermed",
	StatusIntegerInfeasible:    "IntegerInfeasible",
	StatusLicenseError:         "LicenseError",
	StatusErrorUnknown:         "ErrorUnknown",
	StatusErrorNoSolution:      "ErrorNoSolution",
	StatusNoSolutionReturned:   "NoSolutionReturned",
	StatusSolvedUnique:         "SolvedUnique",
	StatusSolved:               "Solved",
	StatusSolvedSingular:       "SolvedSingular",
	StatusUnboundedNoSolution:  "UnboundedNoSolution",
	StatusInfeasibleNoSolution: "InfeasibleNoSolution",
}

func (s ModelStatus) String() string {
	if name, ok := modelStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("ModelStatus(%d)", int(s))
}

// ModelStatusFromCode maps a runtime status code onto the enumeration.
func ModelStatusFromCode(code int) (ModelStatus, error) {
	s := ModelStatus(code)
	if _, ok := modelStatusNames[s]; !ok {
		return 0, validationf("unrecognized model status code %d", code)
	}
	return s, nil
}

// SolveStatus is the closed enumeration of solver termination statuses.
type SolveStatus int

const (
	SolveNormal SolveStatus = iota + 1
	SolveIterationLimit
	SolveTimeLimit
	SolveSolverInterrupt
	SolveEvalErrorLimit
	SolveCapabilityError
	SolveLicenseError
	SolveUserInterrupt
	SolveSetupError
	SolveSolverError
	SolveInternalError
	SolveSkipped
	SolveSystemError
)

var solveStatusNames = map[SolveStatus]string{
	SolveNormal:          "NormalCompletion",
	SolveIterationLimit:  "IterationLimit",
	SolveTimeLimit:       "TimeLimit",
	SolveSolverInterrupt: "SolverInterrupt",
	SolveEvalErrorLimit:  "EvalErrorLimit",
	SolveCapabilityError: "CapabilityError",
	SolveLicenseError:    "LicenseError",
	SolveUserInterrupt:   "UserInterrupt",
	SolveSetupError:      "SetupError",
	SolveSolverError:     "SolverError",
	SolveInternalError:   "InternalError",
	SolveSkipped:         "Skipped",
	SolveSystemError:     "SystemError",
}

func (s SolveStatus) String() string {
	if name, ok := solveStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SolveStatus(%d)", int(s))
}

// SolveStatusFromCode maps a runtime status code onto the enumeration.
func SolveStatusFromCode(code int) (SolveStatus, error) {
	s := SolveStatus(code)
	if _, ok := solveStatusNames[s]; !ok {
		return 0, validationf("unrecognized solve status code %d", code)
	}
	return s, nil
}

// SolveJob is what the external runtime receives: the generated source text
// plus the names of the symbols whose records it must send back. Only
// symbols whose host-side records are stale are requested, so a round trip
// re-fetches incrementally instead of re-reading everything.
type SolveJob struct {
	Source      string
	WantSymbols []string
}

// SolveResult carries the runtime's answer: two raw status codes and the
// updated records per symbol name.
type SolveResult struct {
	ModelStatusCode int
	SolveStatusCode int
	Sets            map[string][][]string
	Parameters      map[string][]ParameterRecord
	Variables       map[string][]VariableRecord
	Equations       map[string][]EquationRecord
}

// SolveRunner executes generated source against the external runtime. The
// core performs no retries; retry and backoff policy belongs entirely to
// implementations.
type SolveRunner interface {
	Solve(ctx context.Context, job SolveJob) (*SolveResult, error)
}

// SolveSummary is the mapped outcome of one solve.
type SolveSummary struct {
	ModelStatus ModelStatus
	SolveStatus SolveStatus
}

// Solve appends the solve directive, hands the full generated source to the
// runner and synchronizes the returned records back into the container.
func (m *Model) Solve(ctx context.Context, runner SolveRunner) (*SolveSummary, error) {
	if runner == nil {
		return nil, typeErrorf("model %q: solve runner must not be nil", m.name)
	}
	m.cont.addDirective(m.solveDirective())

	job := SolveJob{Source: m.cont.GenerateSource()}
	for _, sym := range m.cont.ModifiedSymbols() {
		job.WantSymbols = append(job.WantSymbols, sym.Name())
	}
	for _, eq := range m.equations {
		job.WantSymbols = append(job.WantSymbols, eq.Name())
	}

	result, err := runner.Solve(ctx, job)
	if err != nil {
		return nil, fmt.Errorf("model %q: solve failed: %w", m.name, err)
	}

	modelStatus, err := ModelStatusFromCode(result.ModelStatusCode)
	if err != nil {
		return nil, err
	}
	solveStatus, err := SolveStatusFromCode(result.SolveStatusCode)
	if err != nil {
		return nil, err
	}

	if err := m.cont.Synchronize(result); err != nil {
		return nil, err
	}
	return &SolveSummary{ModelStatus: modelStatus, SolveStatus: solveStatus}, nil
}

// Synchronize applies a runtime result to the registered symbols and clears
// their modified flags. Symbols absent from the result keep their records
// and their dirty state.
func (c *Container) Synchronize(result *SolveResult) error {
	for name, labels := range result.Sets {
		sym, ok := c.Get(name)
		if !ok {
			return validationf("runtime returned records for unknown symbol %q", name)
		}
		set, isSet := sym.(*Set)
		if !isSet {
			return validationf("runtime returned set records for %s %q", sym.Kind(), name)
		}
		if err := set.SetRecords(labels); err != nil {
			return err
		}
		set.setModified(false)
	}
	for name, records := range result.Parameters {
		sym, ok := c.Get(name)
		if !ok {
			return validationf("runtime returned records for unknown symbol %q", name)
		}
		param, isParam := sym.(*Parameter)
		if !isParam {
			return validationf("runtime returned parameter records for %s %q", sym.Kind(), name)
		}
		param.records = records
		param.setModified(false)
	}
	for name, records := range result.Variables {
		sym, ok := c.Get(name)
		if !ok {
			return validationf("runtime returned records for unknown symbol %q", name)
		}
		v, isVar := sym.(*Variable)
		if !isVar {
			return validationf("runtime returned variable records for %s %q", sym.Kind(), name)
		}
		v.records = records
		v.setModified(false)
	}
	for name, records := range result.Equations {
		sym, ok := c.Get(name)
		if !ok {
			return validationf("runtime returned records for unknown symbol %q", name)
		}
		eq, isEq := sym.(*Equation)
		if !isEq {
			return validationf("runtime returned equation records for %s %q", sym.Kind(), name)
		}
		eq.records = records
		eq.setModified(false)
	}
	c.logger.Debug("records synchronized",
		"sets", len(result.Sets), "parameters", len(result.Parameters),
		"variables", len(result.Variables), "equations", len(result.Equations))
	return nil
}
