package dataload

import (
	"context"
	"fmt"

	"github.com/vk/optmodel/algebra"
	"github.com/vk/optmodel/internal/ctxlog"
)

// Populate replays the model's declarations against the container in file
// order. Domain names resolve against symbols declared earlier in the same
// container, so a set must precede everything indexed over it.
func Populate(ctx context.Context, c *algebra.Container, m *Model) error {
	logger := ctxlog.FromContext(ctx)

	for _, d := range m.Sets {
		opts, err := declOptions(c, d.Domain, d.Description)
		if err != nil {
			return fmt.Errorf("set %q: %w", d.Name, err)
		}
		if d.Singleton {
			opts = append(opts, algebra.Singleton())
		}
		if d.Records != nil {
			opts = append(opts, algebra.Records(d.Records))
		}
		if _, err := algebra.NewSet(c, d.Name, opts...); err != nil {
			return fmt.Errorf("set %q: %w", d.Name, err)
		}
	}

	for _, d := range m.Aliases {
		with, err := resolveIndexSet(c, d.With)
		if err != nil {
			return fmt.Errorf("alias %q: %w", d.Name, err)
		}
		if _, err := algebra.NewAlias(c, d.Name, with); err != nil {
			return fmt.Errorf("alias %q: %w", d.Name, err)
		}
	}

	for _, d := range m.Parameters {
		opts, err := declOptions(c, d.Domain, d.Description)
		if err != nil {
			return fmt.Errorf("parameter %q: %w", d.Name, err)
		}
		if d.Records != nil {
			opts = append(opts, algebra.Records(d.Records))
		}
		if _, err := algebra.NewParameter(c, d.Name, opts...); err != nil {
			return fmt.Errorf("parameter %q: %w", d.Name, err)
		}
	}

	for _, d := range m.Scalars {
		opts := []algebra.Option{}
		if d.Description != "" {
			opts = append(opts, algebra.Description(d.Description))
		}
		if d.Value != nil {
			opts = append(opts, algebra.Records(*d.Value))
		}
		if _, err := algebra.NewParameter(c, d.Name, opts...); err != nil {
			return fmt.Errorf("scalar %q: %w", d.Name, err)
		}
	}

	for _, d := range m.Variables {
		kind, err := parseVarKind(d.Kind)
		if err != nil {
			return fmt.Errorf("variable %q: %w", d.Name, err)
		}
		opts, err := declOptions(c, d.Domain, d.Description)
		if err != nil {
			return fmt.Errorf("variable %q: %w", d.Name, err)
		}
		if _, err := algebra.NewVariable(c, d.Name, kind, opts...); err != nil {
			return fmt.Errorf("variable %q: %w", d.Name, err)
		}
	}

	logger.Debug("container populated", "symbols", len(c.Symbols()))
	return nil
}

// declOptions builds the shared declaration options for a domain plus
// description.
func declOptions(c *algebra.Container, domain []string, description string) ([]algebra.Option, error) {
	var opts []algebra.Option
	if len(domain) > 0 {
		sets := make([]algebra.IndexSet, len(domain))
		for i, name := range domain {
			s, err := resolveIndexSet(c, name)
			if err != nil {
				return nil, err
			}
			sets[i] = s
		}
		opts = append(opts, algebra.Domain(sets...))
	}
	if description != "" {
		opts = append(opts, algebra.Description(description))
	}
	return opts, nil
}

// resolveIndexSet looks a domain entry up by name. "*" is the universe.
func resolveIndexSet(c *algebra.Container, name string) (algebra.IndexSet, error) {
	if name == "*" || name == "" {
		return algebra.Universe, nil
	}
	sym, ok := c.Get(name)
	if !ok {
		return nil, fmt.Errorf("domain references undeclared symbol %q", name)
	}
	idx, ok := sym.(algebra.IndexSet)
	if !ok {
		return nil, fmt.Errorf("domain entry %q is a %s, not a set or alias", name, sym.Kind())
	}
	return idx, nil
}

// parseVarKind maps the file spelling of a variable kind onto the enum.
func parseVarKind(kind string) (algebra.VarKind, error) {
	switch kind {
	case "", "free":
		return algebra.VarFree, nil
	case "positive":
		return algebra.VarPositive, nil
	case "negative":
		return algebra.VarNegative, nil
	case "binary":
		return algebra.VarBinary, nil
	case "integer":
		return algebra.VarInteger, nil
	}
	return 0, fmt.Errorf("unknown variable kind %q", kind)
}
