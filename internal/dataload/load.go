package dataload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/optmodel/internal/ctxlog"
)

// Load reads a model-data file and decodes it into the agnostic model. The
// format is chosen by extension: .hcl, or .yaml/.yml.
func Load(ctx context.Context, path string) (*Model, error) {
	logger := ctxlog.FromContext(ctx)

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model data: %w", err)
	}

	var m *Model
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".hcl":
		m, err = loadHCL(path, src)
	case ".yaml", ".yml":
		m, err = loadYAML(path, src)
	default:
		return nil, fmt.Errorf("unsupported model data format %q (want .hcl, .yaml or .yml)", ext)
	}
	if err != nil {
		return nil, err
	}

	logger.Debug("model data loaded",
		"path", path, "sets", len(m.Sets), "aliases", len(m.Aliases),
		"parameters", len(m.Parameters), "scalars", len(m.Scalars),
		"variables", len(m.Variables))
	return m, nil
}
