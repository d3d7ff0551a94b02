package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/xspecgo/internal/config"
	"github.com/specialistvlad/xspecgo/internal/ctxlog"
	"github.com/specialistvlad/xspecgo/internal/fsutil"
	"go.uber.org/multierr"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL run file loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file found under paths and merges them into one
// Run. Scalar settings may be defined in only one file; parameter blocks
// from all files are merged.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Run, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no .hcl files found in %v", config.ErrInvalidRun, paths)
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	run := &config.Run{}
	parser := hclparse.NewParser()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		if err := l.merge(ctx, run, &root, file); err != nil {
			return nil, err
		}
		run.Sources = append(run.Sources, file)
	}

	if err := run.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("HCL loading complete.", "model", run.Model, "mode", run.Mode, "parameter_blocks", len(run.Parameters))
	return run, nil
}

// merge folds one decoded file into run. Every conflicting definition in
// the file is reported.
func (l *Loader) merge(ctx context.Context, run *config.Run, root *fileRoot, file string) error {
	var err error
	conflict := func(name string) {
		err = multierr.Append(err, fmt.Errorf("%w: %s in %s is already defined in %v", config.ErrInvalidRun, name, file, run.Sources))
	}

	if root.Model != nil {
		if run.Model != "" {
			conflict("model")
		} else {
			run.Model = *root.Model
		}
	}
	if root.Mode != nil {
		if run.Mode != "" {
			conflict("mode")
		} else {
			run.Mode = *root.Mode
		}
	}
	if root.Edges != nil {
		if run.Edges != nil {
			conflict("edges")
		} else {
			run.Edges = root.Edges
		}
	}
	if root.Bins != nil {
		if run.Bins != nil {
			conflict("bins")
		} else {
			run.Bins = &config.Bins{
				Low:   root.Bins.Low,
				High:  root.Bins.High,
				Count: root.Bins.Count,
			}
			if root.Bins.Spacing != nil {
				run.Bins.Spacing = *root.Bins.Spacing
			}
		}
	}

	for _, block := range root.Parameters {
		err = multierr.Append(err, l.mergeParameters(ctx, run, block, file))
	}
	return err
}

func (l *Loader) mergeParameters(ctx context.Context, run *config.Run, block *parametersBlock, file string) error {
	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return fmt.Errorf("failed to decode parameters %q in %s: %w", block.Component, file, diags)
	}

	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		val, diags := attrs[name].Expr.Value(nil)
		if diags.HasErrors() {
			return fmt.Errorf("invalid value for %s.%s in %s: %w", block.Component, name, file, diags)
		}
		var v float64
		if err := decode(ctx, val, &v); err != nil {
			return fmt.Errorf("failed to decode %s.%s in %s: %w", block.Component, name, file, err)
		}
		if err := run.SetParameter(block.Component, name, v); err != nil {
			return err
		}
	}
	return nil
}

// findAllHCLFiles walks all given paths and returns a sorted, de-duplicated
// list of all .hcl files found.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, wasSeen := seen[p]; !wasSeen {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if info.IsDir() {
			found, err := fsutil.FindFilesByExtension(path, ".hcl")
			if err != nil {
				return nil, err
			}
			for _, p := range found {
				add(p)
			}
		} else if filepath.Ext(path) == ".hcl" {
			add(path)
		} else {
			return nil, fmt.Errorf("%s is not an .hcl file", path)
		}
	}
	return allFiles, nil
}
