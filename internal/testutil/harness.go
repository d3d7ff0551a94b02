// Package testutil holds helpers shared by the application-level tests.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/xspecgo/internal/app"
	"github.com/specialistvlad/xspecgo/internal/hcl"
	"github.com/specialistvlad/xspecgo/internal/registry"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an application run.
type HarnessResult struct {
	Output    string
	LogOutput string
	Err       error
	App       *app.App
}

// WriteFiles creates files, keyed by relative path, in a fresh temporary
// directory and returns that directory.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return dir
}

// RunApp runs the application once with cfg. When files are given they are
// written to a temporary directory; a relative cfg.RunPath is resolved
// against it, and an empty one becomes the directory itself.
func RunApp(t *testing.T, cfg app.Config, files map[string]string, mods ...registry.Module) *HarnessResult {
	t.Helper()

	if len(files) > 0 {
		dir := WriteFiles(t, files)
		switch {
		case cfg.RunPath == "":
			cfg.RunPath = dir
		case !filepath.IsAbs(cfg.RunPath):
			cfg.RunPath = filepath.Join(dir, cfg.RunPath)
		}
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}

	out := &SafeBuffer{}
	logs := &SafeBuffer{}
	testApp, err := app.NewApp(out, logs, &cfg, hcl.NewLoader(), mods...)
	if err != nil {
		return &HarnessResult{Err: err}
	}
	err = testApp.Run(context.Background())

	if os.Getenv("XSPEC_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
	}

	return &HarnessResult{
		Output:    out.String(),
		LogOutput: logs.String(),
		Err:       err,
		App:       testApp,
	}
}
