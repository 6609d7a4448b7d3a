// Shared helpers for corkline CLI integration tests.
package integration

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	corklineBin string
	buildOnce   sync.Once
	buildErr    error
	buildTmpDir string
)

// ensureBinary builds the corkline binary once and returns the path to it.
func ensureBinary(t *testing.T) string {
	t.Helper()
	buildOnce.Do(func() {
		buildTmpDir, buildErr = os.MkdirTemp("", "corkline-cli-test-*")
		if buildErr != nil {
			return
		}
		binPath := filepath.Join(buildTmpDir, "corkline")
		cmd := exec.Command("go", "build", "-o", binPath, "./cmd/corkline")
		cmd.Dir = projectRoot()
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		buildErr = cmd.Run()
		if buildErr == nil {
			corklineBin = binPath
		}
	})
	require.NoError(t, buildErr, "build corkline binary")
	return corklineBin
}

// projectRoot returns the absolute path to the project root by walking up
// from the working directory until go.mod is found.
func projectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			panic("go.mod not found above working directory")
		}
		dir = parent
	}
}

// run executes the corkline binary against the given board and config
// directories and returns combined output. A nonzero exit fails the test
// unless wantErr is true.
func run(t *testing.T, boardDir, configDir string, wantErr bool, args ...string) string {
	t.Helper()
	bin := ensureBinary(t)
	full := append([]string{"--board-dir", boardDir, "--config-dir", configDir}, args...)
	cmd := exec.Command(bin, full...)
	out, err := cmd.CombinedOutput()
	if wantErr {
		require.Error(t, err, "expected failure, got: %s", out)
	} else {
		require.NoError(t, err, "corkline %s: %s", strings.Join(args, " "), out)
	}
	return string(out)
}
