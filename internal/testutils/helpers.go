package testutils

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/stretchr/testify/require"
)

// SetupPageRepo creates a Loam repository in a temporary directory and writes docs as raw files.
// It returns the absolute directory and the repository, failing the test on error.
func SetupPageRepo(t *testing.T, docs ...core.Document) (string, core.Repository) {
	t.Helper()

	dir, err := filepath.Abs(t.TempDir())
	require.NoError(t, err)

	repo, err := loam.Init(dir, loam.WithVersioning(false))
	require.NoError(t, err, "init page repository")

	for _, doc := range docs {
		path := filepath.Join(dir, filepath.FromSlash(doc.ID))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(doc.Content), 0o644), "write %s", doc.ID)
	}
	return dir, repo
}

// StepDoc builds a page document tagged for step index with the given rect and description.
func StepDoc(name string, index int, rect, description string) core.Document {
	return core.Document{
		ID:      name + ".md",
		Content: "---\nstep: " + strconv.Itoa(index) + "\norder: " + strconv.Itoa(index) + "\nrect: \"" + rect + "\"\n---\n" + description,
	}
}
