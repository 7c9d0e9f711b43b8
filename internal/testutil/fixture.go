// Package testutil provides tree fixtures and golden-file helpers for tests.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"testing"
)

// FixtureContext holds information about a loaded tree fixture.
type FixtureContext struct {
	// Name is the fixture directory name (e.g., "mixed")
	Name string

	// Root is the absolute path to the fixture directory
	Root string

	// OriginalDir and DeployedDir are the two trees being compared
	OriginalDir string
	DeployedDir string

	// ExpectedDir is the path to the expected/ directory
	ExpectedDir string
}

// LoadFixture loads a tree fixture from testdata/trees, failing the test on error.
func LoadFixture(t *testing.T, name string) *FixtureContext {
	t.Helper()

	fixtureDir := filepath.Join(getFixturesRoot(t), name)
	if _, err := os.Stat(fixtureDir); os.IsNotExist(err) {
		t.Fatalf("Fixture directory not found: %s", fixtureDir)
	}

	fixture := &FixtureContext{
		Name:        name,
		Root:        fixtureDir,
		OriginalDir: filepath.Join(fixtureDir, "original"),
		DeployedDir: filepath.Join(fixtureDir, "deployed"),
		ExpectedDir: filepath.Join(fixtureDir, "expected"),
	}
	for _, dir := range []string{fixture.OriginalDir, fixture.DeployedDir} {
		if _, err := os.Stat(dir); err != nil {
			t.Fatalf("Fixture tree missing: %v", err)
		}
	}
	return fixture
}

// ExpectedPath returns the path to a golden file within the fixture.
func (f *FixtureContext) ExpectedPath(name string) string {
	return filepath.Join(f.ExpectedDir, name)
}

// getFixturesRoot returns the absolute path to testdata/trees/.
func getFixturesRoot(t *testing.T) string {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get caller information")
	}

	// Navigate from internal/testutil to project root
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(thisFile)))
	fixturesRoot := filepath.Join(projectRoot, "testdata", "trees")

	if _, err := os.Stat(fixturesRoot); os.IsNotExist(err) {
		t.Fatalf("Fixtures root not found: %s", fixturesRoot)
	}

	return fixturesRoot
}

// AvailableFixtures returns the names of all tree fixtures.
func AvailableFixtures(t *testing.T) []string {
	t.Helper()

	root := getFixturesRoot(t)
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("Failed to read fixtures directory: %v", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() && !isHiddenDir(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	return names
}

// ForEachFixture runs fn as a subtest for every tree fixture.
func ForEachFixture(t *testing.T, fn func(t *testing.T, fixture *FixtureContext)) {
	t.Helper()

	names := AvailableFixtures(t)
	if len(names) == 0 {
		t.Skip("No fixtures available")
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			fn(t, LoadFixture(t, name))
		})
	}
}

func isHiddenDir(name string) bool {
	return len(name) > 0 && name[0] == '.'
}

// WriteTree creates files under root. Keys are slash-separated relative
// paths; a key ending in "/" creates an empty directory and its value is
// ignored. Parent directories are created as needed.
func WriteTree(t *testing.T, root string, files map[string]string) {
	t.Helper()

	keys := make([]string, 0, len(files))
	for k := range files {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		path := filepath.Join(root, filepath.FromSlash(strings.TrimSuffix(k, "/")))
		if strings.HasSuffix(k, "/") {
			if err := os.MkdirAll(path, 0o755); err != nil {
				t.Fatalf("Failed to create directory %s: %v", path, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("Failed to create directory for %s: %v", path, err)
		}
		if err := os.WriteFile(path, []byte(files[k]), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", path, err)
		}
	}
}

// NewTreePair creates original/ and deployed/ under a fresh temp dir and
// returns their paths.
func NewTreePair(t *testing.T, original, deployed map[string]string) (string, string) {
	t.Helper()

	base := t.TempDir()
	originalDir := filepath.Join(base, "original")
	deployedDir := filepath.Join(base, "deployed")
	for _, dir := range []string{originalDir, deployedDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}
	WriteTree(t, originalDir, original)
	WriteTree(t, deployedDir, deployed)
	return originalDir, deployedDir
}
