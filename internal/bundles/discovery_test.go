package bundles

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeDirs(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.MkdirAll(filepath.Join(root, name), 0755))
	}
}

func baseNames(paths []string) []string {
	names := make([]string, 0, len(paths))
	for _, path := range paths {
		names = append(names, filepath.Base(path))
	}
	return names
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	makeDirs(t, root,
		"Test-Bundle_lacp_basic",
		"Test-Bundle_LLDP_check",
		"Test-Bundle_interface_state",
		"Helpers",
		"test-bundle_lowercase_prefix",
	)
	// A plain file matching the prefix must not be picked up.
	require.NoError(t, os.WriteFile(filepath.Join(root, "Test-Bundle_notes.txt"), []byte("x"), 0644))

	found := Find(root, "Test-Bundle_", "")
	assert.Equal(t, []string{
		"Test-Bundle_LLDP_check",
		"Test-Bundle_interface_state",
		"Test-Bundle_lacp_basic",
	}, baseNames(found))

	for _, path := range found {
		assert.Equal(t, root, filepath.Dir(path))
	}
}

func TestFindFilterIsCaseInsensitive(t *testing.T) {
	root := t.TempDir()
	makeDirs(t, root,
		"Test-Bundle_lacp_basic",
		"Test-Bundle_LLDP_check",
	)

	found := Find(root, "Test-Bundle_", "lldp")
	assert.Equal(t, []string{"Test-Bundle_LLDP_check"}, baseNames(found))

	found = Find(root, "Test-Bundle_", "LACP")
	assert.Equal(t, []string{"Test-Bundle_lacp_basic"}, baseNames(found))

	found = Find(root, "Test-Bundle_", "no-such-bundle")
	assert.Empty(t, found)
}

func TestFindMissingRoot(t *testing.T) {
	found := Find(filepath.Join(t.TempDir(), "does-not-exist"), "Test-Bundle_", "")
	assert.Empty(t, found)
}

func TestFindEmptyRoot(t *testing.T) {
	found := Find(t.TempDir(), "Test-Bundle_", "")
	assert.Empty(t, found)
}
