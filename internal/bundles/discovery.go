package bundles

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"lacpctl/pkg/logging"
)

const logSubsystem = "BundleDiscovery"

// Find enumerates the test bundle directories directly under rootDir whose
// name starts with prefix, sorted ascending so execution order is
// deterministic. A non-empty filter narrows the result to bundles whose
// name contains it, case-insensitively. A missing root or a root with no
// matching directories yields an empty slice, never an error; the caller
// decides how to surface the no-op.
func Find(rootDir, prefix, filter string) []string {
	entries, err := os.ReadDir(rootDir)
	if err != nil {
		if !os.IsNotExist(err) {
			logging.Warn(logSubsystem, "Cannot read tests root %s: %v", rootDir, err)
		}
		return nil
	}

	filterLower := strings.ToLower(filter)

	var paths []string
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		if filterLower != "" && !strings.Contains(strings.ToLower(entry.Name()), filterLower) {
			continue
		}
		paths = append(paths, filepath.Join(rootDir, entry.Name()))
	}
	sort.Strings(paths)
	return paths
}
