package sources

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
)

// Resolve expands the given glob patterns into a deduplicated, sorted list
// of report file paths. A pattern that matches nothing is logged as a
// warning and skipped; an empty result is valid (a build may legitimately
// produce no reports).
func Resolve(patterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	var paths []string

	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("sources: bad pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			slog.Warn("sources: pattern matched no files", "pattern", pattern)
			continue
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			paths = append(paths, m)
		}
	}

	sort.Strings(paths)
	return paths, nil
}
