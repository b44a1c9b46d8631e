// Copyright 2020, Square, Inc.

package builder

import (
	"sort"

	"github.com/square/pnsynth/spec"
)

func sortedNames(procs map[string]*spec.Process) []string {
	names := make([]string, 0, len(procs))
	for name := range procs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
