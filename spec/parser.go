// Copyright 2020, Square, Inc.

package spec

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"
)

// ParseSpec reads a single description (YAML) file.
// `logFunc` is a Printf-like function used to log warning(s) should they occur.
// Errors are returned, not logged.
func ParseSpec(specFile string, logFunc func(string, ...interface{})) (Specs, error) {
	data, err := ioutil.ReadFile(specFile)
	if err != nil {
		return Specs{}, err
	}
	return ParseSpecBytes(data, logFunc)
}

// ParseSpecBytes is ParseSpec for a description already in memory.
func ParseSpecBytes(data []byte, logFunc func(string, ...interface{})) (Specs, error) {
	var specs Specs

	/* Emit warning if unexpected or duplicate fields are present. */
	/* Error if specs are incorrectly formatted or fields are of incorrect type. */
	err := yaml.UnmarshalStrict(data, &specs)
	if err != nil {
		logFunc("Warning: %s\n", err)
		specs = Specs{}
		err = yaml.Unmarshal(data, &specs)
		if err != nil {
			return specs, err
		}
	}

	for name, network := range specs.Networks {
		if network == nil {
			network = &Network{}
			specs.Networks[name] = network
		}
		network.Name = name
		nameProcesses("", network.Processes)
	}
	return specs, nil
}

// nameProcesses sets Name and Path on every process in procs and below.
func nameProcesses(prefix string, procs map[string]*Process) {
	for name, proc := range procs {
		if proc == nil {
			proc = &Process{}
			procs[name] = proc
		}
		proc.Name = name
		proc.Path = name
		if prefix != "" {
			proc.Path = prefix + "/" + name
		}
		nameProcesses(proc.Path, proc.Processes)
	}
}

// ParseSpecsDir reads all description files in specsDir and below.
// `logFunc` is a Printf-like function used to log warning(s) should they occur.
// Errors are returned, not logged.
func ParseSpecsDir(specsDir string, logFunc func(string, ...interface{})) (Specs, error) {
	specs := Specs{
		Networks: map[string]*Network{},
	}

	err := filepath.Walk(specsDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(info.Name(), ".yaml") {
			return nil
		}
		relPath, err := filepath.Rel(specsDir, path)
		if err != nil {
			logFunc("Warning: failed to get relative directory path for file %s: %s", path, err)
		}

		spec, err := ParseSpec(path, logFunc) // logs warnings but not errors
		if err != nil {
			return fmt.Errorf("error reading spec file %s: %s", relPath, err)
		}

		for name, network := range spec.Networks {
			if _, ok := specs.Networks[name]; ok {
				return DuplicateValueError{
					Network:     name,
					Field:       "networks",
					Values:      []string{name},
					Explanation: fmt.Sprintf("network defined again in %s", relPath),
				}
			}
			specs.Networks[name] = network
		}
		return nil
	})
	if err != nil {
		return specs, fmt.Errorf("error reading spec files: %s", err)
	}

	return specs, nil
}
