// Copyright 2020, Square, Inc.

package spec

// Runs checks on network and process descriptions.
type Checker struct {
	// Checks to run. ErrorChecks are fatal on failure. Warnings are not.
	networkErrorChecks   []NetworkCheck
	networkWarningChecks []NetworkCheck
	processErrorChecks   []ProcessCheck
	processWarningChecks []ProcessCheck
}

// Create a new Checker with the checks specified by check factories in list.
func NewChecker(checkFactories []CheckFactory) (*Checker, error) {
	checker := &Checker{
		networkErrorChecks:   []NetworkCheck{},
		networkWarningChecks: []NetworkCheck{},
		processErrorChecks:   []ProcessCheck{},
		processWarningChecks: []ProcessCheck{},
	}

	for _, factory := range checkFactories {
		nec, err := factory.MakeNetworkErrorChecks()
		if err != nil {
			return nil, err
		}
		checker.networkErrorChecks = append(checker.networkErrorChecks, nec...)

		nwc, err := factory.MakeNetworkWarningChecks()
		if err != nil {
			return nil, err
		}
		checker.networkWarningChecks = append(checker.networkWarningChecks, nwc...)

		pec, err := factory.MakeProcessErrorChecks()
		if err != nil {
			return nil, err
		}
		checker.processErrorChecks = append(checker.processErrorChecks, pec...)

		pwc, err := factory.MakeProcessWarningChecks()
		if err != nil {
			return nil, err
		}
		checker.processWarningChecks = append(checker.processWarningChecks, pwc...)
	}

	return checker, nil
}

// Runs checks on allSpecs. Results are keyed by network name.
func (checker *Checker) RunChecks(allSpecs Specs) *CheckResults {
	results := NewCheckResults()

	for name, network := range allSpecs.Networks {
		for _, networkCheck := range checker.networkErrorChecks {
			if err := networkCheck.CheckNetwork(*network); err != nil {
				results.AddError(name, err)
			}
		}
		for _, networkCheck := range checker.networkWarningChecks {
			if err := networkCheck.CheckNetwork(*network); err != nil {
				results.AddWarning(name, err)
			}
		}

		checker.checkProcesses(name, network.Processes, results)
	}

	return results
}

func (checker *Checker) checkProcesses(name string, procs map[string]*Process, results *CheckResults) {
	for _, procName := range sortedNames(procs) {
		proc := procs[procName]
		for _, processCheck := range checker.processErrorChecks {
			if err := processCheck.CheckProcess(name, *proc); err != nil {
				results.AddError(name, err)
			}
		}
		for _, processCheck := range checker.processWarningChecks {
			if err := processCheck.CheckProcess(name, *proc); err != nil {
				results.AddWarning(name, err)
			}
		}
		checker.checkProcesses(name, proc.Processes, results)
	}
}
