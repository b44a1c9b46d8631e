// Copyright 2020, Square, Inc.

package spec

// CheckFactory generates static checks to be performed on network and
// process descriptions.
//
// Errors are mistakes in a description that keep a network from being built
// or scheduled. For example, a process of an unknown kind, or a connection to
// a port that does not exist.
// If any error occurs, the network is not built.
//
// Warnings identify probable mistakes. For example, a port that is not
// connected to anything. Warnings are reported but do not stop a build
// unless strict checking is configured.
type CheckFactory interface {
	MakeNetworkErrorChecks() ([]NetworkCheck, error)
	MakeNetworkWarningChecks() ([]NetworkCheck, error)
	MakeProcessErrorChecks() ([]ProcessCheck, error)
	MakeProcessWarningChecks() ([]ProcessCheck, error)
}

// The absolute minimum of checks for a description to be built.
type BaseCheckFactory struct{}

func (c BaseCheckFactory) MakeNetworkErrorChecks() ([]NetworkCheck, error) {
	return []NetworkCheck{
		HasProcessesNetworkCheck{},
		ValidInputsNetworkCheck{},
		ValidOutputsNetworkCheck{},
		ValidConnectionsNetworkCheck{},
	}, nil
}

func (c BaseCheckFactory) MakeNetworkWarningChecks() ([]NetworkCheck, error) {
	return []NetworkCheck{}, nil
}

func (c BaseCheckFactory) MakeProcessErrorChecks() ([]ProcessCheck, error) {
	return []ProcessCheck{
		HasKindProcessCheck{},
		ValidKindProcessCheck{},

		PortsNamedProcessCheck{},
		PortNamesUniqueProcessCheck{},

		CompositeHasProcessesProcessCheck{},
		LeafHasNoChildrenProcessCheck{},
		ValidConnectionsProcessCheck{},

		DelayHasInitialProcessCheck{},
		ValidCountProcessCheck{},
		HasFunctionProcessCheck{},
		NonNegativeCostProcessCheck{},
	}, nil
}

func (c BaseCheckFactory) MakeProcessWarningChecks() ([]ProcessCheck, error) {
	return []ProcessCheck{}, nil
}

// Some default checks. Not strictly necessary to build a network, but
// generally reasonable.
type DefaultCheckFactory struct{}

func (c DefaultCheckFactory) MakeNetworkErrorChecks() ([]NetworkCheck, error) {
	return []NetworkCheck{
		NoDuplicateIOsNetworkCheck{},
		PortsConnectedOnceNetworkCheck{},
		CompositePortsBothSidesNetworkCheck{},
	}, nil
}

func (c DefaultCheckFactory) MakeNetworkWarningChecks() ([]NetworkCheck, error) {
	return []NetworkCheck{
		AllPortsConnectedNetworkCheck{},
	}, nil
}

func (c DefaultCheckFactory) MakeProcessErrorChecks() ([]ProcessCheck, error) {
	return []ProcessCheck{
		CompositeHasPortsProcessCheck{},
	}, nil
}

func (c DefaultCheckFactory) MakeProcessWarningChecks() ([]ProcessCheck, error) {
	return []ProcessCheck{
		PortsTypedProcessCheck{},
		KnownTypeProcessCheck{},
		CostSetProcessCheck{},
	}, nil
}
