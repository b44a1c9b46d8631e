// Copyright 2020, Square, Inc.

package spec

import (
	"testing"
)

func TestFailHasKindProcessCheck(t *testing.T) {
	check := HasKindProcessCheck{}
	p := leaf()
	p.Kind = nil

	err := check.CheckProcess(netA, p)
	expectedErr := MissingValueError{
		Network: netA,
		Process: &procA,
		Field:   "kind",
	}
	compareError(t, err, expectedErr, "accepted process with no kind, expected error")
}

func TestValidKindProcessCheck(t *testing.T) {
	check := ValidKindProcessCheck{}
	for _, kind := range []string{"composite", "comb", "delay", "zipx", "unzipx", "fanout", "parallelmap", "zipwithn"} {
		p := leaf()
		p.Kind = str(kind)
		if err := check.CheckProcess(netA, p); err != nil {
			t.Errorf("kind %s: unexpected error: %s", kind, err)
		}
	}

	p := leaf()
	p.Kind = str(value)
	err := check.CheckProcess(netA, p)
	expectedErr := InvalidValueError{
		Network: netA,
		Process: &procA,
		Field:   "kind",
		Values:  []string{value},
	}
	compareError(t, err, expectedErr, "accepted kind of value, expected error")
}

func TestFailPortsNamedProcessCheck(t *testing.T) {
	check := PortsNamedProcessCheck{}
	p := leaf()
	p.Out = append(p.Out, &Port{Type: str("int")})

	err := check.CheckProcess(netA, p)
	expectedErr := MissingValueError{
		Network: netA,
		Process: &procA,
		Field:   "out -> name",
	}
	compareError(t, err, expectedErr, "accepted port without a name, expected error")
}

func TestFailPortNamesUniqueProcessCheck(t *testing.T) {
	check := PortNamesUniqueProcessCheck{}
	p := leaf()
	p.Out = []*Port{{Name: str("in")}}

	err := check.CheckProcess(netA, p)
	expectedErr := DuplicateValueError{
		Network: netA,
		Process: &procA,
		Field:   "in, out",
		Values:  []string{"in"},
	}
	compareError(t, err, expectedErr, "accepted in and out port of the same name, expected error")
}

func TestCompositeChecks(t *testing.T) {
	p := Process{Name: procA, Path: procA, Kind: str("composite")}

	err := CompositeHasProcessesProcessCheck{}.CheckProcess(netA, p)
	compareError(t, err, MissingValueError{Network: netA, Process: &procA, Field: "processes"},
		"accepted composite without processes, expected error")

	err = CompositeHasPortsProcessCheck{}.CheckProcess(netA, p)
	compareError(t, err, MissingValueError{Network: netA, Process: &procA, Field: "in"},
		"accepted composite without ports, expected error")

	l := leaf()
	p.Processes = map[string]*Process{procA: &l}
	p.In = []*Port{{Name: str("i")}}
	p.Out = []*Port{{Name: str("o")}}
	if err := (CompositeHasProcessesProcessCheck{}).CheckProcess(netA, p); err != nil {
		t.Errorf("unexpected error: %s", err)
	}
	if err := (CompositeHasPortsProcessCheck{}).CheckProcess(netA, p); err != nil {
		t.Errorf("unexpected error: %s", err)
	}
}

func TestFailLeafHasNoChildrenProcessCheck(t *testing.T) {
	p := leaf()
	child := leaf()
	p.Processes = map[string]*Process{"x": &child}

	err := LeafHasNoChildrenProcessCheck{}.CheckProcess(netA, p)
	expectedErr := InvalidValueError{
		Network: netA,
		Process: &procA,
		Field:   "kind",
		Values:  []string{"comb"},
	}
	compareError(t, err, expectedErr, "accepted leaf with nested processes, expected error")
}

func TestDelayHasInitialProcessCheck(t *testing.T) {
	p := leaf()
	p.Kind = str("delay")
	err := DelayHasInitialProcessCheck{}.CheckProcess(netA, p)
	compareError(t, err, MissingValueError{Network: netA, Process: &procA, Field: "initial"},
		"accepted delay without initial value, expected error")

	p.Initial = str("0")
	if err := (DelayHasInitialProcessCheck{}).CheckProcess(netA, p); err != nil {
		t.Errorf("unexpected error: %s", err)
	}
}

func TestValidCountProcessCheck(t *testing.T) {
	check := ValidCountProcessCheck{}
	p := leaf()
	p.Kind = str("parallelmap")

	err := check.CheckProcess(netA, p)
	compareError(t, err, MissingValueError{Network: netA, Process: &procA, Field: "count"},
		"accepted parallelmap without count, expected error")

	zero := 0
	p.Count = &zero
	err = check.CheckProcess(netA, p)
	compareError(t, err, InvalidValueError{Network: netA, Process: &procA, Field: "count", Values: []string{"0"}},
		"accepted count 0, expected error")

	four := 4
	p.Count = &four
	if err := check.CheckProcess(netA, p); err != nil {
		t.Errorf("unexpected error: %s", err)
	}
}

func TestFailHasFunctionProcessCheck(t *testing.T) {
	p := leaf()
	p.Function = ""
	err := HasFunctionProcessCheck{}.CheckProcess(netA, p)
	compareError(t, err, MissingValueError{Network: netA, Process: &procA, Field: "function"},
		"accepted comb without function, expected error")

	p.Kind = str("fanout")
	if err := (HasFunctionProcessCheck{}).CheckProcess(netA, p); err != nil {
		t.Errorf("fanout without function: unexpected error: %s", err)
	}
}

func TestFailNonNegativeCostProcessCheck(t *testing.T) {
	p := leaf()
	p.Cost = -3
	err := NonNegativeCostProcessCheck{}.CheckProcess(netA, p)
	compareError(t, err, InvalidValueError{Network: netA, Process: &procA, Field: "cost", Values: []string{"-3"}},
		"accepted negative cost, expected error")
}

func TestValidConnectionsProcessCheck(t *testing.T) {
	inner := leaf()
	inner.Name, inner.Path = "l", procA+"/l"
	p := Process{
		Name:      procA,
		Path:      procA,
		Kind:      str("composite"),
		In:        []*Port{{Name: str("i")}},
		Out:       []*Port{{Name: str("o")}},
		Processes: map[string]*Process{"l": &inner},
		Connections: []Connection{
			{From: "self.i", To: "l.in"},
			{From: "l.out", To: "self.o"},
		},
	}
	if err := (ValidConnectionsProcessCheck{}).CheckProcess(netA, p); err != nil {
		t.Errorf("unexpected error: %s", err)
	}

	p.Connections = append(p.Connections, Connection{From: "l.nope", To: "self.o"}, Connection{From: "l.in", To: "l.in"})
	err := ValidConnectionsProcessCheck{}.CheckProcess(netA, p)
	expectedErr := InvalidValueError{
		Network: netA,
		Process: &procA,
		Field:   "connections",
		Values:  []string{"l.nope -> self.o", "l.in -> l.in"},
	}
	compareError(t, err, expectedErr, "accepted bad connections, expected error")
}

func TestPortWarnings(t *testing.T) {
	p := leaf()
	p.In[0].Type = nil
	p.Out[0].Type = str("complex")
	p.Cost = 0

	err := PortsTypedProcessCheck{}.CheckProcess(netA, p)
	compareError(t, err, MissingValueError{Network: netA, Process: &procA, Field: "type"},
		"accepted untyped port, expected warning")

	err = KnownTypeProcessCheck{}.CheckProcess(netA, p)
	compareError(t, err, InvalidValueError{Network: netA, Process: &procA, Field: "type", Values: []string{"complex"}},
		"accepted unknown type, expected warning")

	err = CostSetProcessCheck{}.CheckProcess(netA, p)
	compareError(t, err, MissingValueError{Network: netA, Process: &procA, Field: "cost"},
		"accepted zero cost, expected warning")
}
