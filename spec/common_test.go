// Copyright 2020, Square, Inc.

package spec

import (
	"testing"

	"github.com/go-test/deep"
)

var (
	netA  = "net-a"
	procA = "proc-a"
	value = "value"
)

func str(s string) *string { return &s }

func compareError(t *testing.T, err, expectedErr error, errMsg string) {
	t.Helper()
	if err == nil {
		t.Errorf(errMsg)
		return
	}
	switch expected := expectedErr.(type) {
	case InvalidValueError:
		compareInvalidValueError(t, err, expected)
	case MissingValueError:
		compareMissingValueError(t, err, expected)
	case DuplicateValueError:
		compareDuplicateValueError(t, err, expected)
	default:
		t.Errorf("expected error should be of type InvalidValueError, MissingValueError, or DuplicateValueError; got type %T: %s", expectedErr, expectedErr)
	}
}

func compareInvalidValueError(t *testing.T, err error, expectedErr InvalidValueError) {
	t.Helper()
	invalidValueErr, ok := err.(InvalidValueError)
	if !ok {
		t.Errorf("expected InvalidValueError, got %T: %s", err, err)
		return
	}
	invalidValueErr.Expected = ""
	if diff := deep.Equal(&invalidValueErr, &expectedErr); diff != nil {
		t.Error(diff)
	} else {
		t.Log(err.Error())
	}
}

func compareMissingValueError(t *testing.T, err error, expectedErr MissingValueError) {
	t.Helper()
	missingValueErr, ok := err.(MissingValueError)
	if !ok {
		t.Errorf("expected MissingValueError, got %T: %s", err, err)
		return
	}
	missingValueErr.Explanation = ""
	if diff := deep.Equal(&missingValueErr, &expectedErr); diff != nil {
		t.Error(diff)
	} else {
		t.Log(err.Error())
	}
}

func compareDuplicateValueError(t *testing.T, err error, expectedErr DuplicateValueError) {
	t.Helper()
	duplicateValueErr, ok := err.(DuplicateValueError)
	if !ok {
		t.Errorf("expected DuplicateValueError, got %T: %s", err, err)
		return
	}
	duplicateValueErr.Explanation = ""
	if diff := deep.Equal(&duplicateValueErr, &expectedErr); diff != nil {
		t.Error(diff)
	} else {
		t.Log(err.Error())
	}
}

// leaf returns a minimal valid comb process named procA.
func leaf() Process {
	return Process{
		Name:     procA,
		Path:     procA,
		Kind:     str("comb"),
		Function: "f",
		Cost:     1,
		In:       []*Port{{Name: str("in"), Type: str("int")}},
		Out:      []*Port{{Name: str("out"), Type: str("int")}},
	}
}
