// Copyright 2020, Square, Inc.

package version

import (
	"testing"
)

func TestVersion(t *testing.T) {
	defer func() { BUILD = "" }()
	if got := Version(); got != VERSION {
		t.Errorf("got %s, expected %s", got, VERSION)
	}
	BUILD = "sq1"
	if got := Version(); got != VERSION+"+sq1" {
		t.Errorf("got %s, expected %s+sq1", got, VERSION)
	}
}
