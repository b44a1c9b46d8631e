// Copyright 2020, Square, Inc.

package proto_test

import (
	"testing"

	"github.com/square/pnsynth/proto"
)

func TestResultFilterString(t *testing.T) {
	f := proto.ResultFilter{}
	expect := ""
	got := f.String()
	if got != expect {
		t.Errorf("got '%s', expected '%s'", got, expect)
	}

	f = proto.ResultFilter{Network: "chain"}
	expect = "?network=chain"
	got = f.String()
	if got != expect {
		t.Errorf("got '%s', expected '%s'", got, expect)
	}

	f = proto.ResultFilter{Network: "chain", Limit: 5}
	expect = "?limit=5&network=chain"
	got = f.String()
	if got != expect {
		t.Errorf("got '%s', expected '%s'", got, expect)
	}
}

func TestNewError(t *testing.T) {
	e := proto.NewError("network %s not found", "x")
	e.HTTPStatus = 404
	expect := "API error: network x not found (HTTP status 404)"
	if e.Error() != expect {
		t.Errorf("got '%s', expected '%s'", e.Error(), expect)
	}
}
