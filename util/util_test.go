// Copyright 2020, Square, Inc.

package util

import (
	"testing"
)

func TestXIDUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := XID().String()
		if seen[id] {
			t.Fatalf("duplicate xid %s", id)
		}
		seen[id] = true
	}
}

func TestNewTLSConfigMissingFiles(t *testing.T) {
	if _, err := NewTLSConfig("", "/nonexistent/cert.pem", "/nonexistent/key.pem"); err == nil {
		t.Error("no error for missing cert files")
	}
}
