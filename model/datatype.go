// Copyright 2020, Square, Inc.

package model

import (
	"fmt"
)

// Base types a leaf port can carry. They are recorded for the code
// generator; nothing here checks that connected ports agree.
var BaseTypes = map[string]bool{
	"char":           true,
	"unsigned char":  true,
	"short":          true,
	"unsigned short": true,
	"int":            true,
	"unsigned int":   true,
	"long":           true,
	"unsigned long":  true,
	"float":          true,
	"double":         true,
	"void":           true,
}

// DataType describes the values flowing through a leaf port.
type DataType struct {
	Type      string // one of BaseTypes, "" if unknown
	ArraySize int    // 0 for a scalar
	Pointer   bool
}

func (d DataType) IsArray() bool {
	return d.ArraySize > 0
}

func (d DataType) String() string {
	if d.Type == "" {
		return "?"
	}
	s := d.Type
	if d.Pointer {
		s += "*"
	}
	if d.IsArray() {
		s += fmt.Sprintf("[%d]", d.ArraySize)
	}
	return s
}
