// Copyright 2020, Square, Inc.

// Package errors provides errors reported to API users. These are mapped to a
// proto.Error by the API. Messages are terse because they are reported in
// context, like "result abc123 not found" in response to a lookup of abc123.
package errors

import (
	"fmt"
)

var _ error = ResultNotFound{}

type ResultNotFound struct {
	ResultId string
}

func (e ResultNotFound) Error() string {
	return fmt.Sprintf("result %s not found", e.ResultId)
}

// --------------------------------------------------------------------------

var _ error = ErrInvalidScheduleRequest{}

// ErrInvalidScheduleRequest is returned for a request whose description
// cannot be parsed, checked, built or scheduled.
type ErrInvalidScheduleRequest struct {
	Message string
}

func (e ErrInvalidScheduleRequest) Error() string {
	return e.Message
}

// --------------------------------------------------------------------------

var _ error = ErrInvalidFilter{}

type ErrInvalidFilter struct {
	Param string
	Value string
}

func (e ErrInvalidFilter) Error() string {
	return fmt.Sprintf("invalid value %q for query parameter %s", e.Value, e.Param)
}
