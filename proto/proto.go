// Copyright 2020, Square, Inc.

// Package proto provides API message structures.
package proto

import (
	"fmt"
	"net/url"
	"time"
)

// ScheduleRequest is the body of POST /api/v1/schedules. Spec is a YAML
// description with one or more networks; Network picks one when there are
// several. If Stage is set, only that stage is scheduled.
type ScheduleRequest struct {
	Spec    string `json:"spec"`
	Network string `json:"network,omitempty"`
	Stage   *Stage `json:"stage,omitempty"`
}

// Stage is a region of one hierarchy level. Outputs are port refs from the
// network root ("stage/core/fir.out"), Inputs are "process.port" refs on the
// level of the outputs.
type Stage struct {
	Outputs []string `json:"outputs"`
	Inputs  []string `json:"inputs,omitempty"`
}

// ScheduleResult is a computed schedule. Schedule lists process paths in
// execution order.
type ScheduleResult struct {
	Id        string    `json:"id"`
	Network   string    `json:"network"`
	Stage     *Stage    `json:"stage,omitempty"`
	Schedule  []string  `json:"schedule"`
	Warnings  []string  `json:"warnings,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ResultFilter selects stored results for GET /api/v1/schedules.
type ResultFilter struct {
	Network string
	Limit   uint
}

// String returns the filter as a URL query string, or "" if no field is set.
func (f ResultFilter) String() string {
	v := url.Values{}
	if f.Network != "" {
		v.Set("network", f.Network)
	}
	if f.Limit != 0 {
		v.Set("limit", fmt.Sprint(f.Limit))
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// Error is the response for every handled API error. Descriptions that fail
// to parse, check, build or schedule are HTTP 400. Unknown result ids are
// HTTP 404.
type Error struct {
	Message    string `json:"message"`            // human-readable and loggable error message
	ResultId   string `json:"resultId,omitempty"` // entity ID that caused error, if any
	HTTPStatus int    `json:"httpStatus"`
}

func NewError(msgFmt string, msgArgs ...interface{}) Error {
	e := Error{}
	if msgFmt != "" {
		e.Message = fmt.Sprintf(msgFmt, msgArgs...)
	}
	return e
}

func (e Error) String() string {
	return fmt.Sprintf("API error: %s (HTTP status %d)", e.Message, e.HTTPStatus)
}

func (e Error) Error() string {
	return e.String()
}
