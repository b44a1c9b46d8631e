// Copyright 2020, Square, Inc.

package spec

import (
	"fmt"
	"sort"
	"strings"
)

func stringSetToArray(set map[string]bool) []string {
	arr := []string{}
	for v := range set {
		arr = append(arr, v)
	}
	sort.Strings(arr)
	return arr
}

func location(network string, process *string) string {
	if process == nil {
		return fmt.Sprintf("network %s", network)
	}
	return fmt.Sprintf("network %s, process %s", network, *process)
}

/* =========================================================================== */

var _ error = InvalidValueError{}

type InvalidValueError struct {
	Network  string
	Process  *string // path below the network root, nil for the network itself
	Field    string
	Values   []string
	Expected string
}

func (e InvalidValueError) Error() string {
	values := fmt.Sprintf("\"%s\"", strings.Join(e.Values, "\", \""))
	return fmt.Sprintf("%s: invalid value(s) %s in field `%s`, expected %s",
		location(e.Network, e.Process), values, e.Field, e.Expected)
}

/* =========================================================================== */

var _ error = MissingValueError{}

type MissingValueError struct {
	Network     string
	Process     *string
	Field       string
	Explanation string
}

func (e MissingValueError) Error() string {
	var explanation string
	if e.Explanation != "" {
		explanation = fmt.Sprintf(": %s", e.Explanation)
	}
	return fmt.Sprintf("%s: field(s) `%s` missing%s", location(e.Network, e.Process), e.Field, explanation)
}

/* =========================================================================== */

var _ error = DuplicateValueError{}

type DuplicateValueError struct {
	Network     string
	Process     *string
	Field       string
	Values      []string
	Explanation string
}

func (e DuplicateValueError) Error() string {
	values := fmt.Sprintf("\"%s\"", strings.Join(e.Values, "\", \""))
	var explanation string
	if e.Explanation != "" {
		explanation = fmt.Sprintf(": %s", e.Explanation)
	}
	return fmt.Sprintf("%s: value(s) %s duplicated in field `%s`%s",
		location(e.Network, e.Process), values, e.Field, explanation)
}
