// Copyright 2020, Square, Inc.

package spec

import (
	"sort"
)

// NetworkResult is what the checks found in one network.
type NetworkResult struct {
	Network  string
	Errors   []error
	Warnings []error
}

// Lines formats the errors and warnings for printing.
func (r *NetworkResult) Lines() (errs, warnings []string) {
	if r == nil {
		return nil, nil
	}
	for _, err := range r.Errors {
		errs = append(errs, err.Error())
	}
	for _, err := range r.Warnings {
		warnings = append(warnings, err.Error())
	}
	return errs, warnings
}

// CheckResults collects a NetworkResult for every network with at least one
// error or warning.
type CheckResults struct {
	networks map[string]*NetworkResult
	errors   int
	warnings int
}

func NewCheckResults() *CheckResults {
	return &CheckResults{
		networks: map[string]*NetworkResult{},
	}
}

func (c *CheckResults) network(name string) *NetworkResult {
	r, ok := c.networks[name]
	if !ok {
		r = &NetworkResult{Network: name}
		c.networks[name] = r
	}
	return r
}

func (c *CheckResults) AddError(network string, err error) {
	r := c.network(network)
	r.Errors = append(r.Errors, err)
	c.errors++
}

func (c *CheckResults) AddWarning(network string, err error) {
	r := c.network(network)
	r.Warnings = append(r.Warnings, err)
	c.warnings++
}

func (c *CheckResults) Get(network string) (*NetworkResult, bool) {
	r, ok := c.networks[network]
	return r, ok
}

// Failed returns true if network has at least one error.
func (c *CheckResults) Failed(network string) bool {
	r, ok := c.networks[network]
	return ok && len(r.Errors) > 0
}

// Lines is Get(network).Lines(); both are nil for a clean network.
func (c *CheckResults) Lines(network string) (errs, warnings []string) {
	return c.networks[network].Lines()
}

// Networks returns every result, sorted by network name.
func (c *CheckResults) Networks() []*NetworkResult {
	all := make([]*NetworkResult, 0, len(c.networks))
	for _, r := range c.networks {
		all = append(all, r)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Network < all[j].Network })
	return all
}

func (c *CheckResults) AnyError() bool   { return c.errors > 0 }
func (c *CheckResults) AnyWarning() bool { return c.warnings > 0 }
