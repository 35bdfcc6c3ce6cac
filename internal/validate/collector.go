// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package validate

import (
	"errors"
	"fmt"
)

// ErrTooManyErrors aborts validation once the error budget is exhausted.
// The bound prevents runaway accumulation on a systematically broken
// document.
var ErrTooManyErrors = errors.New("maximum validation error count exceeded")

// defaultMaxErrors is the collector bound when none is configured.
const defaultMaxErrors = 100

// Collector accumulates validation findings. Errors are bounded; warnings
// are not.
type Collector struct {
	errors    []string
	warnings  []string
	maxErrors int
}

// NewCollector builds a collector. maxErrors <= 0 selects the default bound.
func NewCollector(maxErrors int) *Collector {
	if maxErrors <= 0 {
		maxErrors = defaultMaxErrors
	}
	return &Collector{maxErrors: maxErrors}
}

// Errorf records an error. It returns ErrTooManyErrors when the budget is
// exhausted; callers must stop validating.
func (c *Collector) Errorf(format string, args ...any) error {
	c.errors = append(c.errors, fmt.Sprintf(format, args...))
	if len(c.errors) >= c.maxErrors {
		return ErrTooManyErrors
	}
	return nil
}

// Warnf records a non-fatal finding.
func (c *Collector) Warnf(format string, args ...any) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, args...))
}

// Errors returns the recorded errors in order.
func (c *Collector) Errors() []string { return c.errors }

// Warnings returns the recorded warnings in order.
func (c *Collector) Warnings() []string { return c.warnings }

// HasErrors reports whether any error was recorded.
func (c *Collector) HasErrors() bool { return len(c.errors) > 0 }
