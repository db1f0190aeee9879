// Package zderr defines the typed error taxonomy used across the solver:
// ConfigError, IntegrationError, PostprocessError and IOError. Each wraps
// an underlying cause produced with gosl/chk, matching the wrapping idiom
// gofem uses throughout its fem package (chk.Err("...: %v", err)).
package zderr

import (
	"fmt"

	"github.com/cpmech/gosl/chk"
)

// ConfigError reports a problem found while loading or validating the JSON
// simulation input (block graph shape, unknown block kind, UseSteadyIC
// combined with an unsupported block, malformed BC function data, ...).
type ConfigError struct {
	Field string
	Cause error
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config: %s: %v", e.Field, e.Cause)
	}
	return fmt.Sprintf("config: %v", e.Cause)
}

func (e *ConfigError) Unwrap() error { return e.Cause }

// NewConfigError builds a ConfigError whose cause is a gosl/chk error.
func NewConfigError(field, format string, args ...interface{}) *ConfigError {
	return &ConfigError{Field: field, Cause: chk.Err(format, args...)}
}

// IntegrationError reports Newton divergence or a non-finite iterate during
// time integration. It names the step, the simulation time, and the worst
// offending degree of freedom so a caller can locate the failure without
// re-running with tracing enabled.
type IntegrationError struct {
	Step    int
	Time    float64
	WorstDOF int
	Cause   error
}

func (e *IntegrationError) Error() string {
	return fmt.Sprintf("integration: step %d (t=%g), worst dof %d: %v",
		e.Step, e.Time, e.WorstDOF, e.Cause)
}

func (e *IntegrationError) Unwrap() error { return e.Cause }

// NewIntegrationError builds an IntegrationError wrapping a gosl/chk error.
func NewIntegrationError(step int, t float64, worstDOF int, format string, args ...interface{}) *IntegrationError {
	return &IntegrationError{Step: step, Time: t, WorstDOF: worstDOF, Cause: chk.Err(format, args...)}
}

// PostprocessError reports a failure while reshaping raw solver output into
// the All or Branch result layouts (unparsable wire name, missing branch
// segment, empty cardiac cycle, ...).
type PostprocessError struct {
	Stage string
	Cause error
}

func (e *PostprocessError) Error() string {
	return fmt.Sprintf("postprocess: %s: %v", e.Stage, e.Cause)
}

func (e *PostprocessError) Unwrap() error { return e.Cause }

// NewPostprocessError builds a PostprocessError wrapping a gosl/chk error.
func NewPostprocessError(stage, format string, args ...interface{}) *PostprocessError {
	return &PostprocessError{Stage: stage, Cause: chk.Err(format, args...)}
}

// IOError reports a failure reading or writing a config, IC, or result file.
type IOError struct {
	Path  string
	Cause error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("io: %s: %v", e.Path, e.Cause)
}

func (e *IOError) Unwrap() error { return e.Cause }

// NewIOError builds an IOError wrapping a gosl/chk error.
func NewIOError(path, format string, args ...interface{}) *IOError {
	return &IOError{Path: path, Cause: chk.Err(format, args...)}
}
