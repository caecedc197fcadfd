package sim

import "fmt"

// ConfigErrorKind classifies configuration validation failures.
type ConfigErrorKind int

// The kinds of configuration errors.
const (
	ConfigErrOutOfRange ConfigErrorKind = iota
	ConfigErrInvalidOrdering
	ConfigErrEmptySet
)

func (k ConfigErrorKind) String() string {
	switch k {
	case ConfigErrOutOfRange:
		return "OutOfRange"
	case ConfigErrInvalidOrdering:
		return "InvalidOrdering"
	case ConfigErrEmptySet:
		return "EmptySet"
	default:
		return "Unknown"
	}
}

// A ConfigError reports an invalid configuration. It is raised during
// validation, before any simulation step executes.
type ConfigError struct {
	Kind   ConfigErrorKind
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error (%s) on %s: %s",
		e.Kind, e.Field, e.Reason)
}

// EngineErrorKind classifies run-contract violations.
type EngineErrorKind int

// The kinds of engine errors.
const (
	EngineErrNotConfigured EngineErrorKind = iota
	EngineErrAlreadyRun
)

func (k EngineErrorKind) String() string {
	switch k {
	case EngineErrNotConfigured:
		return "NotConfigured"
	case EngineErrAlreadyRun:
		return "AlreadyRun"
	default:
		return "Unknown"
	}
}

// An EngineError reports a violation of the run contract, such as running an
// engine that was never constructed from a validated configuration, or
// running the same engine twice.
type EngineError struct {
	Kind EngineErrorKind
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("engine error: %s", e.Kind)
}
