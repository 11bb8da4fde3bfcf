package energy

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig matches every configuration error raised while building
	// functions or registries. Test with errors.Is.
	ErrConfig = errors.New("configuration error")

	// ErrArity reports a positional argument list of the wrong length.
	ErrArity = errors.New("wrong number of arguments")

	// ErrUnknownTag reports a tag outside its family.
	ErrUnknownTag = errors.New("unknown function tag")

	// ErrNotImplemented reports a recognized tag that has no closed form.
	ErrNotImplemented = errors.New("not implemented")
)

// ConfigError describes a rejected configuration. Scope names what was being
// configured (a function tag, an item type field, ...).
type ConfigError struct {
	Scope  string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Scope != "" {
		msg += ": " + e.Scope
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause, if any.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is makes every ConfigError match ErrConfig.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// Configf builds a ConfigError with a formatted reason.
func Configf(scope string, format string, args ...any) *ConfigError {
	return &ConfigError{Scope: scope, Reason: fmt.Sprintf(format, args...)}
}

func arityError(scope string, want string, got int) *ConfigError {
	return &ConfigError{
		Scope:  scope,
		Reason: fmt.Sprintf("want %s, got %d", want, got),
		Err:    ErrArity,
	}
}
