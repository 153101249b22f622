package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrMemberResolution is returned when a member name does not resolve to
	// an exported field of the declared type
	ErrMemberResolution = errors.New("member cannot be resolved")

	// ErrInvalidMember is returned when a member resolves but its type does not
	// suit the requested mapping (e.g. HasMany on a string)
	ErrInvalidMember = errors.New("member kind not supported")

	// ErrConfigurationIncomplete is returned when an association lacks
	// mandatory companion configuration
	ErrConfigurationIncomplete = errors.New("configuration incomplete")

	// ErrAmbiguousMergeTarget is returned when more than one external component
	// is registered for the same type
	ErrAmbiguousMergeTarget = errors.New("ambiguous merge target")

	// ErrDuplicateMember is returned when two mappings claim the same member name
	ErrDuplicateMember = errors.New("duplicate member mapping")

	// ErrRecursiveComponent is returned when a component contains itself
	// through external component references
	ErrRecursiveComponent = errors.New("recursive component")

	// ErrDuplicateMapping is returned when a type is registered twice
	ErrDuplicateMapping = errors.New("type already mapped")
)

// MappingError scopes a sentinel error to a mapped type and, optionally, one of its members.
type MappingError struct {
	Type   string // mapped type, e.g. "fluentmap/store.Order"
	Member string // member path within Type, empty for type-level errors
	Detail string
	Err    error
}

func (e *MappingError) Error() string {
	scope := e.Type
	if e.Member != "" {
		scope += "." + e.Member
	}

	if e.Detail != "" {
		return fmt.Sprintf("%s: %s: %v", scope, e.Detail, e.Err)
	}

	return fmt.Sprintf("%s: %v", scope, e.Err)
}

func (e *MappingError) Unwrap() error {
	return e.Err
}

// Helper functions for creating errors

// New creates a MappingError; detail is formatted with args when any are given.
func New(err error, typ, member, detail string, args ...any) *MappingError {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}

	return &MappingError{Type: typ, Member: member, Detail: detail, Err: err}
}

// NewMemberResolutionError creates an error for a member that cannot be resolved.
func NewMemberResolutionError(typ, member, reason string) *MappingError {
	return New(ErrMemberResolution, typ, member, reason)
}

// NewInvalidMemberError creates an error for a member whose kind does not suit the mapping.
func NewInvalidMemberError(typ, member, reason string) *MappingError {
	return New(ErrInvalidMember, typ, member, reason)
}

// NewConfigurationIncompleteError creates an error for missing mandatory configuration.
func NewConfigurationIncompleteError(typ, member, missing string) *MappingError {
	return New(ErrConfigurationIncomplete, typ, member, "missing %s", missing)
}

// IsMemberResolution checks if an error is a member resolution error
func IsMemberResolution(err error) bool {
	return errors.Is(err, ErrMemberResolution)
}

// IsInvalidMember checks if an error is an invalid member error
func IsInvalidMember(err error) bool {
	return errors.Is(err, ErrInvalidMember)
}

// IsConfigurationIncomplete checks if an error is a configuration incomplete error
func IsConfigurationIncomplete(err error) bool {
	return errors.Is(err, ErrConfigurationIncomplete)
}

// IsAmbiguousMergeTarget checks if an error is an ambiguous merge target error
func IsAmbiguousMergeTarget(err error) bool {
	return errors.Is(err, ErrAmbiguousMergeTarget)
}

// IsDuplicateMember checks if an error is a duplicate member error
func IsDuplicateMember(err error) bool {
	return errors.Is(err, ErrDuplicateMember)
}

// IsRecursiveComponent checks if an error is a recursive component error
func IsRecursiveComponent(err error) bool {
	return errors.Is(err, ErrRecursiveComponent)
}

// IsDuplicateMapping checks if an error is a duplicate mapping error
func IsDuplicateMapping(err error) bool {
	return errors.Is(err, ErrDuplicateMapping)
}

// ForType returns the MappingErrors in err (which may be joined) scoped to typ.
func ForType(err error, typ string) []*MappingError {
	var out []*MappingError

	walk(err, func(me *MappingError) {
		if me.Type == typ {
			out = append(out, me)
		}
	})

	return out
}

// walk visits every MappingError reachable through Unwrap() error and Unwrap() []error.
func walk(err error, fn func(*MappingError)) {
	if err == nil {
		return
	}

	if me, ok := err.(*MappingError); ok {
		fn(me)

		return
	}

	switch u := err.(type) {
	case interface{ Unwrap() []error }:
		for _, e := range u.Unwrap() {
			walk(e, fn)
		}
	case interface{ Unwrap() error }:
		walk(u.Unwrap(), fn)
	}
}
