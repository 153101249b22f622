package diagnostic

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/untillpro/goutils/logger"

	"fluentmap/errors"
	"fluentmap/internal/common"
)

// Diagnostics holds the errors and warnings collected while compiling mappings.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a stable identifier for this kind of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Class is the mapped type this relates to (if any).
	Class string
	// Member is the member within Class this relates to (if any).
	Member string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
	// Err is the underlying error of an error diagnostic.
	Err error
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// Diagnostic codes.
const (
	CodeMemberResolution        = "member-resolution"
	CodeInvalidMember           = "invalid-member"
	CodeConfigurationIncomplete = "configuration-incomplete"
	CodeAmbiguousMergeTarget    = "ambiguous-merge-target"
	CodeDuplicateMember         = "duplicate-member"
	CodeRecursiveComponent      = "recursive-component"
	CodeDuplicateMapping        = "duplicate-mapping"
	CodeMissingId               = "missing-id"
	CodeSkippedMember           = "skipped-member"
	CodeUnusedOverride          = "unused-override"
	CodeUnusedComponent         = "unused-component"
	CodeInternal                = "internal"
)

var codes = []struct {
	sentinel error
	code     string
}{
	{errors.ErrMemberResolution, CodeMemberResolution},
	{errors.ErrInvalidMember, CodeInvalidMember},
	{errors.ErrConfigurationIncomplete, CodeConfigurationIncomplete},
	{errors.ErrAmbiguousMergeTarget, CodeAmbiguousMergeTarget},
	{errors.ErrDuplicateMember, CodeDuplicateMember},
	{errors.ErrRecursiveComponent, CodeRecursiveComponent},
	{errors.ErrDuplicateMapping, CodeDuplicateMapping},
}

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// CodeOf returns the diagnostic code matching the sentinel wrapped by err.
func CodeOf(err error) string {
	for _, c := range codes {
		if stderrors.Is(err, c.sentinel) {
			return c.code
		}
	}

	return CodeInternal
}

// AddError records err. Joined errors are recorded one by one. Class and
// member are taken from a *errors.MappingError when err is one; otherwise
// class applies.
func (d *Diagnostics) AddError(class string, err error) {
	if err == nil {
		return
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			d.AddError(class, e)
		}

		return
	}

	diag := Diagnostic{
		Severity: DiagnosticError,
		Code:     CodeOf(err),
		Message:  err.Error(),
		Class:    class,
		Err:      err,
	}

	var me *errors.MappingError
	if stderrors.As(err, &me) {
		diag.Class = me.Type
		diag.Member = me.Member
		diag.Message = me.Err.Error()

		if me.Detail != "" {
			diag.Message = me.Detail + ": " + diag.Message
		}
	}

	d.Errors = append(d.Errors, diag)
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, class, member string, suggestions ...string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity:    DiagnosticWarning,
		Code:        code,
		Message:     message,
		Class:       class,
		Member:      member,
		Suggestions: suggestions,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, class, member string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: DiagnosticInfo,
		Code:     code,
		Message:  message,
		Class:    class,
		Member:   member,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Error joins the underlying errors of all error diagnostics, or returns nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	errs := make([]error, 0, len(d.Errors))
	for _, e := range d.Errors {
		errs = append(errs, e.Err)
	}

	return stderrors.Join(errs...)
}

// ForClass returns the diagnostics that relate to class.
func (d *Diagnostics) ForClass(class string) Diagnostics {
	var out Diagnostics

	pick := func(in []Diagnostic) []Diagnostic {
		var res []Diagnostic

		for _, diag := range in {
			if diag.Class == class {
				res = append(res, diag)
			}
		}

		return res
	}

	out.Errors = pick(d.Errors)
	out.Warnings = pick(d.Warnings)
	out.Infos = pick(d.Infos)

	return out
}

// Log writes every diagnostic through the logger at its severity.
func (d *Diagnostics) Log() {
	for _, e := range d.Errors {
		logger.Error(e.String())
	}

	for _, w := range d.Warnings {
		logger.Warning(w.String())
	}

	for _, i := range d.Infos {
		logger.Verbose(i.String())
	}
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Class != "" {
		prefix = append(prefix, "["+d.Class+"]")
	}

	if d.Member != "" {
		prefix = append(prefix, d.Member)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
