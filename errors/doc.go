/*
Package errors provides semantic error types for fluentmap.

Every failure carries one of the sentinel errors below, so callers can branch
with the standard errors.Is() function or the provided helpers:

	var (
	    ErrMemberResolution        = errors.New("member cannot be resolved")
	    ErrInvalidMember           = errors.New("member kind not supported")
	    ErrConfigurationIncomplete = errors.New("configuration incomplete")
	    ErrAmbiguousMergeTarget    = errors.New("ambiguous merge target")
	    ErrDuplicateMember         = errors.New("duplicate member mapping")
	    ErrRecursiveComponent      = errors.New("recursive component")
	    ErrDuplicateMapping        = errors.New("type already mapped")
	)

Errors raised by builders and by compilation are *MappingError values scoped
to the offending type and member:

	docs, err := model.BuildMappings()
	if err != nil {
	    var me *errors.MappingError
	    if stderrors.As(err, &me) && errors.IsConfigurationIncomplete(err) {
	        log.Printf("fix %s.%s: %s", me.Type, me.Member, me.Detail)
	    }
	}

BuildMappings joins one error per failing class with errors.Join, so
errors.Is and errors.As see every class-level failure.
*/
package errors
