package fluent

import (
	stderrors "errors"

	"fluentmap/errors"
)

// Try runs fn and returns the *errors.MappingError a builder call inside it
// panicked with. Other panics are propagated.
//
//	err := fluent.Try(func() {
//		m.Map("Missing")
//	})
func Try(fn func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		if e, ok := r.(error); ok {
			var me *errors.MappingError
			if stderrors.As(e, &me) {
				err = e

				return
			}
		}

		panic(r)
	}()

	fn()

	return nil
}
