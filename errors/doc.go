/*
Package errors provides semantic error types for the settings store.

Missing settings are not errors: reads return value.Null (or the resolved default)
and Exists/Delete return false. The types here cover the cases a caller has to tell
apart from an ordinary "not found":

	var (
	    ErrNotFound      = errors.New("not found")
	    ErrAlreadyExists = errors.New("already exists")
	    ErrInvalidInput  = errors.New("invalid input")
	)

Usage:

	ok, err := reg.RegistryWrite(ctx, 5, "ui", "theme:dark", "s", "on")
	if err != nil {
	    if errors.IsValidationError(err) {
	        // the name contained the delimiter
	    }
	    return err
	}

	// Create typed errors
	err := errors.NewNotFoundError("engine", "etcd")
	err := errors.NewValidationError("name", "delimiter is not allowed in name")

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
