package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Field attaches err to a field of a validated struct, for example
// Field("Recipient", ErrInvalidRecipient, "zero address"). Nested fields use
// a dotted path such as "Transfer.Amount". description may be a format
// string for args. A nil err returns nil.
func Field(field string, err error, description string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	if len(args) > 0 {
		description = fmt.Sprintf(description, args...)
	}
	return &fieldError{field: field, desc: description, parent: err}
}

// AppendField adds err, if not nil, to errs as an error of field.
func AppendField(errs error, field string, err error) error {
	return Append(errs, Field(field, err, ""))
}

type fieldError struct {
	field  string
	desc   string
	parent error
}

func (e *fieldError) Error() string {
	msg := e.parent.Error()
	if e.desc != "" {
		msg = e.desc + ": " + msg
	}
	return fmt.Sprintf("field %q: %s", e.field, msg)
}

func (e *fieldError) Cause() error  { return e.parent }
func (e *fieldError) Field() string { return e.field }

// FieldErrors collects the errors reported for field anywhere in the tree
// built with Append, Wrap and Field. The search does not descend below a
// matching field error.
func FieldErrors(err error, field string) []error {
	var found []error
	for !isNilErr(err) {
		if f, ok := err.(*fieldError); ok && f.field == field {
			return append(found, err)
		}
		if u, ok := err.(unpacker); ok {
			for _, e := range u.Unpack() {
				found = append(found, FieldErrors(e, field)...)
			}
			return found
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return found
}
