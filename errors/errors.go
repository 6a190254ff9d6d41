package errors

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

// Root errors shared by all extensions. The code of each is what an ABCI
// response carries, so none of them may ever be renumbered.
var (
	// ErrUnauthorized means a required signature or role is missing.
	ErrUnauthorized = Register(2, "unauthorized")

	// ErrNotFound means a transfer, account or other record does not exist.
	ErrNotFound = Register(3, "not found")

	// ErrMsg means a message failed validation.
	ErrMsg = Register(4, "invalid message")

	// ErrModel means a stored object failed validation.
	ErrModel = Register(5, "invalid model")

	ErrDuplicate = Register(6, "duplicate")

	// ErrHuman marks a code path that is unreachable unless the application
	// is wired wrong.
	ErrHuman = Register(7, "coding error")

	ErrImmutable = Register(8, "cannot be modified")

	ErrEmpty = Register(9, "value is empty")

	// ErrState means the operation is not allowed in the current state of
	// an object, e.g. withdrawing a transfer twice.
	ErrState = Register(10, "invalid state")

	ErrType = Register(11, "invalid type")

	ErrAmount = Register(12, "invalid amount")

	// ErrInsufficientAmount means a balance cannot cover a deposit or fee.
	ErrInsufficientAmount = Register(13, "insufficient amount")

	ErrInput = Register(14, "invalid input")

	ErrOverflow = Register(15, "an operation cannot be completed due to value overflow")

	// ErrDatabase wraps failures of the underlying store.
	ErrDatabase = Register(16, "database")

	// ErrIteratorDone ends every store iteration.
	ErrIteratorDone = Register(17, "iterator done")

	// ErrNetwork and ErrTimeout are only produced by the client.
	ErrNetwork = Register(18, "network")
	ErrTimeout = Register(19, "timeout")

	// ErrPanic wraps a recovered panic. Its message is never sent to
	// clients.
	ErrPanic = Register(111222, "panic")
)

// registry maps each code to its root error.
var registry = map[uint32]*Error{}

// Register declares a root error. It panics if the code is taken, so call it
// from package level vars only.
func Register(code uint32, description string) *Error {
	if code == internalABCICode {
		panic(fmt.Sprintf("error code %d is reserved for internal errors", code))
	}
	if e, ok := registry[code]; ok {
		panic(fmt.Sprintf("error with code %d is already registered: %q", code, e.desc))
	}
	e := &Error{code: code, desc: description}
	registry[code] = e
	return e
}

// ABCIError turns the code and log of an ABCI response back into an error,
// so a client can test ErrNotFound.Is(err) on a node answer. A registered
// code maps to its root error, whose description the log already ends with
// and is not repeated.
func ABCIError(code uint32, log string) error {
	root, ok := registry[code]
	if !ok {
		// unknown codes never match on Is
		return Wrap(&Error{code: code, desc: "unknown"}, log)
	}
	if log == root.desc {
		return errors.WithStack(root)
	}
	return Wrap(root, strings.TrimSuffix(log, ": "+root.desc))
}

// Error is a root error: a registered ABCI code with its description.
// Every error the application returns should wrap one.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string {
	return e.desc
}

func (e Error) ABCICode() uint32 {
	return e.code
}

// Is reports whether err is e, or wraps it anywhere in its Cause chain or
// in one of the errors it unpacks to. A nil *Error matches nil errors only.
func (e *Error) Is(err error) bool {
	if e == nil {
		return isNilErr(err)
	}
	for err != nil {
		if err == e {
			return true
		}
		if u, ok := err.(unpacker); ok {
			for _, inner := range u.Unpack() {
				if e.Is(inner) {
					return true
				}
			}
		}
		c, ok := err.(causer)
		if !ok {
			return false
		}
		err = c.Cause()
	}
	return false
}

// Wrap prefixes err with description. The innermost Wrap records the stack
// trace. Wrapping nil returns nil, and an error without a registered root
// is reported as internal.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	return &wrappedError{msg: description, parent: err}
}

func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

type wrappedError struct {
	msg    string
	parent error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.parent.Error()
}

func (e *wrappedError) Cause() error {
	return e.parent
}

// Recover turns a panic into an ErrPanic assigned to *err. Defer it.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

// WithType wraps err with the Go type of obj.
func WithType(err error, obj interface{}) error {
	return Wrapf(err, "%T", obj)
}

// isNilErr also catches a typed nil pointer stored in an error.
func isNilErr(err error) bool {
	if err == nil {
		return true
	}
	v := reflect.ValueOf(err)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

type causer interface {
	Cause() error
}

// unpacker is implemented by errors grouping several others.
type unpacker interface {
	Unpack() []error
}
