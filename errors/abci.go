package errors

import (
	"errors"
	"fmt"
)

const (
	// SuccessABCICode is the response code of an accepted transaction or
	// query.
	SuccessABCICode uint32 = 0

	// Errors without a registered code are reported with code 1 and a
	// fixed log so that node internals never reach a client.
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo turns err into the code and log of an ABCI response.
//
// Registered errors (anything in the Cause chain implementing ABCICode)
// keep their code and message. Everything else is internal: code 1 and
// "internal error", unless debug is set, in which case the full message
// and any stack trace is logged.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if isNilErr(err) {
		return SuccessABCICode, ""
	}

	code := abciCode(err)
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case code == internalABCICode:
		return internalABCICode, internalABCILog
	default:
		return code, err.Error()
	}
}

type coder interface {
	ABCICode() uint32
}

// abciCode walks the Cause chain of err and returns the first registered
// code found, or the internal code.
func abciCode(err error) uint32 {
	if isNilErr(err) {
		return SuccessABCICode
	}
	for err != nil {
		if c, ok := err.(coder); ok {
			return c.ABCICode()
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return internalABCICode
}

// Redact hides everything but registered errors behind a generic internal
// error. A recovered panic is always hidden. Debug mode returns err as is.
func Redact(err error, debug bool) error {
	if debug {
		return err
	}
	if ErrPanic.Is(err) || abciCode(err) == internalABCICode {
		return errors.New(internalABCILog)
	}
	return err
}
