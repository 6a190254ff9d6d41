package errors

import (
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If given error implements unpacker interface, it is flattened. All
// represented errors are extracted and the result contains only single level
// of errors.
func Append(errs ...error) error {
	var res multiErr
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		if u, ok := e.(unpacker); ok {
			res = append(res, u.Unpack()...)
		} else {
			res = append(res, e)
		}
	}
	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	}
	return res
}

// multiErr represents a cumulation of multiple errors. It is an error
// itself and the code it reports is the code of the first contained error.
type multiErr []error

func (m multiErr) Error() string {
	msgs := make([]string, len(m))
	for i, e := range m {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unpack implements unpacker interface.
func (m multiErr) Unpack() []error {
	return m
}

// ABCICode returns the code of the first contained error.
func (m multiErr) ABCICode() uint32 {
	return abciCode(m[0])
}

var (
	_ unpacker = multiErr(nil)
	_ coder    = multiErr(nil)
)
