package errors

import (
	stdlib "errors"
	"fmt"
	"testing"

	"github.com/pkg/errors"
)

func TestCause(t *testing.T) {
	std := stdlib.New("this is a stdlib error")

	cases := map[string]struct {
		err  error
		root error
	}{
		"Errors are self-causing": {
			err:  ErrNotFound,
			root: ErrNotFound,
		},
		"Wrap reveals root cause": {
			err:  Wrap(ErrNotFound, "foo"),
			root: ErrNotFound,
		},
		"Cause works for stderr as root": {
			err:  Wrap(std, "Some helpful text"),
			root: std,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := errors.Cause(tc.err); got != tc.root {
				t.Fatal("unexpected result")
			}
		})
	}
}

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		a      *Error
		b      error
		wantIs bool
	}{
		"instance of the same error": {
			a:      ErrNotFound,
			b:      ErrNotFound,
			wantIs: true,
		},
		"two different coded errors": {
			a:      ErrNotFound,
			b:      ErrModel,
			wantIs: false,
		},
		"successful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      errors.Wrap(ErrNotFound, "gone"),
			wantIs: true,
		},
		"unsuccessful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      errors.Wrap(ErrOverflow, "too big"),
			wantIs: false,
		},
		"not equal to stdlib error": {
			a:      ErrNotFound,
			b:      fmt.Errorf("stdlib error"),
			wantIs: false,
		},
		"not equal to a wrapped stdlib error": {
			a:      ErrNotFound,
			b:      errors.Wrap(fmt.Errorf("stdlib error"), "wrapped"),
			wantIs: false,
		},
		"nil is nil": {
			a:      nil,
			b:      nil,
			wantIs: true,
		},
		"nil is any error nil": {
			a:      nil,
			b:      (*customError)(nil),
			wantIs: true,
		},
		"nil is not not-nil": {
			a:      nil,
			b:      ErrUnauthorized,
			wantIs: false,
		},
		"not-nil is not nil": {
			a:      ErrUnauthorized,
			b:      nil,
			wantIs: false,
		},
		"multierror containing the error": {
			a:      ErrEmpty,
			b:      Append(ErrState, Wrap(ErrEmpty, "name")),
			wantIs: true,
		},
		"multierror not containing the error": {
			a:      ErrEmpty,
			b:      Append(ErrState, ErrAmount),
			wantIs: false,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.a.Is(tc.b); got != tc.wantIs {
				t.Fatalf("unexpected result - got:%v want: %v", got, tc.wantIs)
			}
		})
	}
}

type customError struct{}

func (customError) Error() string {
	return "custom error"
}

func TestWrapEmpty(t *testing.T) {
	if err := Wrap(nil, "wrapping <nil>"); err != nil {
		t.Fatal(err)
	}
}

func TestRegisterDuplicatedCode(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("registering an error code twice must panic")
		}
	}()
	Register(ErrNotFound.code, "a second not found")
}

func TestRecover(t *testing.T) {
	fn := func() (err error) {
		defer Recover(&err)
		panic("boom")
	}
	err := fn()
	if !ErrPanic.Is(err) {
		t.Fatalf("want panic error, got %+v", err)
	}
}

func TestABCIErrorResolvesRegistered(t *testing.T) {
	err := ABCIError(ErrNotFound.code, "cannot load transfer")
	if !ErrNotFound.Is(err) {
		t.Fatalf("want not found error, got %v", err)
	}
	unknown := ABCIError(987654, "whatever")
	if ErrNotFound.Is(unknown) {
		t.Fatal("unknown code must not match a registered error")
	}
	if code, _ := ABCIInfo(unknown, false); code != 987654 {
		t.Fatalf("unexpected code %d", code)
	}
}

func TestABCIErrorKeepsLogOnce(t *testing.T) {
	cases := map[string]string{
		"wrapped on the node": "transfer 3: not found",
		"bare root error":     "not found",
		"prefixed log":        "cannot deliver tx: transfer 3: not found",
	}
	for name, log := range cases {
		t.Run(name, func(t *testing.T) {
			err := ABCIError(ErrNotFound.code, log)
			if !ErrNotFound.Is(err) {
				t.Fatalf("want not found error, got %v", err)
			}
			if got := err.Error(); got != log {
				t.Fatalf("want %q, got %q", log, got)
			}
		})
	}
}
