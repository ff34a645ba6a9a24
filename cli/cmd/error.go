package cmd

import (
	"log/slog"
)

// Error is a command failure on a single file, such as the configuration
// file written by init or an output file. Values derived with [Error.In],
// [Error.With] and [Error.Wrap] still match their sentinel with errors.Is.
type Error struct {
	base  *Error
	op    string
	file  string
	err   error
	attrs []slog.Attr
}

// NewError returns a sentinel for the operation op.
func NewError(op string) *Error {
	return &Error{op: op}
}

func (e *Error) Error() string {
	msg := e.op
	if e.file != "" {
		msg += " " + e.file
	}

	switch {
	case e.err == nil:
		return msg
	case msg == "":
		return e.err.Error()
	default:
		return msg + ": " + e.err.Error()
	}
}

func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t == e.sentinel()
}

// File returns the path of the file the operation failed on, if any.
func (e *Error) File() string { return e.file }

func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+3)
	attrs = append(attrs, slog.String("op", e.op))

	if e.file != "" {
		attrs = append(attrs, slog.String("file", e.file))
	}

	if e.err != nil {
		attrs = append(attrs, slog.Any("cause", e.err))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// In returns a copy of e naming the file the operation failed on.
func (e *Error) In(file string) *Error {
	c := e.derive()
	c.file = file

	return c
}

// Wrap returns a copy of e caused by err.
func (e *Error) Wrap(err error) *Error {
	c := e.derive()
	c.err = err

	return c
}

// With returns a copy of e with attrs appended.
func (e *Error) With(attrs ...slog.Attr) *Error {
	c := e.derive()
	c.attrs = append(c.attrs[:len(c.attrs):len(c.attrs)], attrs...)

	return c
}

func (e *Error) derive() *Error {
	c := *e
	c.base = e.sentinel()

	return &c
}

func (e *Error) sentinel() *Error {
	if e.base != nil {
		return e.base
	}

	return e
}

var (
	ErrYAMLMarshal = NewError("marshal YAML")
	ErrWriteConfig = NewError("write configuration file")
	ErrFileExists  = NewError("file exists (use --force to overwrite)")
)
