package kanban

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies an Error.
type Kind int

const (
	// IoError covers missing files, permissions and directory creation.
	IoError Kind = iota + 1
	// PathError means the host could not resolve the data directory.
	PathError
	// BoundsError means a read ran past the end of the buffer.
	BoundsError
	// FormatError is a structural problem in the binary layout.
	FormatError
	// VersionError means the file carries an unsupported version byte.
	VersionError
	// IDError means a project identifier is malformed.
	IDError
	// NumberError means a leb128 number is malformed.
	NumberError
	// TextError means a string field is not valid UTF-8 or could not
	// be encoded.
	TextError
	// ValidationError means user-supplied input was rejected.
	ValidationError
)

var kindNames = map[Kind]string{
	IoError:         "IO Error",
	PathError:       "Path Error",
	BoundsError:     "Bounds Error",
	FormatError:     "Format Error",
	VersionError:    "Version Error",
	IDError:         "ID Error",
	NumberError:     "Number Error",
	TextError:       "Text Error",
	ValidationError: "Validation Error",
}

func (k Kind) String() string {
	name, ok := kindNames[k]
	if !ok {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return name
}

// Error is the error type returned by every package in this module.
// Message is meant for users; Source, when set, is the lower-level
// error kept for diagnostics.
type Error struct {
	Kind    Kind
	Message string
	Source  error
}

// New returns an Error without a cause.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Errorf is New with a format string.
func Errorf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// FromCause returns an Error whose message is the cause's own message.
func FromCause(kind Kind, cause error) *Error {
	return &Error{Kind: kind, Message: cause.Error(), Source: cause}
}

// Wrap returns an Error with msg and cause.
func Wrap(kind Kind, cause error, msg string) *Error {
	return &Error{Kind: kind, Message: msg, Source: cause}
}

// Wrapf is Wrap with a format string.
func Wrapf(kind Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Source: cause}
}

func (e *Error) Error() string {
	if e.Source == nil || e.Source.Error() == e.Message {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Source)
}

// Unwrap supports errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Source
}

// Annotate prefixes the message of a kanban Error with context while
// keeping its kind and source.  Other errors are wrapped with
// errors.Wrap.
func Annotate(err error, context string) error {
	if err == nil {
		return nil
	}
	var kerr *Error
	if errors.As(err, &kerr) {
		return &Error{
			Kind:    kerr.Kind,
			Message: fmt.Sprintf("%s: %s", context, kerr.Message),
			Source:  kerr.Source,
		}
	}
	return errors.Wrap(err, context)
}

// KindOf returns the kind of the first kanban Error in err's chain.
func KindOf(err error) (kind Kind, ok bool) {
	var kerr *Error
	if errors.As(err, &kerr) {
		return kerr.Kind, true
	}
	return 0, false
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
