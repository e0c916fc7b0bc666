package parse

import (
	"fmt"
	"strconv"

	"github.com/itsatony/go-cuserr"
)

// Compile error messages.  All errors surfaced by this package carry one of
// these as its reason; there is no recoverable case.
const (
	ErrMsgMissingQuery    = "missing query"
	ErrMsgMissingLoopVar  = "missing loop variable"
	ErrMsgMissingFilename = "missing filename"
	ErrMsgUnknownCommand  = "unknown command"
	ErrMsgUnexpectedEnd   = "no open block for terminator"
	ErrMsgMismatchedEnd   = "terminator does not match open block"
	ErrMsgMissingCloser   = "missing ?>"
	ErrMsgUnclosedBlock   = "unclosed block at end of input"
)

// ErrCodeCompile categorizes all template compilation errors.
const ErrCodeCompile = "JSONT_COMPILE"

// Metadata keys attached to compile errors.
const (
	metaKeyCommand = "command"
	metaKeyLine    = "line"
	metaKeyColumn  = "column"
)

// compileErrorf builds a template compilation error for the directive
// command being parsed at the given source position.
func compileErrorf(line, col int, command, format string, args ...interface{}) error {
	return cuserr.NewValidationError(ErrCodeCompile, fmt.Sprintf(format, args...)).
		WithMetadata(metaKeyCommand, command).
		WithMetadata(metaKeyLine, strconv.Itoa(line)).
		WithMetadata(metaKeyColumn, strconv.Itoa(col))
}
