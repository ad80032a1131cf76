package commands

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pixil98/go-arcana/internal/game"
)

// UserError represents an error that should be displayed to the user.
// These are not system failures - just invalid input or usage.
type UserError struct {
	Message string
	Kind    Kind
}

func (e *UserError) Error() string {
	return e.Message
}

// NewUserError creates a user-facing error.
func NewUserError(msg string) *UserError {
	return &UserError{Message: msg, Kind: KindUsage}
}

// Kind classifies a failed action for the caller.
type Kind string

const (
	KindUsage                Kind = "usage"
	KindNotStarted           Kind = "not_started"
	KindAlreadyStarted       Kind = "already_started"
	KindNotFound             Kind = "not_found"
	KindPermissionDenied     Kind = "permission_denied"
	KindInvalidChoice        Kind = "invalid_choice"
	KindInsufficientResource Kind = "insufficient_resource"
	KindTurnViolation        Kind = "turn_violation"
	KindStateExpired         Kind = "state_expired"
	KindInternal             Kind = "internal"
)

var kinds = []struct {
	err  error
	kind Kind
}{
	{game.ErrNotStarted, KindNotStarted},
	{game.ErrAlreadyStarted, KindAlreadyStarted},
	{game.ErrNotFound, KindNotFound},
	{game.ErrPermissionDenied, KindPermissionDenied},
	{game.ErrInvalidChoice, KindInvalidChoice},
	{game.ErrInsufficientResource, KindInsufficientResource},
	{game.ErrTurnViolation, KindTurnViolation},
	{game.ErrStateExpired, KindStateExpired},
}

// Classify maps an action error to its Kind. Errors outside the engine
// taxonomy are internal.
func Classify(err error) Kind {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue.Kind
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}

// toUserError turns an engine error into the message shown to the player.
// The sentinel prefix is dropped in favour of the detail wrapped around it.
// Internal errors return nil; they are not the user's to see.
func toUserError(err error) *UserError {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue
	}

	for _, k := range kinds {
		if !errors.Is(err, k.err) {
			continue
		}
		msg := err.Error()
		if detail, ok := strings.CutPrefix(msg, k.err.Error()+": "); ok {
			msg = detail
		}
		return &UserError{Message: sentence(msg), Kind: k.kind}
	}
	return nil
}

// sentence capitalizes the first letter and ends msg with a period.
func sentence(msg string) string {
	if msg == "" {
		return msg
	}
	r, size := utf8.DecodeRuneInString(msg)
	msg = string(unicode.ToUpper(r)) + msg[size:]
	if !strings.HasSuffix(msg, ".") && !strings.HasSuffix(msg, "!") && !strings.HasSuffix(msg, "?") {
		msg += "."
	}
	return msg
}
