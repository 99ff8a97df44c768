package models

import "errors"

var (
	ErrNotFound              = errors.New("not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrInvalidInput          = errors.New("invalid input")
	ErrConflict              = errors.New("conflict")
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
	ErrInternal              = errors.New("internal error")
)

// Machine-readable error kinds returned to HTTP callers.
const (
	KindNotFound              = "not_found"
	KindUnauthorized          = "unauthorized"
	KindForbidden             = "forbidden"
	KindInvalidInput          = "invalid_input"
	KindConflict              = "conflict"
	KindTokenExpired          = "token_expired"
	KindTokenMalformed        = "token_malformed"
	KindTokenSignatureInvalid = "token_signature_invalid"
	KindInternal              = "internal"
)

var kinds = []struct {
	err  error
	kind string
}{
	{ErrNotFound, KindNotFound},
	{ErrUnauthorized, KindUnauthorized},
	{ErrForbidden, KindForbidden},
	{ErrInvalidInput, KindInvalidInput},
	{ErrConflict, KindConflict},
	{ErrTokenExpired, KindTokenExpired},
	{ErrTokenMalformed, KindTokenMalformed},
	{ErrTokenSignatureInvalid, KindTokenSignatureInvalid},
}

// KindOf maps err onto the error taxonomy. Anything unrecognised is internal.
func KindOf(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}

// IsTokenError reports whether err is one of the session token failures.
func IsTokenError(err error) bool {
	return errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrTokenMalformed) ||
		errors.Is(err, ErrTokenSignatureInvalid)
}
