// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import "errors"

// Kind classifies every error the vault core can return. The set is closed:
// transport adapters switch on it instead of matching error strings.
type Kind uint8

const (
	// KindUnknown is reported for nil errors and for errors that carry no
	// [Kind] anywhere in their chain.
	KindUnknown Kind = iota

	// KindStorage is an I/O or integrity failure in the durable layer.
	KindStorage

	// KindNotFound means a referenced tenant, user or entry does not exist.
	KindNotFound

	// KindDuplicate means a tenant name or username is already taken.
	KindDuplicate

	// KindInvalidCredentials covers both an unknown username and a wrong
	// password. The two cases are deliberately indistinguishable.
	KindInvalidCredentials

	// KindKeyDerivation is a KDF execution failure. It never depends on the
	// password content.
	KindKeyDerivation

	// KindDecryptionFailed covers both a wrong key and tampered ciphertext.
	KindDecryptionFailed

	// KindPermissionDenied is returned when a superuser touches a vault or a
	// caller targets a tenant it does not belong to.
	KindPermissionDenied

	// KindUnauthenticated means no valid session was presented.
	KindUnauthenticated

	// KindInvalidInput means a request failed validation before reaching the
	// core.
	KindInvalidInput
)

var kindNames = map[Kind]string{
	KindUnknown:            "unknown",
	KindStorage:            "storage",
	KindNotFound:           "not_found",
	KindDuplicate:          "duplicate",
	KindInvalidCredentials: "invalid_credentials",
	KindKeyDerivation:      "key_derivation",
	KindDecryptionFailed:   "decryption_failed",
	KindPermissionDenied:   "permission_denied",
	KindUnauthenticated:    "unauthenticated",
	KindInvalidInput:       "invalid_input",
}

// String returns the snake_case name of the kind, suitable for log fields.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindUnknown]
}

// Error is a message tagged with a [Kind].
//
// Packages declare their sentinels with [NewError]; any such sentinel matches
// the root sentinel of its kind under [errors.Is], so callers can test either
// the precise sentinel (store.ErrEntryNotFound) or the whole kind
// (app.ErrNotFound).
type Error struct {
	kind Kind
	msg  string
}

// NewError returns a new kind-tagged sentinel.
func NewError(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.msg
}

// Kind returns the classification of e.
func (e *Error) Kind() Kind {
	return e.kind
}

// Is reports whether target is the root sentinel of e's kind.
func (e *Error) Is(target error) bool {
	root, ok := roots[e.kind]
	return ok && target == root
}

// Root sentinels, one per kind.
var (
	ErrStorage            = NewError(KindStorage, "storage error")
	ErrNotFound           = NewError(KindNotFound, "not found")
	ErrDuplicate          = NewError(KindDuplicate, "already exists")
	ErrInvalidCredentials = NewError(KindInvalidCredentials, "invalid credentials")
	ErrKeyDerivation      = NewError(KindKeyDerivation, "key derivation failed")
	ErrDecryptionFailed   = NewError(KindDecryptionFailed, "decryption failed")
	ErrPermissionDenied   = NewError(KindPermissionDenied, "permission denied")
	ErrUnauthenticated    = NewError(KindUnauthenticated, "unauthenticated")
	ErrInvalidInput       = NewError(KindInvalidInput, "invalid input")
)

var roots = map[Kind]*Error{
	KindStorage:            ErrStorage,
	KindNotFound:           ErrNotFound,
	KindDuplicate:          ErrDuplicate,
	KindInvalidCredentials: ErrInvalidCredentials,
	KindKeyDerivation:      ErrKeyDerivation,
	KindDecryptionFailed:   ErrDecryptionFailed,
	KindPermissionDenied:   ErrPermissionDenied,
	KindUnauthenticated:    ErrUnauthenticated,
	KindInvalidInput:       ErrInvalidInput,
}

// KindOf returns the kind of the first [*Error] found in err's chain, or
// [KindUnknown] when there is none.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}

	return KindUnknown
}
