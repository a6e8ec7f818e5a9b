// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app holds the application-wide error taxonomy and the user-facing
// messages shared by the HTTP and gRPC adapters.
//
// Every error returned by the vault core carries a [Kind]. Adapters call
// [KindOf] to pick a status code and [Message] to pick the text written into
// a response, so that internal details (SQL errors, driver codes) never leak
// to a caller.
package app

import "errors"

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails validation.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidCredentials is returned for an unknown username, a wrong
	// password and a vault password that does not open the tenant vault.
	MsgInvalidCredentials = "invalid username or password"

	// MsgNotAuthenticated is returned when a request needs a session and
	// carries none, or carries an expired or unknown one.
	MsgNotAuthenticated = "not authenticated"

	// MsgAccessDenied is returned when a superuser requests vault access or a
	// tenant user requests an admin operation.
	MsgAccessDenied = "access denied"

	// MsgNotFound is returned when an entry, tenant or user does not exist.
	MsgNotFound = "not found"

	// MsgAlreadyExists is returned when a tenant name or username is taken.
	MsgAlreadyExists = "already exists"

	// MsgDecryptionFailed is returned when a stored value cannot be decrypted
	// with the session key.
	MsgDecryptionFailed = "decryption failed"

	// MsgInternalServerError is returned for every other failure.
	MsgInternalServerError = "internal server error"
)

// Message maps the kind of err to the message an adapter may show a caller.
// InvalidInput errors keep the text of their sentinel since it names the
// offending field; wrapping context is dropped.
func Message(err error) string {
	switch KindOf(err) {
	case KindInvalidInput:
		var e *Error
		errors.As(err, &e)
		return e.msg
	case KindInvalidCredentials:
		return MsgInvalidCredentials
	case KindUnauthenticated:
		return MsgNotAuthenticated
	case KindPermissionDenied:
		return MsgAccessDenied
	case KindNotFound:
		return MsgNotFound
	case KindDuplicate:
		return MsgAlreadyExists
	case KindDecryptionFailed:
		return MsgDecryptionFailed
	default:
		return MsgInternalServerError
	}
}
