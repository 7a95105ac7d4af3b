// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// vault server handlers and the client services.
//
// All Msg* constants are human-readable message strings that the server
// writes into the "detail" field of error responses and the client matches
// when translating an answer back into an error. They are shown to the user
// as-is, so keep the wording stable.
package app

const (
	// MsgOnline is the message of GET /.
	MsgOnline = "Secure Vault System is Active"

	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails basic validation (e.g. missing required fields).
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgVaultCreated accompanies the vault key returned by create-vault.
	MsgVaultCreated = "Vault created. Save this key: it is shown only once."

	// MsgVaultAlreadyExists is returned when the email already owns a vault.
	MsgVaultAlreadyExists = "Vault already exists for this email"

	// MsgInvalidCredentials is returned for an unknown email or a wrong
	// password or vault key.
	MsgInvalidCredentials = "Invalid credentials"

	// MsgVaultLocked is returned once too many failed logins locked the
	// vault. The client routes to identity verification on it.
	MsgVaultLocked = "Vault LOCKED. Identity verification required."

	// MsgVaultNotLocked is returned by verify-identity for a vault that
	// still accepts its password.
	MsgVaultNotLocked = "Vault is not locked. Log in with your password."

	// MsgVaultNotFound is returned when no vault exists for the email.
	MsgVaultNotFound = "Vault not found"

	// MsgVaultDestroyed is returned for every call on a destroyed vault.
	MsgVaultDestroyed = "Vault destroyed"

	// MsgIdentityFailed is returned with 410 when a wrong security answer
	// destroyed the vault.
	MsgIdentityFailed = "Identity verification failed. Vault destroyed."

	// MsgIdentityVerified accompanies the temporary password.
	MsgIdentityVerified = "Identity verified. Use the temporary password to log in."

	// MsgVaultDestroyedMoved is the message of a successful destroy-vault.
	MsgVaultDestroyedMoved = "Your vault has been locked and files moved to deep storage."

	// MsgInvalidVaultKey is returned when an upload or destroy carries a
	// key that is not the vault's.
	MsgInvalidVaultKey = "Invalid vault key"

	// MsgEmailMismatch is returned when a user_email field names another
	// vault than the bearer token.
	MsgEmailMismatch = "Email does not match the authenticated vault"

	// MsgFileNotFound is returned by download for an unknown file.
	MsgFileNotFound = "File not found"

	// MsgAccessDenied is returned when the file belongs to another vault.
	MsgAccessDenied = "ACCESS DENIED: You do not own this file."

	// MsgFileCorrupted is returned when the stored blob is truncated.
	MsgFileCorrupted = "File corrupted."

	// MsgDecryptionFailed is returned when the key does not open the blob.
	MsgDecryptionFailed = "Decryption Failed (Wrong Key)."

	// MsgFileTooLarge is returned when an upload exceeds the size limit.
	MsgFileTooLarge = "File too large"

	// MsgMissingToken is returned when an authenticated route is called
	// without a bearer token.
	MsgMissingToken = "missing bearer token"

	// MsgTokenIsExpiredOrInvalid is returned when a JWT bearer token is
	// either expired or cannot be verified (e.g. wrong signature).
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgVersionIsNotSpecified is returned by /api/version when the build
	// carries no version.
	MsgVersionIsNotSpecified = "version is not specified"
)
