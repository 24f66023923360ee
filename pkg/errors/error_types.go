package errors

// ConfigError indicates missing or invalid runtime configuration,
// typically absent FTP credentials.
const ConfigError ErrorType = "config_error"

// NotFoundError indicates that a local file was not found.
const NotFoundError ErrorType = "not_found_error"

// ConnectionError indicates a failed handshake or login with the
// remote FTP server.
const ConnectionError ErrorType = "connection_error"

// TransferError indicates a failure while streaming data to the remote
// server or while navigating its directory tree.
const TransferError ErrorType = "transfer_error"

// VerificationError indicates that the remote file size does not match
// the local file after a completed transfer. It is non-fatal: the upload
// reports a failed result instead of aborting the process.
const VerificationError ErrorType = "verification_error"
