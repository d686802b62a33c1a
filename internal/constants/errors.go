package constants

import "errors"

// Dialog errors.
var (
	ErrDialogOpen      = errors.New("dialog is already open")
	ErrDialogNotOpen   = errors.New("dialog is not being edited")
	ErrDialogBusy      = errors.New("dialog is submitting")
	ErrCannotSubmit    = errors.New("dialog cannot be submitted")
	ErrAttachmentEmpty = errors.New("attachment has no content")
)

// Configuration errors.
var (
	ErrNoAPIConfigured = errors.New("no API configured, use --api or 'icash config set api <url>'")
	ErrUnknownSetting  = errors.New("unknown setting")
	ErrInvalidOutput   = errors.New("output must be one of table, json or yaml")
)

// Validation errors.
var (
	ErrInvalidPeriod        = errors.New("invalid period")
	ErrInvalidSource        = errors.New("source must be one of web, mobile or bot")
	ErrInvalidPaymentMethod = errors.New("payment method must be one of bank_transfer, mobile_money, card or cash")
	ErrInvalidTransType     = errors.New("transaction type must be deposit or withdrawal")
	ErrNotInteractive       = errors.New("--interactive needs a terminal on stdin")
	ErrNothingToUpdate      = errors.New("no field to update, set at least one flag")
	ErrConfirmationRequired = errors.New("refusing to delete without confirmation, use --force")
	ErrFormAborted          = errors.New("form aborted")
)

// File system errors.
var (
	ErrDirectoryTraversalDetected = errors.New("directory traversal detected in file path")
	ErrNotRegularFile             = errors.New("path is not a regular file")
)
