package notify

import "errors"

var (
	// ErrNotFound means the appointment (or its recipient) does not exist.
	ErrNotFound = errors.New("appointment not found")

	// ErrInvalidArgument means a required field for the event type is missing.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMailDelivery means the mail server rejected or failed the send. The
	// emit is aborted: no notification row is written and no push is sent.
	ErrMailDelivery = errors.New("mail delivery failed")

	// ErrStoreUnavailable means the notification store could not be reached.
	ErrStoreUnavailable = errors.New("notification store unavailable")
)
