package services

import "errors"

var (
	// ErrNotFound covers both unknown shortcodes and owned resources that do
	// not exist under the requesting owner. The two cases are deliberately
	// indistinguishable to callers.
	ErrNotFound = errors.New("qr code not found")

	// ErrInactive means the code exists but was deactivated by its owner.
	// Returned by the synchronous scan recorder, which must not count hits
	// against deactivated codes.
	ErrInactive = errors.New("qr code is inactive")

	ErrValidation = errors.New("invalid request")
)
