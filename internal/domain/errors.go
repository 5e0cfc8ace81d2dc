package domain

import "errors"

// Sentinel errors shared by the file readers and the guest-list client.
var (
	ErrInputNotFound    = errors.New("input file not found")
	ErrMalformedInput   = errors.New("malformed input")
	ErrUnexpectedStatus = errors.New("unexpected response status")
)
