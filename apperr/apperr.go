// Package apperr defines the error taxonomy shared by the chat core.
// Handlers map these onto named *_error events or HTTP statuses; anything
// not matching one of the sentinels is treated as a transport failure.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInvalidState     = errors.New("invalid state")
	ErrRecipientOffline = errors.New("recipient offline")
	ErrTransport        = errors.New("transport failure")
)

func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

func Unauthorizedf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrUnauthorized)...)
}

func InvalidStatef(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalidState)...)
}

func RecipientOfflinef(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrRecipientOffline)...)
}

func Transportf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrTransport)...)
}

func IsNotFound(err error) bool         { return errors.Is(err, ErrNotFound) }
func IsUnauthorized(err error) bool     { return errors.Is(err, ErrUnauthorized) }
func IsInvalidState(err error) bool     { return errors.Is(err, ErrInvalidState) }
func IsRecipientOffline(err error) bool { return errors.Is(err, ErrRecipientOffline) }
func IsTransport(err error) bool        { return errors.Is(err, ErrTransport) }
