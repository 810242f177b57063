package game

import (
	"errors"
	"fmt"
)

var (
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrNotAuthenticated     = errors.New("not authenticated")
	ErrProfileLoadDegraded  = errors.New("profile could not be loaded; progress may not be saved")
	ErrUpdateInProgress     = errors.New("an update is already in progress")
	ErrInvalidState         = errors.New("operation not valid in the current state")
	ErrInvalidName          = errors.New("display name must not be empty")
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrUnknownSticker       = errors.New("unknown sticker")
	ErrInsufficientCoins    = errors.New("not enough coins")
	ErrTriviaLocked         = errors.New("trivia is locked until the cooldown ends")
	ErrInvalidChoice        = errors.New("invalid answer choice")
	ErrNoPendingPull        = errors.New("no sticker pull in progress")
)

// RegistrationReason classifies why registration failed.
type RegistrationReason string

const (
	ReasonInvalidEmail RegistrationReason = "invalid_email"
	ReasonWeakPassword RegistrationReason = "weak_password"
	ReasonEmailInUse   RegistrationReason = "email_in_use"
	ReasonInvalidName  RegistrationReason = "invalid_name"
	ReasonUnavailable  RegistrationReason = "unavailable"
)

// RegistrationError reports a failed account registration.
type RegistrationError struct {
	Reason RegistrationReason
	Err    error
}

func (e *RegistrationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("registration failed (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("registration failed (%s)", e.Reason)
}

func (e *RegistrationError) Unwrap() error { return e.Err }

// TriviaStartError reports that the question batch could not be fetched.
// The session is back in the idle phase when this is returned.
type TriviaStartError struct {
	Err error
}

func (e *TriviaStartError) Error() string {
	return fmt.Sprintf("could not start trivia: %v", e.Err)
}

func (e *TriviaStartError) Unwrap() error { return e.Err }
