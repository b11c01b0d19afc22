package client

import (
	"errors"
	"fmt"
)

// Errors shared between the client and its callers.
var (
	// ErrNoSession means no participant is logged in: the token is
	// absent, undecodable, or its subject matches no known member.
	ErrNoSession = errors.New("no participant session")

	// ErrTeamNameTaken is the domain-level rejection the backend
	// reports inside a successful /team/create response.
	ErrTeamNameTaken = errors.New("team name is already taken")
)

// RequestError is a normalized non-2xx backend response. Message is
// the backend's detail field when one was present, otherwise a
// generic text carrying the numeric status.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

func genericStatusError(status int) *RequestError {
	return &RequestError{
		Status:  status,
		Message: fmt.Sprintf("HTTP error! status: %d", status),
	}
}
