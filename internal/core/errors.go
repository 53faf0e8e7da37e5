package core

import (
	"errors"
	"fmt"
)

// OpenTDBのresponse_code
const (
	ResponseSuccess int = iota
	ResponseNoResults
	ResponseInvalidParameter
	ResponseTokenNotFound
	ResponseTokenEmpty
	ResponseRateLimit
)

func responseCodeName(code int) string {
	switch code {
	case ResponseSuccess:
		return "success"
	case ResponseNoResults:
		return "no results"
	case ResponseInvalidParameter:
		return "invalid parameter"
	case ResponseTokenNotFound:
		return "token not found"
	case ResponseTokenEmpty:
		return "token empty"
	case ResponseRateLimit:
		return "rate limit"
	default:
		return "unknown"
	}
}

var ErrExhausted = errors.New("Session token exhausted for this request")

type APIError struct {
	Code int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("OpenTDB responded with code %d (%s)", e.Code, responseCodeName(e.Code))
}

type TokenAcquireError struct {
	Err error
}

func (e *TokenAcquireError) Error() string {
	return "Failed to get session token: " + e.Err.Error()
}

func (e *TokenAcquireError) Unwrap() error {
	return e.Err
}

type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
