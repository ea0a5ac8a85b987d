package client

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	ErrTimeout = errors.New("request timeout")
	ErrNetwork = errors.New("network error")
)

// APIError is returned for any response with status 400 or above.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type Category string

const (
	CategoryTimeout        Category = "timeout"
	CategoryNetwork        Category = "network"
	CategoryNotFound       Category = "not_found"
	CategoryAuthentication Category = "authentication"
	CategoryAuthorization  Category = "authorization"
	CategoryClient         Category = "client"
	CategoryServer         Category = "server"
	CategoryUnknown        Category = "unknown"
)

func Categorize(err error) Category {
	if errors.Is(err, ErrTimeout) {
		return CategoryTimeout
	}
	if errors.Is(err, ErrNetwork) {
		return CategoryNetwork
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return CategoryUnknown
	}

	switch {
	case apiErr.Status == http.StatusUnauthorized:
		return CategoryAuthentication
	case apiErr.Status == http.StatusForbidden:
		return CategoryAuthorization
	case apiErr.Status == http.StatusNotFound:
		return CategoryNotFound
	case apiErr.Status >= 400 && apiErr.Status < 500:
		return CategoryClient
	case apiErr.Status >= 500:
		return CategoryServer
	}
	return CategoryUnknown
}

type RetryStrategy struct {
	ShouldRetry bool
	Delay       time.Duration
	MaxRetries  int
	Label       string
}

func RetryStrategyFor(err error) RetryStrategy {
	switch Categorize(err) {
	case CategoryNetwork, CategoryTimeout:
		return RetryStrategy{ShouldRetry: true, Delay: 2 * time.Second, MaxRetries: 3, Label: "Retry Connection"}
	case CategoryServer:
		return RetryStrategy{ShouldRetry: true, Delay: 3 * time.Second, MaxRetries: 2, Label: "Try Again"}
	}
	return RetryStrategy{Delay: time.Second, MaxRetries: 3, Label: "Try Again"}
}

// UserMessage renders err for display to a reader of the site.
func UserMessage(err error) string {
	switch Categorize(err) {
	case CategoryTimeout:
		return "The request took too long. Please try again."
	case CategoryNetwork:
		return "Unable to connect to the server. Please check your internet connection and try again."
	case CategoryServer:
		return "A server error occurred. Please try again later."
	case CategoryNotFound:
		return "The requested resource could not be found."
	case CategoryAuthentication:
		return "Authentication required. Please log in and try again."
	case CategoryAuthorization:
		return "You do not have permission to access this resource."
	case CategoryClient:
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			return apiErr.Message
		}
		return "Invalid request. Please check your input."
	}
	return "An unexpected error occurred. Please try again."
}
