package broker

import (
	"errors"
	"net/http"
	"strings"

	"github.com/openai/openai-go/v3"
	"google.golang.org/genai"
)

// httpStatusError is the minimal shape every provider SDK's error
// ultimately carries (openai-go and genai both expose an HTTP status
// code on request failures, though through different concrete types).
// Providers adapt their own SDK error into this via classifyOpenAIError
// or classifyGoogleError before calling classifyGenericProviderError.
type httpStatusError struct {
	status  int
	message string
}

func (e *httpStatusError) Error() string { return e.message }

// classifyGenericProviderError maps an HTTP-status-bearing error to the
// §4.5/§7 provider failure taxonomy. Shared across all providers since
// the classification rule (401/403→auth, 429→rate limit, 404→model not
// found, 5xx/network→provider-internal or transport) is identical
// regardless of which SDK produced the error.
func classifyGenericProviderError(err error) error {
	if err == nil {
		return nil
	}
	var statusErr *httpStatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.status == http.StatusUnauthorized || statusErr.status == http.StatusForbidden:
			return &ToolError{Kind: KindAuthError, Message: statusErr.message, Err: err}
		case statusErr.status == http.StatusTooManyRequests:
			return &ToolError{Kind: KindRateLimited, Message: statusErr.message, Retryable: true, Err: err}
		case statusErr.status == http.StatusNotFound:
			return &ToolError{Kind: KindModelNotFound, Message: statusErr.message, Err: err}
		case statusErr.status == http.StatusBadRequest:
			return &ToolError{Kind: KindInvalidRequest, Message: statusErr.message, Err: err}
		case statusErr.status >= 500:
			return &ToolError{Kind: KindProviderInternal, Message: statusErr.message, Err: err}
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "unauthorized") || strings.Contains(msg, "invalid api key") || strings.Contains(msg, "permission"):
		return &ToolError{Kind: KindAuthError, Message: err.Error(), Err: err}
	case strings.Contains(msg, "rate limit") || strings.Contains(msg, "quota") || strings.Contains(msg, "429"):
		return &ToolError{Kind: KindRateLimited, Message: err.Error(), Retryable: true, Err: err}
	case strings.Contains(msg, "not found") || strings.Contains(msg, "404"):
		return &ToolError{Kind: KindModelNotFound, Message: err.Error(), Err: err}
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "connection") || strings.Contains(msg, "eof") || strings.Contains(msg, "reset by peer"):
		return &ToolError{Kind: KindTransportError, Message: err.Error(), Retryable: true, Err: err}
	case strings.Contains(msg, "invalid") || strings.Contains(msg, "bad request"):
		return &ToolError{Kind: KindInvalidRequest, Message: err.Error(), Err: err}
	default:
		return &ToolError{Kind: KindProviderInternal, Message: err.Error(), Err: err}
	}
}

// classifyOpenAIError adapts openai-go's typed *openai.Error, shared by
// the OpenAI, OpenRouter, and Custom providers (all built on the same
// openai-go client), into httpStatusError so the status-coded branch of
// classifyGenericProviderError actually fires instead of the substring
// fallback.
func classifyOpenAIError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return classifyGenericProviderError(&httpStatusError{status: apiErr.StatusCode, message: apiErr.Error()})
	}
	return classifyGenericProviderError(err)
}

// classifyGoogleError adapts genai's typed APIError the same way for the
// native Google provider.
func classifyGoogleError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return classifyGenericProviderError(&httpStatusError{status: apiErr.Code, message: apiErr.Error()})
	}
	return classifyGenericProviderError(err)
}
