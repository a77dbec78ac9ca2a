package broker

import (
	"errors"
	"fmt"
)

// Kind is the error taxonomy from the error-handling design: every failure
// the kernel returns to the MCP client carries exactly one Kind.
type Kind string

const (
	KindInvalidRequest   Kind = "invalidRequest"
	KindThreadNotFound   Kind = "threadNotFound"
	KindModelNotFound    Kind = "modelNotFound"
	KindVisionUnsupported Kind = "visionUnsupported"
	KindImagesTooLarge   Kind = "imagesTooLarge"
	KindContextOverflow  Kind = "contextOverflow"
	KindAuthError        Kind = "authError"
	KindRateLimited      Kind = "rateLimited"
	KindTransportError   Kind = "transportError"
	KindProviderInternal Kind = "providerInternal"
	KindInternalError    Kind = "internalError"
	KindAutoUnresolved   Kind = "autoUnresolved"
	KindNoVisionModel    Kind = "noVisionModelAvailable"
)

// ToolError is the single error shape surfaced to the MCP client. Hint is
// always actionable and never contains key material or a stack trace.
type ToolError struct {
	Kind      Kind
	Tool      string
	Message   string
	Hint      string
	Retryable bool
	Err       error
}

func (e *ToolError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("[%s] %s: %s (%s)", e.Kind, e.Tool, e.Message, e.Hint)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Kind, e.Tool, e.Message)
}

func (e *ToolError) Unwrap() error { return e.Err }

// NewToolError builds a ToolError. hint may be empty when no further
// action is possible client-side.
func NewToolError(kind Kind, tool, message, hint string) *ToolError {
	return &ToolError{Kind: kind, Tool: tool, Message: message, Hint: hint}
}

// WrapToolError attaches a kind/tool/hint to an underlying error without
// discarding it (errors.Is/As still reach Err).
func WrapToolError(kind Kind, tool string, err error, hint string) *ToolError {
	return &ToolError{Kind: kind, Tool: tool, Message: err.Error(), Hint: hint, Err: err}
}

// IsKind reports whether err is a *ToolError of the given Kind.
func IsKind(err error, kind Kind) bool {
	var te *ToolError
	if errors.As(err, &te) {
		return te.Kind == kind
	}
	return false
}

// Sentinel errors for conditions that are always the same shape, mirroring
// the teacher's Err*-plus-Wrap* convention (agent/errors.go) adapted to
// this server's own failure modes.
var (
	ErrNoProviders = errors.New(
		"no providers configured\n" +
			"Fix:\n" +
			"  1. Set at least one of GEMINI_API_KEY, OPENAI_API_KEY, OPENROUTER_API_KEY\n" +
			"  2. Or set CUSTOM_API_URL and CUSTOM_API_KEY for a self-hosted endpoint")

	ErrAutoUnresolved = errors.New(
		"model \"auto\" must be resolved via selectAuto before provider lookup")

	ErrThreadNotFound = errors.New(
		"continuation id does not resolve to a live thread\n" +
			"Fix: omit continuationId to start a new conversation, or verify the id hasn't expired")

	ErrNoVisionModel = errors.New(
		"no vision-capable model is available for this request\n" +
			"Fix: set DEFAULT_VISION_MODEL or pick a vision-capable model explicitly")
)

// WrapAuthError marks err as a provider authentication failure. The
// message intentionally omits the key itself; only the provider name is
// named.
func WrapAuthError(tool, provider string, err error) *ToolError {
	return &ToolError{
		Kind:    KindAuthError,
		Tool:    tool,
		Message: fmt.Sprintf("authentication failed for provider %q", provider),
		Hint:    fmt.Sprintf("check the API key configured for %s", provider),
		Err:     err,
	}
}

// WrapRateLimited marks err as a provider rate-limit response.
// retryAfterSeconds is 0 when the provider supplied no hint.
func WrapRateLimited(tool, provider string, retryAfterSeconds int, err error) *ToolError {
	hint := fmt.Sprintf("provider %s is rate-limiting requests", provider)
	if retryAfterSeconds > 0 {
		hint = fmt.Sprintf("%s; retry after %ds", hint, retryAfterSeconds)
	}
	return &ToolError{Kind: KindRateLimited, Tool: tool, Message: "rate limited", Hint: hint, Retryable: true, Err: err}
}

// WrapTransportError marks err as a retryable network/transport failure,
// with a hint saying the request was retried. WithTransportRetry
// (retry.go) does not use it: once its attempts are exhausted it returns
// the provider's own classified transportError unchanged.
func WrapTransportError(tool, provider string, err error) *ToolError {
	return &ToolError{
		Kind:      KindTransportError,
		Tool:      tool,
		Message:   fmt.Sprintf("transport failure calling %s", provider),
		Hint:      "the request was retried and still failed; try again shortly",
		Retryable: true,
		Err:       err,
	}
}

// WrapProviderInternal marks err as an opaque provider-side failure that
// is not auth, rate-limit, or transport.
func WrapProviderInternal(tool, provider string, err error) *ToolError {
	return &ToolError{
		Kind:    KindProviderInternal,
		Tool:    tool,
		Message: fmt.Sprintf("provider %s returned an internal error", provider),
		Hint:    "this is an upstream provider failure, not a request problem",
		Err:     err,
	}
}

// WrapInternal produces an internalError ToolError that never leaks err's
// text verbatim to the client beyond a generic message.
func WrapInternal(tool string, err error) *ToolError {
	return &ToolError{
		Kind:    KindInternalError,
		Tool:    tool,
		Message: "internal error",
		Hint:    "this is a server-side fault; no request change will fix it",
		Err:     err,
	}
}
