package tsar

import "fmt"

// Kind discriminates the category of failure a Client or User operation
// can surface. Every failure path in this package resolves to exactly one
// Kind; none are produced by exception-style panics.
type Kind string

const (
	// Configuration
	KindInvalidAppID             Kind = "invalid_app_id"
	KindInvalidClientKey         Kind = "invalid_client_key"
	KindFailedToDecodePublicKey  Kind = "failed_to_decode_public_key"
	KindFailedToDecodeSessionKey Kind = "failed_to_decode_session_key"

	// Platform
	KindFailedToGetHWID     Kind = "failed_to_get_hwid"
	KindFailedToOpenBrowser Kind = "failed_to_open_browser"

	// Transport
	KindRequestFailed Kind = "request_failed"
	KindServerError   Kind = "server_error"
	KindBadRequest    Kind = "bad_request"
	KindRateLimited   Kind = "rate_limited"
	KindAppNotFound   Kind = "app_not_found"
	KindAppPaused     Kind = "app_paused"

	// Authorization policy
	KindUnauthorized     Kind = "unauthorized"
	KindHashUnauthorized Kind = "hash_unauthorized"

	// Envelope parsing
	KindFailedToParseBody       Kind = "failed_to_parse_body"
	KindFailedToGetData         Kind = "failed_to_get_data"
	KindFailedToGetSignature    Kind = "failed_to_get_signature"
	KindFailedToDecodeData      Kind = "failed_to_decode_data"
	KindFailedToDecodeSignature Kind = "failed_to_decode_signature"
	KindFailedToParseData       Kind = "failed_to_parse_data"
	KindFailedToGetTimestamp    Kind = "failed_to_get_timestamp"
	KindFailedToParseTimestamp  Kind = "failed_to_parse_timestamp"

	// Trust
	KindHWIDMismatch     Kind = "hwid_mismatch"
	KindOldResponse      Kind = "old_response"
	KindInvalidSignature Kind = "invalid_signature"

	// NTP sub-failures, propagated through the freshness check
	KindFailedToBuildConnection Kind = "failed_to_build_connection"
	KindFailedToResolveHostname Kind = "failed_to_resolve_hostname"
	KindFailedToSendPacket      Kind = "failed_to_send_packet"
	KindFailedToReceivePacket   Kind = "failed_to_receive_packet"

	// Fallback
	KindUnexpectedError Kind = "unexpected_error"
)

// Error wraps a Kind with the underlying cause, if any. It is the single
// error type this package returns; callers distinguish failures with
// errors.Is against the package-level sentinels or by inspecting Kind.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("tsar: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("tsar: %s", e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is allows errors.Is(err, ErrOldResponse) to match any *Error sharing the
// same Kind, regardless of the wrapped cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// wrap builds an *Error of the given Kind around cause. cause may be nil.
func wrap(kind Kind, cause error) *Error {
	return &Error{Kind: kind, Err: cause}
}

// Package-level sentinels, one per Kind, for errors.Is comparisons that
// don't need to carry a specific cause.
var (
	ErrInvalidAppID             = &Error{Kind: KindInvalidAppID}
	ErrInvalidClientKey         = &Error{Kind: KindInvalidClientKey}
	ErrFailedToDecodePublicKey  = &Error{Kind: KindFailedToDecodePublicKey}
	ErrFailedToDecodeSessionKey = &Error{Kind: KindFailedToDecodeSessionKey}

	ErrFailedToGetHWID     = &Error{Kind: KindFailedToGetHWID}
	ErrFailedToOpenBrowser = &Error{Kind: KindFailedToOpenBrowser}

	ErrRequestFailed = &Error{Kind: KindRequestFailed}
	ErrServerError   = &Error{Kind: KindServerError}
	ErrBadRequest    = &Error{Kind: KindBadRequest}
	ErrRateLimited   = &Error{Kind: KindRateLimited}
	ErrAppNotFound   = &Error{Kind: KindAppNotFound}
	ErrAppPaused     = &Error{Kind: KindAppPaused}

	ErrUnauthorized     = &Error{Kind: KindUnauthorized}
	ErrHashUnauthorized = &Error{Kind: KindHashUnauthorized}

	ErrFailedToParseBody       = &Error{Kind: KindFailedToParseBody}
	ErrFailedToGetData         = &Error{Kind: KindFailedToGetData}
	ErrFailedToGetSignature    = &Error{Kind: KindFailedToGetSignature}
	ErrFailedToDecodeData      = &Error{Kind: KindFailedToDecodeData}
	ErrFailedToDecodeSignature = &Error{Kind: KindFailedToDecodeSignature}
	ErrFailedToParseData       = &Error{Kind: KindFailedToParseData}
	ErrFailedToGetTimestamp    = &Error{Kind: KindFailedToGetTimestamp}
	ErrFailedToParseTimestamp  = &Error{Kind: KindFailedToParseTimestamp}

	ErrHWIDMismatch     = &Error{Kind: KindHWIDMismatch}
	ErrOldResponse      = &Error{Kind: KindOldResponse}
	ErrInvalidSignature = &Error{Kind: KindInvalidSignature}

	ErrFailedToBuildConnection = &Error{Kind: KindFailedToBuildConnection}
	ErrFailedToResolveHostname = &Error{Kind: KindFailedToResolveHostname}
	ErrFailedToSendPacket      = &Error{Kind: KindFailedToSendPacket}
	ErrFailedToReceivePacket   = &Error{Kind: KindFailedToReceivePacket}

	ErrUnexpectedError = &Error{Kind: KindUnexpectedError}
)
