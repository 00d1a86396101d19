package tsar

import (
	stderrors "errors"

	"github.com/tsarnet/tsar-go/internal/envelope"
	"github.com/tsarnet/tsar-go/internal/ntptime"
	"github.com/tsarnet/tsar-go/internal/transport"
)

// mapTransportErr translates internal/transport's plain sentinel errors
// into this package's typed *Error, preserving the original cause.
func mapTransportErr(err error) error {
	switch {
	case stderrors.Is(err, transport.ErrBadRequest):
		return wrap(KindBadRequest, err)
	case stderrors.Is(err, transport.ErrUnauthorized):
		return wrap(KindUnauthorized, err)
	case stderrors.Is(err, transport.ErrAppNotFound):
		return wrap(KindAppNotFound, err)
	case stderrors.Is(err, transport.ErrRateLimited):
		return wrap(KindRateLimited, err)
	case stderrors.Is(err, transport.ErrAppPaused):
		return wrap(KindAppPaused, err)
	case stderrors.Is(err, transport.ErrServerError):
		return wrap(KindServerError, err)
	case stderrors.Is(err, transport.ErrRequestFailed):
		return wrap(KindRequestFailed, err)
	default:
		return wrap(KindUnexpectedError, err)
	}
}

// mapEnvelopeErr translates internal/envelope's and internal/ntptime's
// plain sentinel errors into this package's typed *Error.
func mapEnvelopeErr(err error) error {
	switch {
	case stderrors.Is(err, envelope.ErrFailedToParseBody):
		return wrap(KindFailedToParseBody, err)
	case stderrors.Is(err, envelope.ErrFailedToGetData):
		return wrap(KindFailedToGetData, err)
	case stderrors.Is(err, envelope.ErrFailedToGetSignature):
		return wrap(KindFailedToGetSignature, err)
	case stderrors.Is(err, envelope.ErrFailedToDecodeData):
		return wrap(KindFailedToDecodeData, err)
	case stderrors.Is(err, envelope.ErrFailedToDecodeSignature):
		return wrap(KindFailedToDecodeSignature, err)
	case stderrors.Is(err, envelope.ErrFailedToParseData):
		return wrap(KindFailedToParseData, err)
	case stderrors.Is(err, envelope.ErrFailedToGetTimestamp):
		return wrap(KindFailedToGetTimestamp, err)
	case stderrors.Is(err, envelope.ErrFailedToParseTimestamp):
		return wrap(KindFailedToParseTimestamp, err)
	case stderrors.Is(err, envelope.ErrHWIDMismatch):
		return wrap(KindHWIDMismatch, err)
	case stderrors.Is(err, envelope.ErrOldResponse):
		return wrap(KindOldResponse, err)
	case stderrors.Is(err, envelope.ErrInvalidSignature):
		return wrap(KindInvalidSignature, err)
	case stderrors.Is(err, ntptime.ErrFailedToResolveHostname):
		return wrap(KindFailedToResolveHostname, err)
	case stderrors.Is(err, ntptime.ErrFailedToBuildConnection):
		return wrap(KindFailedToBuildConnection, err)
	case stderrors.Is(err, ntptime.ErrFailedToSendPacket):
		return wrap(KindFailedToSendPacket, err)
	case stderrors.Is(err, ntptime.ErrFailedToReceivePacket):
		return wrap(KindFailedToReceivePacket, err)
	default:
		return wrap(KindUnexpectedError, err)
	}
}
