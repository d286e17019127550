package smuggle

import "errors"

var (
	ErrSessionClosed     = errors.New("session already closed")
	ErrUnknownAgent      = errors.New("unknown agent")
	ErrNegotiationPhase  = errors.New("negotiation action out of phase")
	ErrNegotiationClosed = errors.New("negotiation already resolved")
)

type InvalidOfferError string

func (e InvalidOfferError) Error() string { return "invalid offer: " + string(e) }

func ErrInvalidOffer(msg string) error { return InvalidOfferError(msg) }
