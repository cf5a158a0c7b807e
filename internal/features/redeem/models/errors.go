package models

import "errors"

var (
	// ErrRedeemNotFound means the referenced redeem id is not in the collection.
	ErrRedeemNotFound = errors.New("redeem not found")
	// ErrTypeMismatch means an action was invoked against the wrong variant.
	ErrTypeMismatch = errors.New("action does not apply to this redeem type")
	// ErrInvalidPayload means a create payload or action parameter failed validation.
	ErrInvalidPayload = errors.New("invalid redeem payload")
	// ErrUnknownAction means the transport passed an unrecognized action name.
	ErrUnknownAction = errors.New("unknown redeem action")
)
