package domain

import "errors"

// Error message string constants. Tests match on these with assert.Contains.
const (
	// Configuration errors
	ErrMsgLoad = "banner configuration could not be loaded"

	// Request errors
	ErrMsgUnknownBanner       = "unknown banner"
	ErrMsgInvalidPullCount    = "pull count must be 1 or 10"
	ErrMsgDuplicateRequest    = "duplicate pull request"
	ErrMsgInsufficientFunds   = "insufficient currency"
	ErrMsgInventoryFull       = "inventory is full"
	ErrMsgUnknownItem         = "unknown item"
	ErrMsgInsufficientBalance = "insufficient quantity"
	ErrMsgUnknownPlayer       = "unknown player"
)

// Domain errors shared by every layer. Wrap with fmt.Errorf("%w: ...", domain.ErrXxx, ...)
// when adding context and compare with errors.Is.
var (
	ErrLoad = errors.New(ErrMsgLoad)

	ErrUnknownBanner        = errors.New(ErrMsgUnknownBanner)
	ErrInvalidPullCount     = errors.New(ErrMsgInvalidPullCount)
	ErrDuplicateRequest     = errors.New(ErrMsgDuplicateRequest)
	ErrInsufficientCurrency = errors.New(ErrMsgInsufficientFunds)
	ErrInsufficientCapacity = errors.New(ErrMsgInventoryFull)
	ErrUnknownItem          = errors.New(ErrMsgUnknownItem)
	ErrInsufficientQuantity = errors.New(ErrMsgInsufficientBalance)
	ErrUnknownPlayer        = errors.New(ErrMsgUnknownPlayer)
)
