package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("Your Item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput       = errors.New("Given Param is not valid")
	ErrInvalidNumberFormat = errors.New("invalid number format")

	// request error
	ErrInvalidAddress   = errors.New("Invalid address")
	ErrInvalidSignature = errors.New("Invalid signature")
	ErrInvalidNonce     = errors.New("Invalid nonce")
)

// auction house errors, one per precondition so callers can tell them apart
var (
	ErrUnauthorized          = errors.New("caller is not authorized")
	ErrNotApproved           = errors.New("You Are Not Approved")
	ErrNotAssetOwner         = errors.New("You are not the owner of this token")
	ErrAuctionNotUp          = errors.New("Auction Not Up")
	ErrBelowReserve          = errors.New("Must send at least reservePrice")
	ErrInsufficientIncrement = errors.New("Must send more than last bid by minBidIncrementPercentage amount")
	ErrAuctionNotOver        = errors.New("Auction not over yet")
	ErrAlreadySettled        = errors.New("Auction already settled")
	ErrAlreadyCancelled      = errors.New("Auction already cancelled")
	ErrCannotCancelActive    = errors.New("Auction already started")
	ErrTransferFailure       = errors.New("transfer failed")
	ErrInvalidConfig         = errors.New("invalid house config")

	// ErrLedgerInconsistent halts the house, an effect could not be undone
	ErrLedgerInconsistent = errors.New("house and ledger disagree")
)

// sandbox ledger errors
var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNotTokenOwner     = errors.New("transfer from account that does not own the token")
	ErrNotOperator       = errors.New("house is not an approved operator of the token owner")
)
