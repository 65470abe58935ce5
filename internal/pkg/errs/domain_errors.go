package errs

import "errors"

// Sentinel errors shared by the usecase layers. Ledger operations return
// these for routine business outcomes so callers can branch without string
// matching.
var (
	// Offer errors
	ErrOfferNotFound      = errors.New("offer not found")
	ErrOfferNotReservable = errors.New("offer not reservable")
	ErrInvalidOfferWindow = errors.New("invalid offer availability window")
	ErrInvalidPrice       = errors.New("invalid offer price")

	// Reservation errors
	ErrReservationNotFound   = errors.New("reservation not found")
	ErrReservationNotPending = errors.New("reservation not pending")
	ErrInvalidQuantity       = errors.New("invalid quantity")
	ErrInsufficientStock     = errors.New("insufficient stock")

	// Discovery errors
	ErrInvalidGeoCoordinate = errors.New("invalid geo coordinate")
	ErrInvalidRadius        = errors.New("invalid search radius")

	// Merchant errors
	ErrMerchantNotFound = errors.New("merchant not found")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
