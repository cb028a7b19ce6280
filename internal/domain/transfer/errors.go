package domain_transfer

import "errors"

var (
	ErrInvalidTransferID  = errors.New("transfer: invalid transfer_id")
	ErrMissingSenderID    = errors.New("transfer: sender_id is required")
	ErrMissingReceiverID  = errors.New("transfer: receiver_id is required")
	ErrInvalidAmount      = errors.New("transfer: amount must be > 0 and whole cents")
	ErrInvalidCurrency    = errors.New("transfer: currency must be 3-letter ISO code")
	ErrDescriptionTooLong = errors.New("transfer: description exceeds 128 characters")

	ErrInvalidStatus      = errors.New("transfer: invalid status")
	ErrInvalidState       = errors.New("transfer: invalid scheme transfer state")
	ErrMissingObservation = errors.New("transfer: snapshot has no observations")
)
