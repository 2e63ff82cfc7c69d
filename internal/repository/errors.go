package repository

import "errors"

// Sentinel errors surfaced by transactional guard re-checks. Services wrap
// them into module-level errors; the guards themselves must run inside the
// storage transaction so concurrent writers cannot both pass.
var (
	ErrOfferNotPending    = errors.New("offer is not pending")
	ErrMachineUnavailable = errors.New("machine not available")
	ErrMachineAlreadySold = errors.New("machine already sold")
	ErrRentalNotActive    = errors.New("rental is not active")
)
