package domain

import "errors"

// Domain errors as sentinel values
var (
	// Registration line errors
	ErrInvalidSeats           = errors.New("seats must be at least 1")
	ErrIndividualSeats        = errors.New("individual registrations must have exactly 1 seat")
	ErrInvalidPrice           = errors.New("base unit price must be non-negative with at most 2 decimal places")
	ErrInvalidParticipantType = errors.New("participant type must be Individual or Corporate")
	ErrInvalidPaymentStatus   = errors.New("payment status must be Pending or Paid")
	ErrInvalidDocumentStatus  = errors.New("document status must be empty, Quoted, Invoiced or Receipted")
	ErrEmptyClassID           = errors.New("class id cannot be empty")

	// Workflow errors
	ErrAlreadyPaid        = errors.New("registration is already paid")
	ErrAlreadyPending     = errors.New("registration is already pending")
	ErrDocumentRegression = errors.New("document status can only move forward")
	ErrLineArchived       = errors.New("cannot modify archived registration")
	ErrAlreadyArchived    = errors.New("registration is already archived")
	ErrMissingPaymentDate = errors.New("payment date is required")

	// Discount errors
	ErrInvalidDiscountValue = errors.New("discount value must be positive")
	ErrEmptyPromotionName   = errors.New("promotion name cannot be empty")
)
