package domain

import "errors"

var (
	ErrEmptyBill           = errors.New("bill has no items")
	ErrInvalidCustomerName = errors.New("customer name is required")
	ErrInvalidPhone        = errors.New("phone must be a 10-digit Indian mobile number")
	ErrBillNotFound        = errors.New("bill not found")
	ErrInvalidQuantity     = errors.New("invalid quantity")
)
