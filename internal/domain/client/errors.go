package client

import "errors"

var (
	ErrClientNotFound = errors.New("client not found")
	ErrInvalidAmount  = errors.New("amount must be a number")
	ErrInvalidStatus  = errors.New("status must be Paid or Unpaid")
	ErrEmptyName      = errors.New("client name is required")
	ErrUnknownCompany = errors.New("company is not in the configured set")
)
