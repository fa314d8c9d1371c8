package client

import (
	"bytes"
	"encoding/json"
)

// Amount accepts a JSON string or number and keeps the text as entered.
type Amount string

func (a *Amount) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*a = Amount(s)
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var n json.Number
	if err := dec.Decode(&n); err != nil {
		return err
	}
	*a = Amount(n.String())
	return nil
}

// CreateClientRequest is the add-client form
type CreateClientRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	Debt    Amount `json:"debt" validate:"required,max=64"`
	Company string `json:"company" validate:"required,company"`
}

// UpdateDebtRequest replaces the debt of a client
type UpdateDebtRequest struct {
	Debt Amount `json:"debt" validate:"required,max=64"`
}

// RecordPaymentRequest records a partial payment
type RecordPaymentRequest struct {
	Amount Amount `json:"amount" validate:"required,max=64"`
}

// ClientListResponse wraps list results
type ClientListResponse struct {
	Clients []*Client `json:"clients"`
	Total   int       `json:"total"`
}
