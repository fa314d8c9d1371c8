package client

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status is the payment state of a client record.
type Status string

const (
	StatusUnpaid Status = "Unpaid"
	StatusPaid   Status = "Paid"
)

func (s Status) Valid() bool {
	return s == StatusUnpaid || s == StatusPaid
}

// Client is one debtor keyed by name.
// Debt stays a string so that whatever the caller stored is returned unchanged.
type Client struct {
	Name     string    `json:"name" gorm:"primaryKey;size:255"`
	Debt     string    `json:"debt" gorm:"size:64;not null;default:'0';index"`
	Status   Status    `json:"status" gorm:"type:varchar(16);not null;default:'Unpaid';index"`
	Company  string    `json:"company" gorm:"size:64;not null;index"`
	Date     string    `json:"date" gorm:"size:64;index"`
	Payments []Payment `json:"payments" gorm:"foreignKey:ClientName;references:Name;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (Client) TableName() string {
	return "clients"
}

// IsPaid returns true if the client is marked as paid
func (c *Client) IsPaid() bool {
	return c.Status == StatusPaid
}

// Payment is one partial payment recorded against a client.
type Payment struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ClientName string    `json:"client_name" gorm:"size:255;not null;index"`
	Amount     string    `json:"amount" gorm:"size:64;not null"`
	Date       string    `json:"date" gorm:"size:64"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}

func (Payment) TableName() string {
	return "client_payments"
}

func (p *Payment) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
