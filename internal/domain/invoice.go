package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client is an invoicing customer
type Client struct {
	ID       int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string    `gorm:"size:150" json:"name"`
	City     string    `gorm:"size:150;index" json:"city"`
	Invoices []Invoice `json:"invoices,omitempty"`
}

// TableName Specify table name
func (Client) TableName() string {
	return "clients"
}

// Invoice belongs to a client; unpaid invoices block the client's deletion
type Invoice struct {
	Number   int64           `gorm:"column:number;primaryKey;autoIncrement" json:"number"`
	Date     time.Time       `gorm:"type:date" json:"date"`
	Amount   decimal.Decimal `gorm:"type:decimal(9,2)" json:"amount" swaggertype:"string"`
	Paid     bool            `gorm:"index" json:"paid"`
	ClientID int64           `gorm:"index;not null" json:"client_id"`
	Client   *Client         `json:"client,omitempty"`
}

// TableName Specify table name
func (Invoice) TableName() string {
	return "invoices"
}
