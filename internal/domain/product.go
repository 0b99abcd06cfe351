package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Family groups products of the same kind
type Family struct {
	ID       int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string    `gorm:"size:150;not null" json:"name"`
	Products []Product `gorm:"constraint:OnDelete:RESTRICT" json:"products,omitempty"`
}

// TableName Specify table name
func (Family) TableName() string {
	return "families"
}

// Product is a warehouse item. FamilyID must reference an existing family.
type Product struct {
	ID           int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string          `gorm:"size:150;index" json:"name"`
	Price        decimal.Decimal `gorm:"type:decimal(9,2)" json:"price" swaggertype:"string"`
	Discontinued bool            `gorm:"index" json:"discontinued"`
	OnboardDate  time.Time       `gorm:"type:date" json:"onboard_date"`
	FamilyID     int64           `gorm:"index;not null" json:"family_id"`
	PhotoURL     string          `gorm:"size:1024" json:"photo_url"` // relative URL of the uploaded photo
	Family       *Family         `json:"family,omitempty"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "products"
}

// Today returns the current date truncated to midnight, used for OnboardDate
func Today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
