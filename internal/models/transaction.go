package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Transaction is a single income or expense record. Amount is an
// exact decimal(12,2), never a float. The default read ordering is
// date DESC, id DESC (most recent first, stable tie-break).
type Transaction struct {
	ID         uint            `gorm:"primaryKey"`
	UserID     uint            `gorm:"index;not null"`
	Type       string          `gorm:"size:7;index;not null"` // income / expense
	CategoryID *uint           `gorm:"index"`
	Amount     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Date       time.Time       `gorm:"type:date;index;not null"`
	Notes      string          `gorm:"type:text"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	User     User      `gorm:"constraint:OnDelete:CASCADE"`
	Category *Category `gorm:"constraint:OnDelete:SET NULL"`
}

// DefaultOrder is the canonical listing order for transactions. The
// columns are qualified so the order survives the category join in
// filtered listings.
const DefaultOrder = "transactions.date DESC, transactions.id DESC"
