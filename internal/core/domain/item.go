package domain

import "github.com/shopspring/decimal"

// Prices must fit the DECIMAL(18,2) column exactly.
const PriceScale = 2

var maxPrice = decimal.New(1, 18-PriceScale)

type Item struct {
	ID          int64           `gorm:"primaryKey"`
	Name        string          `gorm:"size:100;not null"`
	Description *string         `gorm:"size:500"`
	Price       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CategoryID  int64           `gorm:"not null;index"` // owning category
}

func (i Item) Validate() error {
	if err := validateName(i.Name); err != nil {
		return err
	}
	if err := validateDescription(i.Description); err != nil {
		return err
	}
	if i.Price.IsNegative() {
		return &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	if !i.Price.Equal(i.Price.Truncate(PriceScale)) {
		return &ValidationError{Field: "price", Reason: "has more than 2 decimal places"}
	}
	if i.Price.GreaterThanOrEqual(maxPrice) {
		return &ValidationError{Field: "price", Reason: "is too large"}
	}
	if i.CategoryID <= 0 {
		return &ValidationError{Field: "categoryId", Reason: "is required"}
	}
	return nil
}
