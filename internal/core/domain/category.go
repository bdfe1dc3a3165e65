package domain

import (
	"strings"
	"unicode/utf8"
)

const (
	MaxNameLength        = 100
	MaxDescriptionLength = 500
)

// Category groups items. Deleting a category deletes the items it owns.
type Category struct {
	ID          int64   `gorm:"primaryKey"`
	Name        string  `gorm:"size:100;not null"`
	Description *string `gorm:"size:500"`
	Items       []Item  `gorm:"constraint:OnDelete:CASCADE;"`
}

func (c Category) Validate() error {
	if err := validateName(c.Name); err != nil {
		return err
	}
	return validateDescription(c.Description)
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return &ValidationError{Field: "name", Reason: "is too long"}
	}
	return nil
}

func validateDescription(description *string) error {
	if description != nil && utf8.RuneCountInString(*description) > MaxDescriptionLength {
		return &ValidationError{Field: "description", Reason: "is too long"}
	}
	return nil
}
