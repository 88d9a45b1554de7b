package handlers

import (
	"strings"

	"stocktrack/internal/models"
)

type ProductValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func validateProduct(p ProductRequest) []ProductValidationError {
	errs := []ProductValidationError{}
	if len(strings.TrimSpace(p.Name)) < 2 {
		errs = append(errs, ProductValidationError{Field: "Name", Description: "Name must be at least 2 characters"})
	}
	if p.Price <= 0 {
		errs = append(errs, ProductValidationError{Field: "Price", Description: "Price must be greater than zero"})
	}
	if p.Quantity < 0 {
		errs = append(errs, ProductValidationError{Field: "Quantity", Description: "Quantity cannot be negative"})
	}
	if p.MinQuantity < 0 {
		errs = append(errs, ProductValidationError{Field: "MinQuantity", Description: "Minimum quantity cannot be negative"})
	}
	if p.Cost < 0 {
		errs = append(errs, ProductValidationError{Field: "Cost", Description: "Cost cannot be negative"})
	}
	return errs
}

func validateTransaction(t TransactionRequest) []ProductValidationError {
	errs := []ProductValidationError{}
	if t.Type != models.TransactionSale && t.Type != models.TransactionRestock {
		errs = append(errs, ProductValidationError{Field: "Type", Description: "Type must be SALE or RESTOCK"})
	}
	if t.Quantity <= 0 {
		errs = append(errs, ProductValidationError{Field: "Quantity", Description: "Quantity must be greater than zero"})
	}
	return errs
}
