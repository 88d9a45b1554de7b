package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"stocktrack/internal/models"
)

// writeJSON takes a response status code and arbitrary data and writes a json response to the client
func writeJSON(w http.ResponseWriter, status int, data any) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("failed to write to response: %w", err)
	}
	return nil
}

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		Id:          p.ID,
		Name:        p.Name,
		Quantity:    p.Quantity,
		MinQuantity: p.MinQuantity,
		Price:       p.Price,
		Cost:        p.Cost,
		StockValue:  p.StockValue(),
		LowStock:    p.LowStock(),
	}
}

func toTransactionResponse(t models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:             t.ID,
		ProductID:      t.ProductID,
		ProductName:    t.ProductName,
		Type:           t.Type,
		QuantityChange: t.QuantityChange,
		CreatedAt:      t.CreatedAt,
	}
}

// parseTimeParam reads an RFC 3339 query parameter. URL decoding turns the
// + of a timezone offset into a space; put it back before parsing.
func parseTimeParam(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if len(value) == len(time.RFC3339) && value[len(value)-6] == ' ' {
		value = value[:len(value)-6] + "+" + value[len(value)-5:]
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

func parseIntParam(value string) (*int, error) {
	if value == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(value)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
