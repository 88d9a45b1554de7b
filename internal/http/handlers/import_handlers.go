package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"stocktrack/internal/models"
	"stocktrack/internal/repo"
)

type csvRow struct {
	Name        string
	Quantity    int
	MinQuantity int
	Price       float64
	Cost        float64
}

func parseCSV(file multipart.File) ([]csvRow, error) {
	reader := csv.NewReader(file)
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV header")
	}

	index := map[string]int{}
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"name", "quantity", "min_quantity", "price"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("missing CSV column %q", required)
		}
	}

	var rows []csvRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error: %v", err)
		}

		row := csvRow{
			Name:        record[index["name"]],
			Quantity:    parseInt(record[index["quantity"]]),
			MinQuantity: parseInt(record[index["min_quantity"]]),
			Price:       parseFloat(record[index["price"]]),
		}
		if col, ok := index["cost"]; ok && col < len(record) {
			row.Cost = parseFloat(record[col])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func validateRow(r csvRow) error {
	if len(strings.TrimSpace(r.Name)) < 2 {
		return errors.New("invalid name")
	}
	if r.Price <= 0 {
		return errors.New("invalid price")
	}
	if r.Quantity < 0 {
		return errors.New("invalid quantity")
	}
	if r.MinQuantity < 0 {
		return errors.New("invalid min_quantity")
	}
	if r.Cost < 0 {
		return errors.New("invalid cost")
	}
	return nil
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v
}

func parseInt(s string) int {
	v, _ := strconv.Atoi(strings.TrimSpace(s))
	return v
}

// ImportProductsHandler godoc
// @Summary Import products via CSV
// @Description Expects columns name, quantity, min_quantity, price and optionally cost. Existing products are skipped unless mode=update.
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Param mode query string false "Import mode (skip|update)"
// @Success 200 {object} ImportProductsResult
// @Failure 400 {string} string "Invalid file"
// @Failure 500 {string} string "Internal error"
// @Router /products/import [post]
// @Security BearerAuth
func ImportProductsHandler(w http.ResponseWriter, r *http.Request) {
	mode := strings.ToLower(r.URL.Query().Get("mode"))
	if mode != "update" {
		mode = "skip" // default
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	records, err := parseCSV(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var imported int
	var errorsList []ProductValidationError

	for i, rec := range records {
		rowNum := i + 2 // header is row 1

		if err := validateRow(rec); err != nil {
			errorsList = append(errorsList, ProductValidationError{Description: fmt.Sprintf("row %d: %v", rowNum, err)})
			continue
		}

		existing, err := productRepo.GetByName(rec.Name)
		if err != nil && !errors.Is(err, repo.ErrProductNotFound) {
			errorsList = append(errorsList, ProductValidationError{Description: fmt.Sprintf("row %d: lookup failed for '%s'", rowNum, rec.Name)})
			continue
		}

		if err == nil {
			if mode == "skip" {
				errorsList = append(errorsList, ProductValidationError{Description: fmt.Sprintf("row %d: product '%s' already exists", rowNum, rec.Name)})
				continue
			}
			existing.MinQuantity = rec.MinQuantity
			existing.Price = rec.Price
			existing.Cost = rec.Cost
			if _, err := productRepo.Update(existing); err != nil {
				errorsList = append(errorsList, ProductValidationError{Description: fmt.Sprintf("row %d: failed to update '%s'", rowNum, rec.Name)})
				continue
			}
			if delta := rec.Quantity - existing.Quantity; delta != 0 {
				if _, err := productRepo.AdjustQuantity(existing.ID, delta); err != nil {
					errorsList = append(errorsList, ProductValidationError{Description: fmt.Sprintf("row %d: failed to set stock for '%s'", rowNum, rec.Name)})
					continue
				}
			}
			imported++
			continue
		}

		newProduct := models.Product{
			Name:        rec.Name,
			Quantity:    rec.Quantity,
			MinQuantity: rec.MinQuantity,
			Price:       rec.Price,
			Cost:        rec.Cost,
		}
		if _, err := productRepo.Create(newProduct); err != nil {
			errorsList = append(errorsList, ProductValidationError{Description: fmt.Sprintf("row %d: %v", rowNum, err)})
			continue
		}
		imported++
	}

	logrus.Infof("CSV import finished: %d imported, %d rejected", imported, len(errorsList))

	if err := writeJSON(w, http.StatusOK, ImportProductsResult{
		ImportedProductsCount: imported,
		Errors:                errorsList,
	}); err != nil {
		http.Error(w, "", http.StatusInternalServerError)
	}
}
