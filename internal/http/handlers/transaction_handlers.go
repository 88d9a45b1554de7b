package handlers

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"stocktrack/internal/models"
	"stocktrack/internal/repo"
)

// RecordTransactionHandler godoc
// @Summary Record a sale or restock against a product
// @Description A SALE decrements the stock level, a RESTOCK increments it. Sales that would drive the quantity negative are rejected.
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param transaction body TransactionRequest true "Transaction to record"
// @Success 201 {object} RecordTransactionResult
// @Failure 400 {array} ProductValidationError
// @Failure 404 {string} string "Not found"
// @Failure 409 {string} string "Insufficient stock"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id}/transactions [post]
// @Security BearerAuth
func RecordTransactionHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	var req TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateTransaction(req)
	if len(validationErrors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	if _, err := productRepo.GetByID(id); err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch product", http.StatusInternalServerError)
		return
	}

	delta := req.Quantity
	if req.Type == models.TransactionSale {
		delta = -req.Quantity
	}

	product, err := productRepo.AdjustQuantity(id, delta)
	if err != nil {
		if errors.Is(err, repo.ErrInsufficientStock) {
			http.Error(w, "insufficient stock", http.StatusConflict)
			return
		}
		http.Error(w, "could not update stock", http.StatusInternalServerError)
		return
	}

	transaction, err := transactionRepo.Record(models.Transaction{
		ProductID:      id,
		Type:           req.Type,
		QuantityChange: delta,
	})
	if err != nil {
		logrus.Errorf("stock adjusted but transaction not recorded for product %d: %v", id, err)
		http.Error(w, "could not record transaction", http.StatusInternalServerError)
		return
	}

	if product.LowStock() {
		logrus.Warnf("product %d (%s) is at or below minimum level: qty=%d min=%d",
			product.ID, product.Name, product.Quantity, product.MinQuantity)
	}

	writeJSON(w, http.StatusCreated, RecordTransactionResult{
		Transaction: toTransactionResponse(transaction),
		Product:     toProductResponse(product),
	})
}

// GetTransactionsHandler godoc
// @Summary Get a product's transaction history
// @Tags transactions
// @Produce json
// @Param id path int true "Product ID"
// @Param since query string false "Filter transactions from this timestamp (RFC3339)"
// @Param until query string false "Filter transactions until this timestamp (RFC3339)"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {object} TransactionsSearchResult
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "Product not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id}/transactions [get]
func GetTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	if _, err := productRepo.GetByID(id); err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch product", http.StatusInternalServerError)
		return
	}

	filter, errMsg := transactionFilterFromQuery(r)
	if errMsg != "" {
		http.Error(w, errMsg, http.StatusBadRequest)
		return
	}

	transactions, total, err := transactionRepo.GetByProductID(id, filter)
	if err != nil {
		logrus.Errorf("could not retrieve transactions for product %d: %v", id, err)
		http.Error(w, "could not retrieve transactions", http.StatusInternalServerError)
		return
	}

	response := TransactionsSearchResult{
		Data: make([]TransactionResponse, len(transactions)),
		Meta: Meta{TotalCount: total},
	}
	for i, t := range transactions {
		response.Data[i] = toTransactionResponse(t)
	}
	writeJSON(w, http.StatusOK, response)
}

func transactionFilterFromQuery(r *http.Request) (repo.TransactionFilter, string) {
	q := r.URL.Query()

	since, err := parseTimeParam(q.Get("since"))
	if err != nil {
		return repo.TransactionFilter{}, "invalid since date format"
	}
	until, err := parseTimeParam(q.Get("until"))
	if err != nil {
		return repo.TransactionFilter{}, "invalid until date format"
	}

	limit, err := parseIntParam(q.Get("limit"))
	if err != nil {
		return repo.TransactionFilter{}, "invalid limit format"
	}
	if limit != nil && *limit <= 0 {
		return repo.TransactionFilter{}, "limit must be greater than zero"
	}

	offset, err := parseIntParam(q.Get("offset"))
	if err != nil {
		return repo.TransactionFilter{}, "invalid offset format"
	}
	if offset != nil && *offset < 0 {
		return repo.TransactionFilter{}, "offset must be zero or positive"
	}

	return repo.TransactionFilter{Since: since, Until: until, Offset: offset, Limit: limit}, ""
}

// GetAllTransactionsHandler godoc
// @Summary List all transactions with product names
// @Tags transactions
// @Produce json
// @Success 200 {array} TransactionResponse
// @Failure 500 {string} string "Internal error"
// @Router /transactions [get]
func GetAllTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	transactions, err := transactionRepo.GetAll()
	if err != nil {
		http.Error(w, "could not retrieve transactions", http.StatusInternalServerError)
		return
	}
	response := make([]TransactionResponse, len(transactions))
	for i, t := range transactions {
		response[i] = toTransactionResponse(t)
	}
	writeJSON(w, http.StatusOK, response)
}

// ExportTransactionsHandler godoc
// @Summary Export a product's transaction history
// @Tags transactions
// @Produce text/csv, application/json
// @Param id path int true "Product ID"
// @Param format query string true "Export format (csv or json)"
// @Param since query string false "Filter from timestamp (RFC3339)"
// @Param until query string false "Filter until timestamp (RFC3339)"
// @Success 200 {file} file
// @Failure 400 {string} string "Invalid input"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id}/transactions/export [get]
func ExportTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	format := r.URL.Query().Get("format")
	if format != "csv" && format != "json" {
		http.Error(w, "format must be 'csv' or 'json'", http.StatusBadRequest)
		return
	}

	filter, errMsg := transactionFilterFromQuery(r)
	if errMsg != "" {
		http.Error(w, errMsg, http.StatusBadRequest)
		return
	}

	transactions, _, err := transactionRepo.GetByProductID(id, filter)
	if err != nil {
		http.Error(w, "could not retrieve transactions", http.StatusInternalServerError)
		return
	}

	switch format {
	case "json":
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="transactions.json"`)
		json.NewEncoder(w).Encode(transactions)

	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)

		csvWriter := csv.NewWriter(w)
		_ = csvWriter.Write([]string{"id", "product_id", "type", "quantity_change", "created_at"})
		for _, t := range transactions {
			_ = csvWriter.Write([]string{
				strconv.Itoa(t.ID),
				strconv.Itoa(t.ProductID),
				t.Type,
				strconv.Itoa(t.QuantityChange),
				t.CreatedAt,
			})
		}
		csvWriter.Flush()
	}
}
