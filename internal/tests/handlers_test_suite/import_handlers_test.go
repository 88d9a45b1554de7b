package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	api "stocktrack/internal/http"
	handler "stocktrack/internal/http/handlers"
)

func importCSV(r http.Handler, csvContent, query string) *httptest.ResponseRecorder {
	body, contentType := multipartCSV(csvContent, "products.csv")
	req := httptest.NewRequest(http.MethodPost, "/api/products/import"+query, body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestImportProductsHandler_Valid(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter()

	csvContent := `name,quantity,min_quantity,price,cost
Notebook,20,5,3.50,1.20
Backpack,8,2,45.00,20.00`

	w := importCSV(r, csvContent, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var result handler.ImportProductsResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if result.ImportedProductsCount != 2 {
		t.Errorf("expected 2 imported products, got %d", result.ImportedProductsCount)
	}
	if len(result.Errors) != 0 {
		t.Errorf("expected no errors, got %v", result.Errors)
	}

	if _, err := productRepo.GetByName("Notebook"); err != nil {
		t.Errorf("expected Notebook to exist after import: %v", err)
	}
}

func TestImportProductsHandler_InvalidRows(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter()

	csvContent := `name,quantity,min_quantity,price,cost
Notebook,20,5,3.50,1.20
X,5,1,10.00,4.00
Pen,-3,1,1.00,0.30
Ruler,10,1,0,0`

	w := importCSV(r, csvContent, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var result handler.ImportProductsResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if result.ImportedProductsCount != 1 {
		t.Errorf("expected 1 imported product, got %d", result.ImportedProductsCount)
	}
	if len(result.Errors) != 3 {
		t.Fatalf("expected 3 row errors, got %d: %v", len(result.Errors), result.Errors)
	}
	for _, e := range result.Errors {
		if !strings.Contains(e.Description, "row ") {
			t.Errorf("expected error to name the row, got %q", e.Description)
		}
	}
}

func TestImportProductsHandler_SkipMode(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter()

	createProduct(r, handler.ProductRequest{Name: "Notebook", Price: 5.0, Quantity: 3})

	csvContent := `name,quantity,min_quantity,price,cost
Notebook,20,5,3.50,1.20`

	w := importCSV(r, csvContent, "")
	var result handler.ImportProductsResult
	json.NewDecoder(w.Body).Decode(&result)

	if result.ImportedProductsCount != 0 {
		t.Errorf("expected 0 imported products in skip mode, got %d", result.ImportedProductsCount)
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0].Description, "already exists") {
		t.Errorf("expected duplicate error, got %v", result.Errors)
	}

	// The existing product is untouched.
	existing, err := productRepo.GetByName("Notebook")
	if err != nil {
		t.Fatalf("expected Notebook to exist: %v", err)
	}
	if existing.Price != 5.0 || existing.Quantity != 3 {
		t.Errorf("expected original product to be untouched, got %+v", existing)
	}
}

func TestImportProductsHandler_UpdateMode(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter()

	createProduct(r, handler.ProductRequest{Name: "Notebook", Price: 5.0, Quantity: 3})

	csvContent := `name,quantity,min_quantity,price,cost
Notebook,20,5,3.50,1.20`

	w := importCSV(r, csvContent, "?mode=update")
	var result handler.ImportProductsResult
	json.NewDecoder(w.Body).Decode(&result)

	if result.ImportedProductsCount != 1 {
		t.Fatalf("expected 1 updated product, got %d: %v", result.ImportedProductsCount, result.Errors)
	}

	updated, err := productRepo.GetByName("Notebook")
	if err != nil {
		t.Fatalf("expected Notebook to exist: %v", err)
	}
	if updated.Price != 3.50 {
		t.Errorf("expected price 3.50 after update, got %v", updated.Price)
	}
	if updated.Quantity != 20 {
		t.Errorf("expected quantity 20 after update, got %d", updated.Quantity)
	}
	if updated.MinQuantity != 5 {
		t.Errorf("expected min quantity 5 after update, got %d", updated.MinQuantity)
	}
}

func TestImportProductsHandler_MissingColumn(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter()

	csvContent := `name,price
Notebook,3.50`

	w := importCSV(r, csvContent, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 Bad Request for missing columns, got %d", w.Code)
	}
}

func TestImportProductsHandler_MissingFile(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/products/import", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 Bad Request, got %d", w.Code)
	}
}
