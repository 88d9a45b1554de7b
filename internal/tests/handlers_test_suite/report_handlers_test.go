package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	api "stocktrack/internal/http"
	handler "stocktrack/internal/http/handlers"
)

func seedInventory(t *testing.T, r http.Handler) (cheap, pricey handler.ProductResponse) {
	t.Helper()

	w := createProduct(r, handler.ProductRequest{Name: "Pencil", Price: 2.0, Quantity: 100, MinQuantity: 10, Cost: 0.5})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}
	json.NewDecoder(w.Body).Decode(&cheap)

	w = createProduct(r, handler.ProductRequest{Name: "Printer", Price: 250.0, Quantity: 4, MinQuantity: 5, Cost: 150.0})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}
	json.NewDecoder(w.Body).Decode(&pricey)
	return cheap, pricey
}

func getInventoryReport(t *testing.T, r http.Handler) handler.InventoryReport {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/reports/inventory", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	var report handler.InventoryReport
	if err := json.NewDecoder(w.Body).Decode(&report); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	return report
}

func TestInventoryReportHandler(t *testing.T) {
	t.Cleanup(clearAllProducts)
	t.Cleanup(clearAllTransactions)
	t.Cleanup(resetReportCache)
	resetReportCache()
	r := api.NewRouter()

	seedInventory(t, r)

	report := getInventoryReport(t, r)

	if report.Stats.TotalProducts != 2 {
		t.Errorf("expected 2 products, got %d", report.Stats.TotalProducts)
	}
	if report.Stats.TotalItems != 104 {
		t.Errorf("expected 104 items, got %d", report.Stats.TotalItems)
	}
	// 100*2.00 + 4*250.00
	if report.Stats.TotalValue != 1200.0 {
		t.Errorf("expected total value 1200.0, got %v", report.Stats.TotalValue)
	}
	if report.Stats.LowStockCount != 1 {
		t.Errorf("expected 1 low-stock product, got %d", report.Stats.LowStockCount)
	}

	if report.Distribution.Low != 1 || report.Distribution.High != 1 {
		t.Errorf("unexpected distribution %+v", report.Distribution)
	}

	if len(report.TopValue) != 2 {
		t.Fatalf("expected 2 top-value entries, got %d", len(report.TopValue))
	}
	if report.TopValue[0].Name != "Printer" {
		t.Errorf("expected Printer to lead by value, got %q", report.TopValue[0].Name)
	}
}

func TestInventoryReportHandler_ServesCachedData(t *testing.T) {
	t.Cleanup(clearAllProducts)
	t.Cleanup(clearAllTransactions)
	t.Cleanup(resetReportCache)
	resetReportCache()
	r := api.NewRouter()

	seedInventory(t, r)

	first := getInventoryReport(t, r)
	if first.Stats.TotalProducts != 2 {
		t.Fatalf("expected 2 products, got %d", first.Stats.TotalProducts)
	}

	// Within the TTL the report does not see new products.
	createProduct(r, handler.ProductRequest{Name: "Stapler", Price: 12.0, Quantity: 7})

	second := getInventoryReport(t, r)
	if second.Stats.TotalProducts != 2 {
		t.Errorf("expected stale report with 2 products, got %d", second.Stats.TotalProducts)
	}
}

func TestClearReportCacheHandler(t *testing.T) {
	t.Cleanup(clearAllProducts)
	t.Cleanup(clearAllTransactions)
	t.Cleanup(resetReportCache)
	resetReportCache()
	r := api.NewRouter()

	seedInventory(t, r)
	getInventoryReport(t, r)

	createProduct(r, handler.ProductRequest{Name: "Stapler", Price: 12.0, Quantity: 7})

	req := httptest.NewRequest(http.MethodPost, "/api/reports/cache/clear", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 No Content, got %d", w.Code)
	}

	fresh := getInventoryReport(t, r)
	if fresh.Stats.TotalProducts != 3 {
		t.Errorf("expected fresh report with 3 products, got %d", fresh.Stats.TotalProducts)
	}
}

func TestClearReportCacheHandler_RequiresToken(t *testing.T) {
	r := api.NewRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/reports/cache/clear", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 Unauthorized, got %d", w.Code)
	}
}

func TestSalesReportHandler(t *testing.T) {
	t.Cleanup(clearAllProducts)
	t.Cleanup(clearAllTransactions)
	t.Cleanup(resetReportCache)
	resetReportCache()
	r := api.NewRouter()

	cheap, pricey := seedInventory(t, r)

	recordTransaction(r, cheap.Id, handler.TransactionRequest{Type: "SALE", Quantity: 10})
	recordTransaction(r, cheap.Id, handler.TransactionRequest{Type: "SALE", Quantity: 5})
	recordTransaction(r, pricey.Id, handler.TransactionRequest{Type: "SALE", Quantity: 1})
	// Restocks never count as sales.
	recordTransaction(r, cheap.Id, handler.TransactionRequest{Type: "RESTOCK", Quantity: 50})

	req := httptest.NewRequest(http.MethodGet, "/api/reports/sales", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var report handler.SalesReport
	if err := json.NewDecoder(w.Body).Decode(&report); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	if report.Summary.TotalSales != 3 {
		t.Errorf("expected 3 sales, got %d", report.Summary.TotalSales)
	}
	if report.Summary.ItemsSold != 16 {
		t.Errorf("expected 16 items sold, got %d", report.Summary.ItemsSold)
	}
	if report.Summary.ProductsSold != 2 {
		t.Errorf("expected 2 distinct products sold, got %d", report.Summary.ProductsSold)
	}
	// 15*2.00 + 1*250.00 at current prices
	if report.Summary.EstimatedRevenue != 280.0 {
		t.Errorf("expected estimated revenue 280.0, got %v", report.Summary.EstimatedRevenue)
	}

	if len(report.TopSellers) != 2 {
		t.Fatalf("expected 2 top sellers, got %d", len(report.TopSellers))
	}
	if report.TopSellers[0].Name != "Pencil" || report.TopSellers[0].Units != 15 {
		t.Errorf("unexpected top seller %+v", report.TopSellers[0])
	}

	if len(report.Trend) == 0 {
		t.Error("expected at least one trend point")
	}
}

func TestActivityReportHandler(t *testing.T) {
	t.Cleanup(clearAllProducts)
	t.Cleanup(clearAllTransactions)
	t.Cleanup(resetReportCache)
	resetReportCache()
	r := api.NewRouter()

	cheap, _ := seedInventory(t, r)
	recordTransaction(r, cheap.Id, handler.TransactionRequest{Type: "SALE", Quantity: 2})
	recordTransaction(r, cheap.Id, handler.TransactionRequest{Type: "RESTOCK", Quantity: 4})

	req := httptest.NewRequest(http.MethodGet, "/api/reports/activity", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var activity []struct {
		Day   string `json:"day"`
		Type  string `json:"type"`
		Count int    `json:"count"`
	}
	if err := json.NewDecoder(w.Body).Decode(&activity); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if len(activity) != 2 {
		t.Fatalf("expected 2 activity rows, got %d", len(activity))
	}
	types := map[string]int{}
	for _, a := range activity {
		types[a.Type] = a.Count
	}
	if types["SALE"] != 1 || types["RESTOCK"] != 1 {
		t.Errorf("unexpected activity counts %v", types)
	}
}

func TestExportReportHandler_Inventory(t *testing.T) {
	t.Cleanup(clearAllProducts)
	t.Cleanup(clearAllTransactions)
	t.Cleanup(resetReportCache)
	resetReportCache()
	r := api.NewRouter()

	seedInventory(t, r)

	req := httptest.NewRequest(http.MethodGet, "/api/reports/export?type=inventory", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("expected text/csv content type, got %q", ct)
	}
	body := w.Body.String()
	if !containsLine(body, "name,quantity,min_quantity,price,total_value") {
		t.Errorf("expected CSV header, got %q", body)
	}
	if !containsLine(body, "Pencil,100,10,2.00,200.00") {
		t.Errorf("expected Pencil row, got %q", body)
	}
}

func TestExportReportHandler_LowStock(t *testing.T) {
	t.Cleanup(clearAllProducts)
	t.Cleanup(clearAllTransactions)
	t.Cleanup(resetReportCache)
	resetReportCache()
	r := api.NewRouter()

	seedInventory(t, r)

	req := httptest.NewRequest(http.MethodGet, "/api/reports/export?type=low-stock", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	body := w.Body.String()
	if !containsLine(body, "Printer,4,5,250.00") {
		t.Errorf("expected Printer in low-stock export, got %q", body)
	}
}

func TestExportReportHandler_InvalidType(t *testing.T) {
	r := api.NewRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/reports/export?type=everything", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 Bad Request, got %d", w.Code)
	}
}
