package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"stocktrack/internal/auth"
	"stocktrack/internal/cache"
	api "stocktrack/internal/http"
	handler "stocktrack/internal/http/handlers"
	"stocktrack/internal/http/ratelimit"
	"stocktrack/internal/models"
	"stocktrack/internal/repo"
	"stocktrack/internal/web"
)

var (
	token           string
	productRepo     *repo.InMemoryProductRepository
	transactionRepo *repo.InMemoryTransactionRepository
)

func init() {
	auth.SetSecret("test-secret")
	ratelimit.SetRate(rate.Inf, 0)
	setupTestRepos("secret123")
	r := api.NewRouter()

	var err error
	token, err = generateToken(r, "admin", "secret123")
	if err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
}

func setupTestRepos(password string) {
	productRepo = repo.NewInMemoryProductRepository()
	handler.SetProductRepo(productRepo)

	transactionRepo = repo.NewInMemoryTransactionRepository()
	transactionRepo.SetProductRepository(productRepo)
	handler.SetTransactionRepo(transactionRepo)

	statsRepo := repo.NewInMemoryStatsRepository()
	statsRepo.SetRepositories(productRepo, transactionRepo)
	handler.SetStatsRepo(statsRepo)

	userRepo := repo.NewInMemoryUserRepository()
	handler.SetUserRepo(userRepo)

	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	userRepo.CreateUser(models.User{
		Username:     "admin",
		PasswordHash: string(hash),
		Role:         "admin",
	})

	web.SetRepos(productRepo, transactionRepo, statsRepo)
	web.SetCache(cache.NewMemoryCache())
}

func clearAllProducts() {
	productRepo.Clear()
}

func clearAllTransactions() {
	transactionRepo.Clear()
}

// resetReportCache swaps in a fresh cache so report tests start cold.
func resetReportCache() {
	handler.SetReportCache(cache.NewMemoryCache())
}

func generateToken(r http.Handler, username, password string) (string, error) {
	payload := handler.CredentialsRequest{Username: username, Password: password}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp handler.LoginResult
	err := json.NewDecoder(w.Body).Decode(&resp)
	if err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Token, nil
}

func createProduct(r http.Handler, p handler.ProductRequest) *httptest.ResponseRecorder {
	body, _ := json.Marshal(p)
	req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func recordTransaction(r http.Handler, productID int, tr handler.TransactionRequest) *httptest.ResponseRecorder {
	body, _ := json.Marshal(tr)
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/products/%d/transactions", productID), bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func multipartCSV(csvContent string, filename string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, _ := writer.CreateFormFile("file", filename)
	part.Write([]byte(csvContent))

	writer.Close()
	return &buf, writer.FormDataContentType()
}

func addTransaction(t models.Transaction) {
	transactionRepo.AddTransaction(t)
}

func containsLine(s, line string) bool {
	for _, l := range strings.Split(s, "\n") {
		if strings.TrimSpace(l) == line {
			return true
		}
	}
	return false
}
