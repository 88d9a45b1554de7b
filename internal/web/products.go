package web

import (
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"stocktrack/internal/models"
	"stocktrack/internal/repo"
)

var productsTemplate = template.Must(template.New("products").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>StockTrack Products</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.4em 0.8em; }
tr.low td { background: #fdd; }
form.inline { display: inline; }
p.message { color: #a00; }
</style>
</head>
<body>
<h1>Products</h1>
<p><a href="/">Dashboard</a></p>
{{if .Message}}<p class="message">{{.Message}}</p>{{end}}
<form method="get" action="/products">
  <input type="text" name="q" value="{{.Query}}" placeholder="Search by name">
  <button type="submit">Search</button>
</form>
<table>
<tr><th>ID</th><th>Name</th><th>Quantity</th><th>Minimum</th><th>Price</th><th>Cost</th><th>Stock value</th></tr>
{{range .Products}}
<tr{{if .LowStock}} class="low"{{end}}>
  <td>{{.ID}}</td>
  <td>{{.Name}}</td>
  <td>{{.Quantity}}</td>
  <td>{{.MinQuantity}}</td>
  <td>{{printf "%.2f" .Price}}</td>
  <td>{{printf "%.2f" .Cost}}</td>
  <td>{{printf "%.2f" .StockValue}}</td>
</tr>
{{end}}
</table>

<h2>Add product</h2>
<form method="post" action="/products/add">
  <input type="text" name="name" placeholder="Name" required>
  <input type="number" name="quantity" placeholder="Quantity" min="0" required>
  <input type="number" name="min_quantity" placeholder="Minimum" min="0" required>
  <input type="number" name="price" placeholder="Price" step="0.01" min="0.01" required>
  <input type="number" name="cost" placeholder="Cost" step="0.01" min="0">
  <button type="submit">Add</button>
</form>

<h2>Record stock movement</h2>
<form method="post" action="/products/stock">
  <select name="product_id">
  {{range .Products}}<option value="{{.ID}}">{{.Name}}</option>{{end}}
  </select>
  <select name="type">
    <option value="SALE">Sale</option>
    <option value="RESTOCK">Restock</option>
  </select>
  <input type="number" name="quantity" placeholder="Quantity" min="1" required>
  <button type="submit">Record</button>
</form>
</body>
</html>
`))

type productRow struct {
	ID          int
	Name        string
	Quantity    int
	MinQuantity int
	Price       float64
	Cost        float64
	StockValue  float64
	LowStock    bool
}

type productsPage struct {
	Products []productRow
	Query    string
	Message  string
}

// ProductsPageHandler renders the product table with the add and record
// forms. An optional q parameter filters by name.
func ProductsPageHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	var (
		products []models.Product
		err      error
	)
	if query != "" {
		products, err = productRepo.Search(query)
	} else {
		products, err = productRepo.GetAll()
	}
	if err != nil {
		logrus.Errorf("failed to load products page: %v", err)
		http.Error(w, "could not load products", http.StatusInternalServerError)
		return
	}

	page := productsPage{
		Query:   query,
		Message: r.URL.Query().Get("msg"),
	}
	for _, p := range products {
		page.Products = append(page.Products, productRow{
			ID:          p.ID,
			Name:        p.Name,
			Quantity:    p.Quantity,
			MinQuantity: p.MinQuantity,
			Price:       p.Price,
			Cost:        p.Cost,
			StockValue:  p.StockValue(),
			LowStock:    p.LowStock(),
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := productsTemplate.Execute(w, page); err != nil {
		logrus.Errorf("failed to render products page: %v", err)
	}
}

func redirectWithMessage(w http.ResponseWriter, r *http.Request, msg string) {
	target := "/products"
	if msg != "" {
		target += "?msg=" + url.QueryEscape(msg)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// AddProductFormHandler handles the add-product form post and redirects back
// to the products page.
func AddProductFormHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWithMessage(w, r, "invalid form")
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	quantity, _ := strconv.Atoi(r.FormValue("quantity"))
	minQuantity, _ := strconv.Atoi(r.FormValue("min_quantity"))
	price, _ := strconv.ParseFloat(r.FormValue("price"), 64)
	cost, _ := strconv.ParseFloat(r.FormValue("cost"), 64)

	if len(name) < 2 || price <= 0 || quantity < 0 || minQuantity < 0 || cost < 0 {
		redirectWithMessage(w, r, "invalid product")
		return
	}

	if _, err := productRepo.Create(models.Product{
		Name:        name,
		Quantity:    quantity,
		MinQuantity: minQuantity,
		Price:       price,
		Cost:        cost,
	}); err != nil {
		logrus.Errorf("failed to create product from form: %v", err)
		redirectWithMessage(w, r, "could not add product")
		return
	}
	redirectWithMessage(w, r, "")
}

// RecordStockFormHandler handles the record-stock form post. Sales decrement
// the quantity and are rejected if stock would go negative.
func RecordStockFormHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWithMessage(w, r, "invalid form")
		return
	}

	productID, err := strconv.Atoi(r.FormValue("product_id"))
	if err != nil {
		redirectWithMessage(w, r, "invalid product")
		return
	}
	movementType := r.FormValue("type")
	quantity, _ := strconv.Atoi(r.FormValue("quantity"))

	if quantity <= 0 || (movementType != models.TransactionSale && movementType != models.TransactionRestock) {
		redirectWithMessage(w, r, "invalid movement")
		return
	}

	delta := quantity
	if movementType == models.TransactionSale {
		delta = -quantity
	}

	product, err := productRepo.AdjustQuantity(productID, delta)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrInsufficientStock):
			redirectWithMessage(w, r, "insufficient stock")
		case errors.Is(err, repo.ErrProductNotFound):
			redirectWithMessage(w, r, "product not found")
		default:
			logrus.Errorf("failed to adjust stock from form: %v", err)
			redirectWithMessage(w, r, "could not record movement")
		}
		return
	}

	if _, err := transactionRepo.Record(models.Transaction{
		ProductID:      productID,
		Type:           movementType,
		QuantityChange: delta,
	}); err != nil {
		logrus.Errorf("stock adjusted but movement not recorded for product %d: %v", productID, err)
	}

	if product.LowStock() {
		logrus.Warnf("product %d (%s) is at or below minimum level: qty=%d min=%d",
			product.ID, product.Name, product.Quantity, product.MinQuantity)
	}
	redirectWithMessage(w, r, "")
}
