package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"stocktrack/internal/cache"
	"stocktrack/internal/models"
	"stocktrack/internal/repo"
)

// Per-report TTLs, matching how long each view may serve stale data.
const (
	activityReportTTL  = 2 * time.Minute
	salesReportTTL     = 3 * time.Minute
	inventoryReportTTL = 5 * time.Minute
)

const (
	topChartLimit = 10
	activityDays  = 7
)

// InventoryReportHandler godoc
// @Summary Inventory report: headline stats, stock distribution, top stock value
// @Tags reports
// @Produce json
// @Success 200 {object} InventoryReport
// @Failure 500 {string} string "Internal error"
// @Router /reports/inventory [get]
func InventoryReportHandler(w http.ResponseWriter, r *http.Request) {
	report, err := cache.Cached(r.Context(), reportCache, "reports:inventory", inventoryReportTTL, func() (InventoryReport, error) {
		stats, err := statsRepo.InventoryStats()
		if err != nil {
			return InventoryReport{}, err
		}
		distribution, err := statsRepo.StockDistribution()
		if err != nil {
			return InventoryReport{}, err
		}
		topValue, err := statsRepo.TopValue(topChartLimit)
		if err != nil {
			return InventoryReport{}, err
		}
		return InventoryReport{Stats: stats, Distribution: distribution, TopValue: topValue}, nil
	})
	if err != nil {
		logrus.Errorf("inventory report failed: %v", err)
		http.Error(w, "could not build inventory report", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// SalesReportHandler godoc
// @Summary Sales report: summary, top sellers, daily trend
// @Tags reports
// @Produce json
// @Success 200 {object} SalesReport
// @Failure 500 {string} string "Internal error"
// @Router /reports/sales [get]
func SalesReportHandler(w http.ResponseWriter, r *http.Request) {
	report, err := cache.Cached(r.Context(), reportCache, "reports:sales", salesReportTTL, func() (SalesReport, error) {
		summary, err := statsRepo.SalesSummary()
		if err != nil {
			return SalesReport{}, err
		}
		topSellers, err := statsRepo.TopSellers(topChartLimit)
		if err != nil {
			return SalesReport{}, err
		}
		trend, err := statsRepo.SalesTrend()
		if err != nil {
			return SalesReport{}, err
		}
		return SalesReport{Summary: summary, TopSellers: topSellers, Trend: trend}, nil
	})
	if err != nil {
		logrus.Errorf("sales report failed: %v", err)
		http.Error(w, "could not build sales report", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// ActivityReportHandler godoc
// @Summary Per-day transaction counts for the last 7 days
// @Tags reports
// @Produce json
// @Success 200 {array} repo.DailyActivity
// @Failure 500 {string} string "Internal error"
// @Router /reports/activity [get]
func ActivityReportHandler(w http.ResponseWriter, r *http.Request) {
	activity, err := cache.Cached(r.Context(), reportCache, "reports:activity", activityReportTTL, func() ([]repo.DailyActivity, error) {
		return statsRepo.Activity(activityDays)
	})
	if err != nil {
		logrus.Errorf("activity report failed: %v", err)
		http.Error(w, "could not build activity report", http.StatusInternalServerError)
		return
	}
	if activity == nil {
		activity = []repo.DailyActivity{}
	}
	writeJSON(w, http.StatusOK, activity)
}

// ClearReportCacheHandler godoc
// @Summary Drop all cached reports so the next read is fresh
// @Tags reports
// @Success 204 "Cache cleared"
// @Failure 500 {string} string "Internal error"
// @Router /reports/cache/clear [post]
// @Security BearerAuth
func ClearReportCacheHandler(w http.ResponseWriter, r *http.Request) {
	if err := reportCache.Clear(r.Context()); err != nil {
		logrus.Errorf("failed to clear report cache: %v", err)
		http.Error(w, "could not clear cache", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportReportHandler godoc
// @Summary Export a report as CSV
// @Tags reports
// @Produce text/csv
// @Param type query string true "Report type (inventory, sales, low-stock, history)"
// @Param since query string false "History only: filter from timestamp (RFC3339)"
// @Param until query string false "History only: filter until timestamp (RFC3339)"
// @Success 200 {file} file
// @Failure 400 {string} string "Invalid report type"
// @Failure 500 {string} string "Internal error"
// @Router /reports/export [get]
func ExportReportHandler(w http.ResponseWriter, r *http.Request) {
	reportType := r.URL.Query().Get("type")

	var (
		rows [][]string
		err  error
	)
	switch reportType {
	case "inventory":
		rows, err = inventoryReportRows()
	case "sales":
		rows, err = salesReportRows()
	case "low-stock":
		rows, err = lowStockReportRows()
	case "history":
		since, perr := parseTimeParam(r.URL.Query().Get("since"))
		if perr != nil {
			http.Error(w, "invalid since date format", http.StatusBadRequest)
			return
		}
		until, perr := parseTimeParam(r.URL.Query().Get("until"))
		if perr != nil {
			http.Error(w, "invalid until date format", http.StatusBadRequest)
			return
		}
		rows, err = historyReportRows(since, until)
	default:
		http.Error(w, "type must be one of inventory, sales, low-stock, history", http.StatusBadRequest)
		return
	}
	if err != nil {
		logrus.Errorf("report export %q failed: %v", reportType, err)
		http.Error(w, "could not export report", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("%s_report_%s.csv", reportType, time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))

	csvWriter := csv.NewWriter(w)
	for _, row := range rows {
		_ = csvWriter.Write(row)
	}
	csvWriter.Flush()
}

func inventoryReportRows() ([][]string, error) {
	products, err := productRepo.GetAll()
	if err != nil {
		return nil, err
	}
	rows := [][]string{{"name", "quantity", "min_quantity", "price", "total_value"}}
	for _, p := range products {
		rows = append(rows, []string{
			p.Name,
			strconv.Itoa(p.Quantity),
			strconv.Itoa(p.MinQuantity),
			formatFloat(p.Price),
			formatFloat(p.StockValue()),
		})
	}
	return rows, nil
}

func salesReportRows() ([][]string, error) {
	transactions, err := transactionRepo.GetAll()
	if err != nil {
		return nil, err
	}
	rows := [][]string{{"product", "quantity_sold", "created_at"}}
	for _, t := range transactions {
		if t.Type != models.TransactionSale {
			continue
		}
		sold := t.QuantityChange
		if sold < 0 {
			sold = -sold
		}
		rows = append(rows, []string{t.ProductName, strconv.Itoa(sold), t.CreatedAt})
	}
	return rows, nil
}

func lowStockReportRows() ([][]string, error) {
	products, err := productRepo.LowStock()
	if err != nil {
		return nil, err
	}
	rows := [][]string{{"name", "quantity", "min_quantity", "price"}}
	for _, p := range products {
		rows = append(rows, []string{
			p.Name,
			strconv.Itoa(p.Quantity),
			strconv.Itoa(p.MinQuantity),
			formatFloat(p.Price),
		})
	}
	return rows, nil
}

func historyReportRows(since, until *time.Time) ([][]string, error) {
	transactions, err := transactionRepo.GetAll()
	if err != nil {
		return nil, err
	}

	rows := [][]string{{"product", "type", "quantity_change", "created_at"}}
	for _, t := range transactions {
		if since != nil && t.CreatedAt < since.UTC().Format(time.RFC3339) {
			continue
		}
		if until != nil && t.CreatedAt > until.UTC().Format(time.RFC3339) {
			continue
		}
		rows = append(rows, []string{t.ProductName, t.Type, strconv.Itoa(t.QuantityChange), t.CreatedAt})
	}
	return rows, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
