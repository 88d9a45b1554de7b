package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/sirupsen/logrus"

	"stocktrack/internal/cache"
	"stocktrack/internal/models"
	"stocktrack/internal/repo"
)

const (
	dashboardTTL  = 2 * time.Minute
	dashboardTopN = 10
)

type dashboardData struct {
	Stats        repo.InventoryStats    `json:"stats"`
	Summary      repo.SalesSummary      `json:"summary"`
	Products     []models.Product       `json:"products"`
	Distribution repo.StockDistribution `json:"distribution"`
	TopSellers   []repo.ProductUnits    `json:"top_sellers"`
	Trend        []repo.DailyUnits      `json:"trend"`
	TopValue     []repo.ProductValue    `json:"top_value"`
}

func loadDashboardData() (dashboardData, error) {
	var d dashboardData
	var err error
	if d.Stats, err = statsRepo.InventoryStats(); err != nil {
		return d, err
	}
	if d.Summary, err = statsRepo.SalesSummary(); err != nil {
		return d, err
	}
	if d.Products, err = productRepo.GetAll(); err != nil {
		return d, err
	}
	if d.Distribution, err = statsRepo.StockDistribution(); err != nil {
		return d, err
	}
	if d.TopSellers, err = statsRepo.TopSellers(dashboardTopN); err != nil {
		return d, err
	}
	if d.Trend, err = statsRepo.SalesTrend(); err != nil {
		return d, err
	}
	if d.TopValue, err = statsRepo.TopValue(dashboardTopN); err != nil {
		return d, err
	}
	return d, nil
}

// DashboardHandler renders the overview page: headline stats plus stock
// level, stock distribution, top seller and sales trend charts.
func DashboardHandler(w http.ResponseWriter, r *http.Request) {
	data, err := cache.Cached(r.Context(), chartCache, "web:dashboard", dashboardTTL, loadDashboardData)
	if err != nil {
		logrus.Errorf("failed to load dashboard data: %v", err)
		http.Error(w, "could not load dashboard", http.StatusInternalServerError)
		return
	}

	page := components.NewPage()
	page.PageTitle = "StockTrack Dashboard"
	page.AddCharts(
		stockLevelsChart(data),
		distributionChart(data.Distribution),
		topSellersChart(data),
		salesTrendChart(data.Trend),
	)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Render(w); err != nil {
		logrus.Errorf("failed to render dashboard: %v", err)
	}
}

func stockLevelsChart(data dashboardData) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "Stock Levels",
			Subtitle: fmt.Sprintf("%d products, %d items, total value %.2f, %d low on stock",
				data.Stats.TotalProducts, data.Stats.TotalItems, data.Stats.TotalValue, data.Stats.LowStockCount),
		}),
	)

	names := make([]string, len(data.Products))
	quantities := make([]opts.BarData, len(data.Products))
	minimums := make([]opts.BarData, len(data.Products))
	for i, p := range data.Products {
		names[i] = p.Name
		quantities[i] = opts.BarData{Value: p.Quantity}
		minimums[i] = opts.BarData{Value: p.MinQuantity}
	}
	bar.SetXAxis(names).
		AddSeries("quantity", quantities).
		AddSeries("minimum", minimums)
	return bar
}

func distributionChart(d repo.StockDistribution) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Stock Distribution"}),
	)
	pie.AddSeries("products", []opts.PieData{
		{Name: "Out of stock", Value: d.OutOfStock},
		{Name: "Low", Value: d.Low},
		{Name: "Normal", Value: d.Normal},
		{Name: "High", Value: d.High},
	})
	return pie
}

func topSellersChart(data dashboardData) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "Top Sellers",
			Subtitle: fmt.Sprintf("%d sales, %d items sold, estimated revenue %.2f",
				data.Summary.TotalSales, data.Summary.ItemsSold, data.Summary.EstimatedRevenue),
		}),
	)

	names := make([]string, len(data.TopSellers))
	units := make([]opts.BarData, len(data.TopSellers))
	for i, s := range data.TopSellers {
		names[i] = s.Name
		units[i] = opts.BarData{Value: s.Units}
	}
	bar.SetXAxis(names).AddSeries("units sold", units)
	return bar
}

func salesTrendChart(trend []repo.DailyUnits) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Daily Sales"}),
	)

	days := make([]string, len(trend))
	units := make([]opts.LineData, len(trend))
	for i, t := range trend {
		days[i] = t.Day
		units[i] = opts.LineData{Value: t.Units}
	}
	line.SetXAxis(days).AddSeries("units sold", units)
	return line
}
