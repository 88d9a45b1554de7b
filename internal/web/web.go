// Package web serves the server-rendered UI: an echarts dashboard and a
// plain HTML products page with add-product and record-stock forms.
package web

import (
	"stocktrack/internal/cache"
	"stocktrack/internal/repo"
)

var (
	productRepo     repo.ProductRepository
	transactionRepo repo.TransactionRepository
	statsRepo       repo.StatsRepository

	chartCache cache.Cache = cache.NewMemoryCache()
)

func SetRepos(products repo.ProductRepository, transactions repo.TransactionRepository, stats repo.StatsRepository) {
	productRepo = products
	transactionRepo = transactions
	statsRepo = stats
}

func SetCache(c cache.Cache) {
	chartCache = c
}
