package handlers

import (
	"stocktrack/internal/cache"
	"stocktrack/internal/repo"
)

var (
	productRepo     repo.ProductRepository
	transactionRepo repo.TransactionRepository
	statsRepo       repo.StatsRepository
	userRepo        repo.UserRepository

	reportCache cache.Cache = cache.NewMemoryCache()
)

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
}

func SetTransactionRepo(r repo.TransactionRepository) {
	transactionRepo = r
}

func SetStatsRepo(r repo.StatsRepository) {
	statsRepo = r
}

func SetUserRepo(r repo.UserRepository) {
	userRepo = r
}

func SetReportCache(c cache.Cache) {
	reportCache = c
}
