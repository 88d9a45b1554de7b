package main

import (
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	_ "stocktrack/docs"
	"stocktrack/internal/auth"
	"stocktrack/internal/cache"
	"stocktrack/internal/config"
	"stocktrack/internal/db"
	apphttp "stocktrack/internal/http"
	"stocktrack/internal/http/handlers"
	"stocktrack/internal/http/ratelimit"
	"stocktrack/internal/repo"
	"stocktrack/internal/web"
)

// @title StockTrack API
// @version 1.0
// @description REST API for managing inventory products, stock transactions and reports.
// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	rootCmd := &cobra.Command{
		Use:   "stocktrack",
		Short: "Inventory tracking service",
	}
	rootCmd.AddCommand(
		serveCommand(),
		initDBCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "start the HTTP server",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load()
			if err != nil {
				logrus.Fatalf("invalid configuration: %v", err)
			}
			configureLogging(cfg.LogLevel)
			auth.SetSecret(cfg.JWTSecret)

			database, err := db.Connect(cfg)
			if err != nil {
				logrus.Fatalf("could not connect to database: %v", err)
			}
			defer database.Close()

			if err := db.Init(database); err != nil {
				logrus.Fatalf("could not initialize schema: %v", err)
			}

			productRepo := repo.NewSQLProductRepository(database)
			transactionRepo := repo.NewSQLTransactionRepository(database)
			statsRepo := repo.NewSQLStatsRepository(database)

			handlers.SetProductRepo(productRepo)
			handlers.SetTransactionRepo(transactionRepo)
			handlers.SetStatsRepo(statsRepo)
			handlers.SetUserRepo(repo.NewSQLUserRepository(database))
			web.SetRepos(productRepo, transactionRepo, statsRepo)

			if cfg.RedisAddr != "" {
				rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
				if err := rdb.Ping(cmd.Context()).Err(); err != nil {
					logrus.Fatalf("could not connect to Redis: %v", err)
				}
				defer rdb.Close()

				redisCache := cache.NewRedisCache(rdb)
				handlers.SetReportCache(redisCache)
				web.SetCache(redisCache)
				logrus.Infof("report cache backed by Redis at %s", cfg.RedisAddr)
			}

			go ratelimit.StartVisitorCleanupLoop()

			logrus.Infof("server running on %s (db driver: %s)", cfg.Addr, cfg.DBDriver)
			if err := http.ListenAndServe(cfg.Addr, apphttp.NewRouter()); err != nil {
				logrus.Fatal(err)
			}
		},
	}
}

func initDBCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init-db",
		Short: "create the database schema and exit",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load()
			if err != nil {
				logrus.Fatalf("invalid configuration: %v", err)
			}
			configureLogging(cfg.LogLevel)

			database, err := db.Connect(cfg)
			if err != nil {
				logrus.Fatalf("could not connect to database: %v", err)
			}
			defer database.Close()

			if err := db.Init(database); err != nil {
				logrus.Fatalf("could not initialize schema: %v", err)
			}
			logrus.Info("schema created")
		},
	}
}

func configureLogging(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}
