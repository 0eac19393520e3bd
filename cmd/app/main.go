package main

import (
	"context"
	"fmt"
	"fulfillment/cmd"
	"fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/productrepo"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/jobs"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := openDatabase(configs)
	migrateDatabase(gormDB)

	app := cmd.NewCompositionRoot(configs, gormDB)

	if configs.SeedSampleData {
		seedSampleData(gormDB, app.CreateCreateProductCommandHandler())
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	jobManager := jobs.NewJobManager(
		app.CreateGetStalePendingOrdersQueryHandler(),
		app.CreateCancelOrderCommandHandler(),
		configs.PendingOrderTTL,
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	pendingOrderTTL, err := time.ParseDuration(goDotEnvVariable("PENDING_ORDER_TTL"))
	if err != nil {
		log.Fatalf("Invalid PENDING_ORDER_TTL: %v", err)
	}

	config := cmd.Config{
		HTTPPort:        goDotEnvVariable("HTTP_PORT"),
		DBHost:          goDotEnvVariable("DB_HOST"),
		DBPort:          goDotEnvVariable("DB_PORT"),
		DBUser:          goDotEnvVariable("DB_USER"),
		DBPassword:      goDotEnvVariable("DB_PASSWORD"),
		DBName:          goDotEnvVariable("DB_NAME"),
		DBSslMode:       goDotEnvVariable("DB_SSLMODE"),
		PendingOrderTTL: pendingOrderTTL,
		SeedSampleData:  goDotEnvVariable("SEED_SAMPLE_DATA") == "true",
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func openDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	return gormDB
}

func migrateDatabase(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&productrepo.ProductDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}

// seedSampleData fills an empty catalog with a few demo products.
// A non-empty catalog is left untouched so restarts do not duplicate rows.
func seedSampleData(gormDB *gorm.DB, handler commands.CreateProductCommandHandler) {
	var count int64
	if err := gormDB.Model(&productrepo.ProductDTO{}).Count(&count).Error; err != nil {
		log.Fatalf("Failed to inspect product catalog: %v", err)
	}
	if count > 0 {
		return
	}

	samples := []struct {
		name        string
		description string
		price       string
		stock       int
		category    string
	}{
		{"Claw Hammer", "16oz steel claw hammer", "12.50", 40, "tools"},
		{"Cordless Drill", "18V cordless drill with charger", "99.00", 15, "tools"},
		{"Ruled Notebook", "A5 ruled notebook, 120 pages", "3.20", 200, "stationery"},
		{"Gel Pen Set", "Pack of 10 assorted gel pens", "7.80", 120, "stationery"},
		{"Desk Lamp", "LED desk lamp with dimmer", "24.90", 35, "office"},
	}

	for _, sample := range samples {
		productCommand, err := commands.NewCreateProductCommand(
			sample.name, sample.description, sample.price, sample.stock, sample.category)
		if err != nil {
			log.Fatalf("Failed to build sample product %q: %v", sample.name, err)
		}
		if _, err = handler.Handle(context.Background(), productCommand); err != nil {
			log.Fatalf("Failed to seed sample product %q: %v", sample.name, err)
		}
	}
}

func startWebServer(app cmd.CompositionRoot, port string) {
	e := echo.New()

	server := http.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateConfirmOrderCommandHandler(),
		app.CreateShipOrderCommandHandler(),
		app.CreateDeliverOrderCommandHandler(),
		app.CreateCancelOrderCommandHandler(),
		app.CreateCreateProductCommandHandler(),
		app.CreateGetOrderQueryHandler(),
		app.CreateGetActiveProductsQueryHandler(),
		app.CreateGetOrderStatisticsQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
