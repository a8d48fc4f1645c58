package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"atelier/cmd"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	config := getConfig(logger)

	gormDB, err := connectToDB(config)
	if err != nil {
		logger.Error("Database connection failed", "error", err)
		os.Exit(1)
	}

	root, err := cmd.NewCompositionRoot(config, gormDB, logger)
	if err != nil {
		logger.Error("Composition root failed", "error", err)
		os.Exit(1)
	}

	jobManager := root.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		logger.Error("Job startup failed", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	startWebServer(&root, config.HTTPPort)
}

func getConfig(logger *slog.Logger) cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		logger.Info("No .env file found, reading environment directly")
	}

	return cmd.Config{
		HTTPPort:   os.Getenv("HTTP_PORT"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSslMode:  os.Getenv("DB_SSLMODE"),

		OpsEmail: os.Getenv("OPS_EMAIL"),

		AramexBaseURL:       os.Getenv("ARAMEX_BASE_URL"),
		AramexAPIKey:        os.Getenv("ARAMEX_API_KEY"),
		AramexSecret:        os.Getenv("ARAMEX_SECRET"),
		AramexAccountNumber: os.Getenv("ARAMEX_ACCOUNT_NUMBER"),
		ShipperName:         os.Getenv("SHIPPER_NAME"),
		ShipperAddress:      os.Getenv("SHIPPER_ADDRESS"),
		ShipperPhone:        os.Getenv("SHIPPER_PHONE"),

		BrevoBaseURL:   os.Getenv("BREVO_BASE_URL"),
		BrevoAPIKey:    os.Getenv("BREVO_API_KEY"),
		BrevoFromName:  os.Getenv("BREVO_FROM_NAME"),
		BrevoFromEmail: os.Getenv("BREVO_FROM_EMAIL"),

		OrderWebhookSecret:       os.Getenv("ORDER_WEBHOOK_SECRET"),
		MeasurementWebhookSecret: os.Getenv("MEASUREMENT_WEBHOOK_SECRET"),
		CarrierWebhookSecret:     os.Getenv("CARRIER_WEBHOOK_SECRET"),

		ReminderSchedule: os.Getenv("REMINDER_SCHEDULE"),
	}
}

func connectToDB(config cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser,
		config.DBPassword, config.DBName, config.DBSslMode)
	return gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
}

func startWebServer(root *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := root.CreateHTTPServer()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
