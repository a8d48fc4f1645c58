package cmd

// Config carries every setting the application reads from the environment.
type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// OpsEmail receives internal notifications: measurement submissions,
	// QC outcomes and task reminders.
	OpsEmail string

	AramexBaseURL       string
	AramexAPIKey        string
	AramexSecret        string
	AramexAccountNumber string
	ShipperName         string
	ShipperAddress      string
	ShipperPhone        string

	BrevoBaseURL   string
	BrevoAPIKey    string
	BrevoFromName  string
	BrevoFromEmail string

	OrderWebhookSecret       string
	MeasurementWebhookSecret string
	CarrierWebhookSecret     string

	// ReminderSchedule is a five-field cron expression for the task
	// reminder sweep.
	ReminderSchedule string
}
