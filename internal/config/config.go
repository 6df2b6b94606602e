package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables
	S3ExportBucket string

	JWTPrivateKeyPath string
	JWTPublicKeyPath  string
	JWTExpiry         time.Duration

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string
	SNSRegion    string

	// Staff distribution lists, keyed by form type. Loaded from
	// STAFF_EMAILS_<TYPE> / STAFF_PHONES_<TYPE> (comma-separated).
	StaffEmails map[string][]string
	StaffPhones map[string][]string

	OTPMaxAttempts int
	OTPWindow      time.Duration
	OTPCodeTTL     time.Duration

	DispatchTimeout time.Duration

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Submissions   string
	WeekendPasses string
	Verifications string
	HandbookAcks  string
}

var formTypes = []string{"intake", "youth-services", "weekend-pass", "insurance-verification", "progress-report", "handbook-acknowledgment"}

// Load reads all configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),
		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Submissions:   getEnv("DYNAMO_TABLE_SUBMISSIONS", "submissions"),
			WeekendPasses: getEnv("DYNAMO_TABLE_WEEKEND_PASSES", "weekend_passes"),
			Verifications: getEnv("DYNAMO_TABLE_VERIFICATIONS", "verifications"),
			HandbookAcks:  getEnv("DYNAMO_TABLE_HANDBOOK_ACKS", "handbook_acks"),
		},
		S3ExportBucket:    getEnv("S3_EXPORT_BUCKET", "intake-exports"),
		JWTPrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", "./private_key.pem"),
		JWTPublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),
		JWTExpiry:         time.Duration(getEnvInt("JWT_EXPIRY_HOURS", 12)) * time.Hour,
		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@example.com"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SNSRegion:    getEnv("SNS_REGION", "us-east-1"),
		OTPMaxAttempts:  getEnvInt("OTP_MAX_ATTEMPTS", 5),
		OTPWindow:       time.Duration(getEnvInt("OTP_WINDOW_MINUTES", 60)) * time.Minute,
		OTPCodeTTL:      time.Duration(getEnvInt("OTP_CODE_TTL_MINUTES", 10)) * time.Minute,
		DispatchTimeout: time.Duration(getEnvInt("DISPATCH_TIMEOUT_SECONDS", 10)) * time.Second,
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}

	cfg.StaffEmails = make(map[string][]string, len(formTypes))
	cfg.StaffPhones = make(map[string][]string, len(formTypes))
	for _, ft := range formTypes {
		suffix := strings.ToUpper(strings.ReplaceAll(ft, "-", "_"))
		cfg.StaffEmails[ft] = getEnvList("STAFF_EMAILS_" + suffix)
		cfg.StaffPhones[ft] = getEnvList("STAFF_PHONES_" + suffix)
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
