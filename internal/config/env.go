package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config values from environment variables. A .env file in
// the working directory is loaded first when present; real environment
// variables win over .env entries (godotenv does not override existing ones).
//
// Interval-style settings are accepted as plain integers in the unit their
// name states (hours, days, seconds) and converted to time.Duration values.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	config.DatabaseDSN = getEnv("DATABASE_DSN", config.DatabaseDSN)
	config.ReliefWebAPIURL = getEnv("RELIEFWEB_API_URL", config.ReliefWebAPIURL)
	config.ReliefWebAppName = getEnv("RELIEFWEB_APP_NAME", config.ReliefWebAppName)
	config.APIBaseURL = getEnv("API_BASE_URL", config.APIBaseURL)

	config.RequestTimeout = time.Duration(getEnvInt("REQUEST_TIMEOUT_SECONDS", int(config.RequestTimeout.Seconds()))) * time.Second
	config.SyncInterval = time.Duration(getEnvInt("SYNC_INTERVAL_HOURS", int(config.SyncInterval.Hours()))) * time.Hour
	config.RetentionPeriod = time.Duration(getEnvInt("RETENTION_PERIOD_DAYS", int(config.RetentionPeriod.Hours()/24))) * 24 * time.Hour
	config.StatusErrorDelay = time.Duration(getEnvInt("STATUS_ERROR_DELAY_SECONDS", int(config.StatusErrorDelay.Seconds()))) * time.Second

	config.DisasterLimit = getEnvInt("DISASTER_LIMIT", config.DisasterLimit)
	config.ReportLimit = getEnvInt("REPORT_LIMIT", config.ReportLimit)

	config.ContentFormatSituationReport = getEnvInt64("CONTENT_FORMAT_SITUATION_REPORT", config.ContentFormatSituationReport)
	config.ContentFormatMap = getEnvInt64("CONTENT_FORMAT_MAP", config.ContentFormatMap)
	config.ContentFormatNews = getEnvInt64("CONTENT_FORMAT_NEWS", config.ContentFormatNews)

	config.EnrichmentEnabled = getEnvBool("ENRICHMENT_ENABLED", config.EnrichmentEnabled)
	config.EnrichmentTimeout = time.Duration(getEnvInt("ENRICHMENT_TIMEOUT_SECONDS", int(config.EnrichmentTimeout.Seconds()))) * time.Second
	if v, ok := os.LookupEnv("ANALYSIS_KINDS"); ok {
		config.AnalysisKinds = splitList(v)
	}
	if v, ok := os.LookupEnv("ANALYSIS_LANGUAGES"); ok {
		config.AnalysisLanguages = splitList(v)
	}

	config.MirrorEnabled = getEnvBool("MIRROR_ENABLED", config.MirrorEnabled)
	config.S3RootUser = getEnv("S3_ROOT_USER", config.S3RootUser)
	config.S3RootPassword = getEnv("S3_ROOT_PASSWORD", config.S3RootPassword)
	config.S3Bucket = getEnv("S3_BUCKET", config.S3Bucket)
	config.S3Region = getEnv("S3_REGION", config.S3Region)
	config.S3BaseEndpoint = getEnv("S3_BASE_ENDPOINT", config.S3BaseEndpoint)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
