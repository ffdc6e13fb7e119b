package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Address lookup backends.
const (
	AddressBackendKakao   = "kakao"
	AddressBackendPostGIS = "postgis"
)

// Config holds all settings of the service. Values come from app.env in the
// config directory and are overridden by environment variables of the same name.
type Config struct {
	ServerAddress      string   `mapstructure:"SERVER_ADDRESS"`
	DBSource           string   `mapstructure:"DB_SOURCE"`
	CORSAllowedOrigins []string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	LogLevel           string   `mapstructure:"LOG_LEVEL"`
	LogPretty          bool     `mapstructure:"LOG_PRETTY"`

	GoogleMapsAPIKey     string `mapstructure:"GOOGLE_MAPS_API_KEY"`
	GoogleElevationURL   string `mapstructure:"GOOGLE_ELEVATION_URL"`
	GoogleGeolocationURL string `mapstructure:"GOOGLE_GEOLOCATION_URL"`
	ElevationMaxBatch    int    `mapstructure:"ELEVATION_MAX_BATCH"`

	AddressBackend     string        `mapstructure:"ADDRESS_BACKEND"`
	KakaoRESTAPIKey    string        `mapstructure:"KAKAO_REST_API_KEY"`
	KakaoBaseURL       string        `mapstructure:"KAKAO_BASE_URL"`
	AddressLookupDelay time.Duration `mapstructure:"ADDRESS_LOOKUP_DELAY"`

	GeminiAPIKey      string        `mapstructure:"GEMINI_API_KEY"`
	GeminiModel       string        `mapstructure:"GEMINI_MODEL"`
	ModelTimeout      time.Duration `mapstructure:"MODEL_TIMEOUT"`
	ModelMaxAttempts  int           `mapstructure:"MODEL_MAX_ATTEMPTS"`
	ModelRetryBackoff time.Duration `mapstructure:"MODEL_RETRY_BACKOFF"`

	PipelineTimeout   time.Duration `mapstructure:"PIPELINE_TIMEOUT"`
	PaceMinPerKm      float64       `mapstructure:"PACE_MIN_PER_KM"`
	DebugDumpDir      string        `mapstructure:"DEBUG_DUMP_DIR"`
	DebugDumpCompress bool          `mapstructure:"DEBUG_DUMP_COMPRESS"`
}

var defaults = map[string]any{
	"SERVER_ADDRESS":         ":8080",
	"DB_SOURCE":              "",
	"CORS_ALLOWED_ORIGINS":   "*",
	"LOG_LEVEL":              "info",
	"LOG_PRETTY":             false,
	"GOOGLE_MAPS_API_KEY":    "",
	"GOOGLE_ELEVATION_URL":   "https://maps.googleapis.com/maps/api/elevation/json",
	"GOOGLE_GEOLOCATION_URL": "https://www.googleapis.com/geolocation/v1/geolocate",
	"ELEVATION_MAX_BATCH":    512,
	"ADDRESS_BACKEND":        AddressBackendKakao,
	"KAKAO_REST_API_KEY":     "",
	"KAKAO_BASE_URL":         "https://dapi.kakao.com",
	"ADDRESS_LOOKUP_DELAY":   "100ms",
	"GEMINI_API_KEY":         "",
	"GEMINI_MODEL":           "gemini-2.0-flash",
	"MODEL_TIMEOUT":          "8s",
	"MODEL_MAX_ATTEMPTS":     2,
	"MODEL_RETRY_BACKOFF":    "500ms",
	"PIPELINE_TIMEOUT":       "25s",
	"PACE_MIN_PER_KM":        5.0,
	"DEBUG_DUMP_DIR":         "",
	"DEBUG_DUMP_COMPRESS":    false,
}

// LoadConfig reads configuration from path/app.env (optional) and the environment.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("config: unmarshal: %w", err)
	}
	config.CORSAllowedOrigins = splitList(config.CORSAllowedOrigins)

	return config, config.Validate()
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	if c.ElevationMaxBatch <= 0 {
		return fmt.Errorf("config: ELEVATION_MAX_BATCH must be positive, got %d", c.ElevationMaxBatch)
	}
	if c.ModelMaxAttempts <= 0 {
		return fmt.Errorf("config: MODEL_MAX_ATTEMPTS must be positive, got %d", c.ModelMaxAttempts)
	}
	if c.ModelTimeout <= 0 {
		return errors.New("config: MODEL_TIMEOUT must be positive")
	}
	if c.PaceMinPerKm <= 0 {
		return errors.New("config: PACE_MIN_PER_KM must be positive")
	}
	switch c.AddressBackend {
	case AddressBackendKakao:
	case AddressBackendPostGIS:
		if c.DBSource == "" {
			return errors.New("config: DB_SOURCE is required for the postgis address backend")
		}
	default:
		return fmt.Errorf("config: unknown ADDRESS_BACKEND %q", c.AddressBackend)
	}

	// the whole-request deadline has to outlast every model attempt plus backoffs
	if worst := c.ModelWorstCase(); c.PipelineTimeout <= worst {
		return fmt.Errorf("config: PIPELINE_TIMEOUT %s must exceed model worst case %s", c.PipelineTimeout, worst)
	}
	return nil
}

// ModelWorstCase is the longest the recommendation stage can take.
func (c Config) ModelWorstCase() time.Duration {
	n := time.Duration(c.ModelMaxAttempts)
	return n*c.ModelTimeout + (n-1)*c.ModelRetryBackoff
}

func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
