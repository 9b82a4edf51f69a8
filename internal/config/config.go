package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config captures every tunable of the taxi ledger. Values come from the
// process environment, then from .env files, then from defaults.
type Config struct {
	PricePerKm     float64 `env:"PRICE_PER_KM" validate:"gt=0"`
	Currency       string  `env:"CURRENCY" validate:"required"`
	DistanceMethod string  `env:"DISTANCE_METHOD" validate:"oneof=geodesic haversine"`

	MapRenderer  string  `env:"MAP_RENDERER" validate:"oneof=html static"`
	MapDir       string  `env:"MAP_DIR" validate:"required"`
	MapCenterLat float64 `env:"MAP_CENTER_LAT" validate:"gte=-90,lte=90"`
	MapCenterLon float64 `env:"MAP_CENTER_LON" validate:"gte=-180,lte=180"`
	MapZoom      int     `env:"MAP_ZOOM" validate:"gte=1,lte=20"`
	MapsAPIKey   string  `env:"GOOGLE_MAPS_API_KEY" validate:"required_if=MapRenderer static"`

	MapServerAddr string `env:"MAP_SERVER_ADDR"`

	KafkaBrokers []string `env:"KAFKA_BROKERS" validate:"dive,required"`
	KafkaTopic   string   `env:"KAFKA_TOPIC" validate:"required"`

	LogLevel string `env:"LOG_LEVEL" validate:"oneof=debug info warn warning error"`
}

func defaultConfig() Config {
	return Config{
		PricePerKm:     1.5,
		Currency:       "LYD",
		DistanceMethod: "geodesic",
		MapRenderer:    "html",
		MapDir:         ".",
		MapCenterLat:   26.3351,
		MapCenterLon:   17.2283,
		MapZoom:        6,
		KafkaTopic:     "ride-events",
		LogLevel:       "warn",
	}
}

// Load reads configuration. envFiles default to ".env"; missing files are
// skipped. Variables already set in the environment win over file values.
func Load(envFiles ...string) (Config, error) {
	cfg := defaultConfig()
	var errs []error

	dotenv, err := readDotEnv(envFiles)
	if err != nil {
		errs = append(errs, err)
	}
	getenv := func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return dotenv[key]
	}

	setFloatFromEnv(&cfg.PricePerKm, getenv, "PRICE_PER_KM", &errs)
	setStringFromEnv(&cfg.Currency, getenv, "CURRENCY")
	if v := getenv("DISTANCE_METHOD"); v != "" {
		cfg.DistanceMethod = strings.ToLower(strings.TrimSpace(v))
	}

	if v := getenv("MAP_RENDERER"); v != "" {
		cfg.MapRenderer = strings.ToLower(strings.TrimSpace(v))
	}
	setStringFromEnv(&cfg.MapDir, getenv, "MAP_DIR")
	setFloatFromEnv(&cfg.MapCenterLat, getenv, "MAP_CENTER_LAT", &errs)
	setFloatFromEnv(&cfg.MapCenterLon, getenv, "MAP_CENTER_LON", &errs)
	setIntFromEnv(&cfg.MapZoom, getenv, "MAP_ZOOM", &errs)
	cfg.MapsAPIKey = strings.TrimSpace(getenv("GOOGLE_MAPS_API_KEY"))

	cfg.MapServerAddr = strings.TrimSpace(getenv("MAP_SERVER_ADDR"))

	if brokers := getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = splitAndTrim(brokers)
	}
	setStringFromEnv(&cfg.KafkaTopic, getenv, "KAFKA_TOPIC")

	if v := getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(v))
	}

	if len(errs) == 0 {
		errs = append(errs, validate(cfg)...)
	}
	return cfg, errors.Join(errs...)
}

func readDotEnv(files []string) (map[string]string, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return map[string]string{}, nil
	}
	vals, err := godotenv.Read(existing...)
	if err != nil {
		return map[string]string{}, fmt.Errorf("read env files: %w", err)
	}
	return vals, nil
}

func validate(cfg Config) []error {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("env"); name != "" {
			return name
		}
		return f.Name
	})
	err := v.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []error{err}
	}
	out := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, errors.New(formatValidationError(fe)))
	}
	return out
}

func formatValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "required_if":
		return fe.Field() + " is required when " + fe.Param()
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %v", fe.Field(), fe.Param(), fe.Value())
	case "gt":
		return fmt.Sprintf("%s must be > %s, got %v", fe.Field(), fe.Param(), fe.Value())
	case "gte":
		return fmt.Sprintf("%s must be >= %s, got %v", fe.Field(), fe.Param(), fe.Value())
	case "lte":
		return fmt.Sprintf("%s must be <= %s, got %v", fe.Field(), fe.Param(), fe.Value())
	default:
		return fe.Field() + " failed " + fe.Tag() + " validation"
	}
}

func setFloatFromEnv(target *float64, getenv func(string) string, key string, errs *[]error) {
	if v := strings.TrimSpace(getenv(key)); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
			return
		}
		*target = f
	}
}

func setIntFromEnv(target *int, getenv func(string) string, key string, errs *[]error) {
	if v := strings.TrimSpace(getenv(key)); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
			return
		}
		*target = i
	}
}

func setStringFromEnv(target *string, getenv func(string) string, key string) {
	if v := strings.TrimSpace(getenv(key)); v != "" {
		*target = v
	}
}

func splitAndTrim(v string) []string {
	raw := strings.Split(v, ",")
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}
