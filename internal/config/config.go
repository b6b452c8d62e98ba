package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultPushTopic       = "order-events"
	defaultRefreshInterval = 60 * time.Second
)

type Config struct {
	RunAddress      string
	DatabaseURI     string
	BackendAddress  string
	BackendToken    string
	JWTSecret       string
	RedisAddress    string
	PublicURL       string
	KafkaBrokers    []string
	PushTopic       string
	RefreshInterval time.Duration
	Logger          *zap.SugaredLogger
}

func NewConfig() *Config {
	logCfg := zap.NewProductionConfig()
	logCfg.OutputPaths = []string{"stdout", "console.log"}

	logger := zap.Must(logCfg.Build())

	cfg := &Config{}
	var brokers string
	flag.StringVar(&cfg.RunAddress, "a", "localhost:8080", "HTTP server address")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "DB connection string")
	flag.StringVar(&cfg.BackendAddress, "b", "http://localhost:3000", "Order backend address")
	flag.StringVar(&cfg.BackendToken, "t", "", "Fallback token for backend requests made without a caller token")
	flag.StringVar(&cfg.JWTSecret, "k", "", "Secret of backend access tokens")
	flag.StringVar(&cfg.RedisAddress, "r", "", "Redis address for generated waybills")
	flag.StringVar(&cfg.PublicURL, "p", "", "Public console URL used in waybill links")
	flag.StringVar(&brokers, "kafka", "", "Comma separated Kafka brokers for push events")
	flag.StringVar(&cfg.PushTopic, "topic", defaultPushTopic, "Kafka topic of push events")
	flag.DurationVar(&cfg.RefreshInterval, "i", defaultRefreshInterval, "Background refresh interval")
	flag.Parse()

	cfg.KafkaBrokers = splitList(brokers)
	cfg.Logger = logger.Sugar()

	ReadServerEnvironment(cfg)

	return cfg
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func ReadServerEnvironment(cfg *Config) {
	if runAddress := os.Getenv("RUN_ADDRESS"); runAddress != "" {
		cfg.RunAddress = runAddress
	}

	if databaseURI := os.Getenv("DATABASE_URI"); databaseURI != "" {
		cfg.DatabaseURI = databaseURI
	}

	if backendAddress := os.Getenv("BACKEND_ADDRESS"); backendAddress != "" {
		cfg.BackendAddress = backendAddress
	}

	if backendToken := os.Getenv("BACKEND_TOKEN"); backendToken != "" {
		cfg.BackendToken = backendToken
	}

	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.JWTSecret = secret
	}

	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		cfg.RedisAddress = redisAddress
	}

	if publicURL := os.Getenv("PUBLIC_URL"); publicURL != "" {
		cfg.PublicURL = publicURL
	}

	if brokers := splitList(os.Getenv("KAFKA_BROKERS")); len(brokers) > 0 {
		cfg.KafkaBrokers = brokers
	}

	if topic := os.Getenv("PUSH_TOPIC"); topic != "" {
		cfg.PushTopic = topic
	}

	if interval := os.Getenv("REFRESH_INTERVAL"); interval != "" {
		if d, err := time.ParseDuration(interval); err == nil && d > 0 {
			cfg.RefreshInterval = d
		} else if cfg.Logger != nil {
			cfg.Logger.Warnf("ignore REFRESH_INTERVAL %q", interval)
		}
	}
}
