package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type AppConfig struct {
	App      AppSettings      `mapstructure:"app"`
	Postgres PostgresSettings `mapstructure:"postgres"`
	Redis    RedisSettings    `mapstructure:"redis"`
	Kafka    KafkaSettings    `mapstructure:"kafka"`
	JWT      JWTSettings      `mapstructure:"jwt"`
	Search   SearchSettings   `mapstructure:"search"`
	Offers   OfferSettings    `mapstructure:"offers"`
	Argon2   Argon2Settings   `mapstructure:"argon2"`
}

type AppSettings struct {
	Name           string   `mapstructure:"name"`
	Env            string   `mapstructure:"env"`
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type PostgresSettings struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	User              string        `mapstructure:"user"`
	Password          string        `mapstructure:"password"`
	Database          string        `mapstructure:"database"`
	SSLMode           string        `mapstructure:"ssl_mode"`
	MaxConns          int32         `mapstructure:"max_conns"`
	MinConns          int32         `mapstructure:"min_conns"`
	MaxConnLifetime   time.Duration `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime   time.Duration `mapstructure:"max_conn_idle_time"`
	HealthCheckPeriod time.Duration `mapstructure:"health_check_period"`
}

// RedisSettings configures the Redis connection plus cache key layout.
type RedisSettings struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	DB                int           `mapstructure:"db"`
	Password          string        `mapstructure:"password"`
	TLSEnabled        bool          `mapstructure:"tls_enabled"`
	VoivodeshipPrefix string        `mapstructure:"voivodeship_prefix"`
	VoivodeshipTTL    time.Duration `mapstructure:"voivodeship_ttl"`
	RateLimitPrefix   string        `mapstructure:"rate_limit_prefix"`
}

// KafkaSettings configures the Kafka producer. Leaving Brokers empty switches
// the service to the logging stub publisher.
type KafkaSettings struct {
	Brokers     []string `mapstructure:"brokers"`
	TopicPrefix string   `mapstructure:"topic_prefix"`
}

// JWTSettings configures access token issuance and revocation bookkeeping.
type JWTSettings struct {
	Secret                string        `mapstructure:"secret"`
	Issuer                string        `mapstructure:"issuer"`
	AccessTokenTTL        time.Duration `mapstructure:"access_token_ttl"`
	RevocationSweepPeriod time.Duration `mapstructure:"revocation_sweep_period"`
	LoginMaxAttempts      int           `mapstructure:"login_max_attempts"`
	LoginWindow           time.Duration `mapstructure:"login_window"`
}

// SearchSettings carries the pagination and title-search constants consumed by
// the offer query pipeline.
type SearchSettings struct {
	FirstPage            int    `mapstructure:"first_page"`
	DefaultPage          int    `mapstructure:"default_page"`
	DefaultPageSize      int    `mapstructure:"default_page_size"`
	PageSizeMax          int    `mapstructure:"page_size_max"`
	DefaultSortField     string `mapstructure:"default_sort_field"`
	DefaultSortDirection string `mapstructure:"default_sort_direction"`
	TitleAllowedChars    string `mapstructure:"title_allowed_chars"`
}

// OfferSettings bounds offer payload fields.
type OfferSettings struct {
	TitleMaxLength int `mapstructure:"title_max_length"`
}

// Argon2Settings configures Argon2id password hashing parameters.
type Argon2Settings struct {
	Memory      uint32 `mapstructure:"memory"`
	Iterations  uint32 `mapstructure:"iterations"`
	Parallelism uint8  `mapstructure:"parallelism"`
	SaltLength  uint32 `mapstructure:"salt_length"`
	KeyLength   uint32 `mapstructure:"key_length"`
}

func Load() (*AppConfig, error) {
	v := viper.New()

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("SHOPME")

	setDefaults(v)

	if err := bindEnvs(v, []string{
		"app.name",
		"app.env",
		"app.host",
		"app.port",
		"app.allowed_origins",
		"postgres.host",
		"postgres.port",
		"postgres.user",
		"postgres.password",
		"postgres.database",
		"postgres.ssl_mode",
		"postgres.max_conns",
		"postgres.min_conns",
		"postgres.max_conn_lifetime",
		"postgres.max_conn_idle_time",
		"postgres.health_check_period",
		"redis.host",
		"redis.port",
		"redis.db",
		"redis.password",
		"redis.tls_enabled",
		"redis.voivodeship_prefix",
		"redis.voivodeship_ttl",
		"redis.rate_limit_prefix",
		"kafka.brokers",
		"kafka.topic_prefix",
		"jwt.secret",
		"jwt.issuer",
		"jwt.access_token_ttl",
		"jwt.revocation_sweep_period",
		"jwt.login_max_attempts",
		"jwt.login_window",
		"search.first_page",
		"search.default_page",
		"search.default_page_size",
		"search.page_size_max",
		"search.default_sort_field",
		"search.default_sort_direction",
		"search.title_allowed_chars",
		"offers.title_max_length",
		"argon2.memory",
		"argon2.iterations",
		"argon2.parallelism",
		"argon2.salt_length",
		"argon2.key_length",
	}); err != nil {
		return nil, err
	}

	v.AutomaticEnv()

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "shopme-backend")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.host", "0.0.0.0")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.allowed_origins", []string{"*"})

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "shopme")
	v.SetDefault("postgres.password", "shopme_password")
	v.SetDefault("postgres.database", "shopme")
	v.SetDefault("postgres.ssl_mode", "disable")
	v.SetDefault("postgres.max_conns", 10)
	v.SetDefault("postgres.min_conns", 2)
	v.SetDefault("postgres.max_conn_lifetime", "60m")
	v.SetDefault("postgres.max_conn_idle_time", "15m")
	v.SetDefault("postgres.health_check_period", "30s")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.tls_enabled", false)
	v.SetDefault("redis.voivodeship_prefix", "shopme:voivodeships")
	v.SetDefault("redis.voivodeship_ttl", "1h")
	v.SetDefault("redis.rate_limit_prefix", "shopme:rate-limit")

	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic_prefix", "shopme")

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "shopme-backend")
	v.SetDefault("jwt.access_token_ttl", "1h")
	v.SetDefault("jwt.revocation_sweep_period", "15m")
	v.SetDefault("jwt.login_max_attempts", 5)
	v.SetDefault("jwt.login_window", "1m")

	v.SetDefault("search.first_page", 1)
	v.SetDefault("search.default_page", 1)
	v.SetDefault("search.default_page_size", 20)
	v.SetDefault("search.page_size_max", 100)
	v.SetDefault("search.default_sort_field", "date")
	v.SetDefault("search.default_sort_direction", "DESC")
	v.SetDefault("search.title_allowed_chars", "a-zA-Z0-9ąĄćĆęĘłŁńŃóÓśŚżŻźŹ ")

	v.SetDefault("offers.title_max_length", 100)

	v.SetDefault("argon2.memory", 65536)
	v.SetDefault("argon2.iterations", 3)
	v.SetDefault("argon2.parallelism", 4)
	v.SetDefault("argon2.salt_length", 16)
	v.SetDefault("argon2.key_length", 32)
}

func bindEnvs(v *viper.Viper, keys []string) error {
	for _, key := range keys {
		envKey := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, "SHOPME_"+envKey, envKey); err != nil {
			return fmt.Errorf("bind env for %s: %w", key, err)
		}
	}
	return nil
}
