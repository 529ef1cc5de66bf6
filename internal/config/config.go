package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Configはアプリ全体の設定
type Config struct {
	Port  string `yaml:"port"`  // サーバーポート（8080）
	GoEnv string `yaml:"goEnv"` // dev/prod
	FEURL string `yaml:"feUrl"` // フロントURL（CORSで使う）

	Postgres struct {
		URL      string `yaml:"url"` // DATABASE_URL（あれば最優先）
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		DB       string `yaml:"db"`
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		SSLMode  string `yaml:"sslMode"`
	} `yaml:"postgres"`

	JWT struct {
		Secret string        `yaml:"secret"`
		TTL    time.Duration `yaml:"ttl"` // 0なら無期限
	} `yaml:"jwt"`

	Mailgun struct {
		APIKey    string `yaml:"apiKey"`
		Domain    string `yaml:"domain"`
		FromEmail string `yaml:"fromEmail"`
		BaseURL   string `yaml:"baseUrl"`
	} `yaml:"mailgun"`

	Redis struct {
		Addr     string `yaml:"addr"` // 空ならプロセス内のpubsub
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	Kafka struct {
		Brokers []string `yaml:"brokers"` // 空なら送らない
		Topic   string   `yaml:"topic"`
	} `yaml:"kafka"`

	// trueなら注文ステータスは1段ずつしか進めない
	StrictOrderFlow bool `yaml:"strictOrderFlow"`
}

// LoadはCONFIG_PATHのyaml → 環境変数の順で読む
func Load() (Config, error) {
	cfg := Config{}
	cfg.Port = "8080"
	cfg.GoEnv = "dev"
	cfg.Postgres.Host = "localhost"
	cfg.Postgres.Port = 5432
	cfg.Postgres.SSLMode = "disable"
	cfg.Mailgun.BaseURL = "https://api.mailgun.net"
	cfg.Kafka.Topic = "order-events"

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config yaml: %w", err)
		}
	}

	//環境変数で上書き
	setString(&cfg.Port, "PORT")
	setString(&cfg.GoEnv, "GO_ENV")
	setString(&cfg.FEURL, "FE_URL")

	setString(&cfg.Postgres.URL, "DATABASE_URL")
	setString(&cfg.Postgres.User, "POSTGRES_USER")
	setString(&cfg.Postgres.Password, "POSTGRES_PASSWORD")
	setString(&cfg.Postgres.DB, "POSTGRES_DB")
	setString(&cfg.Postgres.Host, "POSTGRES_HOST")
	setString(&cfg.Postgres.SSLMode, "POSTGRES_SSLMODE")
	if err := setInt(&cfg.Postgres.Port, "POSTGRES_PORT"); err != nil {
		return Config{}, err
	}

	setString(&cfg.JWT.Secret, "JWT_SECRET")
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("TOKEN_TTL must be duration: %w", err)
		}
		cfg.JWT.TTL = d
	}

	setString(&cfg.Mailgun.APIKey, "MAILGUN_API_KEY")
	setString(&cfg.Mailgun.Domain, "MAILGUN_DOMAIN_NAME")
	setString(&cfg.Mailgun.FromEmail, "MAILGUN_FROM_EMAIL")
	setString(&cfg.Mailgun.BaseURL, "MAILGUN_BASE_URL")

	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	if err := setInt(&cfg.Redis.DB, "REDIS_DB"); err != nil {
		return Config{}, err
	}

	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = splitList(v)
	}
	setString(&cfg.Kafka.Topic, "KAFKA_TOPIC")

	if v := os.Getenv("ORDER_STRICT_FLOW"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("ORDER_STRICT_FLOW must be bool: %w", err)
		}
		cfg.StrictOrderFlow = b
	}

	//必須チェック
	if cfg.JWT.Secret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.Postgres.URL == "" {
		if cfg.Postgres.User == "" {
			return Config{}, fmt.Errorf("POSTGRES_USER is required")
		}
		if cfg.Postgres.Password == "" {
			return Config{}, fmt.Errorf("POSTGRES_PASSWORD is required")
		}
		if cfg.Postgres.DB == "" {
			return Config{}, fmt.Errorf("POSTGRES_DB is required")
		}
	}
	if cfg.Mailgun.APIKey == "" {
		return Config{}, fmt.Errorf("MAILGUN_API_KEY is required")
	}
	if cfg.Mailgun.Domain == "" {
		return Config{}, fmt.Errorf("MAILGUN_DOMAIN_NAME is required")
	}
	if cfg.Mailgun.FromEmail == "" {
		return Config{}, fmt.Errorf("MAILGUN_FROM_EMAIL is required")
	}

	return cfg, nil
}

// 接続文字列
func (c Config) DSN() string {
	if c.Postgres.URL != "" {
		return c.Postgres.URL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Postgres.Host, c.Postgres.Port, c.Postgres.User, c.Postgres.Password, c.Postgres.DB, c.Postgres.SSLMode,
	)
}

func (c Config) IsProd() bool {
	return c.GoEnv == "prod"
}

// FE_URLはカンマ区切りで複数可
func (c Config) CORSOrigins() []string {
	return splitList(c.FEURL)
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s must be number: %w", key, err)
	}
	*dst = i
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
