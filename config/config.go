package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

// Prefix — префикс переменных окружения сервиса.
const Prefix = "VETSTOCK"

type HTTP struct {
	Addr              string        `default:":8080" envconfig:"ADDR" validate:"required"`
	GinMode           string        `default:"debug" envconfig:"GIN_MODE"`
	ReadTimeout       time.Duration `default:"15s" envconfig:"READ_TIMEOUT" validate:"gt=0"`
	WriteTimeout      time.Duration `default:"75s" envconfig:"WRITE_TIMEOUT" validate:"gt=0"`
	ReadHeaderTimeout time.Duration `default:"5s" envconfig:"READ_HEADER_TIMEOUT" validate:"gt=0"`
	IdleTimeout       time.Duration `default:"60s" envconfig:"IDLE_TIMEOUT" validate:"gt=0"`
	HandlerTimeout    time.Duration `default:"65s" envconfig:"HANDLER_TIMEOUT" validate:"gte=0"` // основная попытка + резервная
	GracefulTimeout   time.Duration `default:"10s" envconfig:"GRACEFUL_TIMEOUT" validate:"gt=0"`
	StaticDir         string        `default:"./web" envconfig:"STATIC_DIR"`
}

type Tracing struct {
	Enabled     bool    `default:"false" envconfig:"OTEL_ENABLED"`
	ServiceName string  `default:"vetstock" envconfig:"OTEL_SERVICE_NAME"`
	Endpoint    string  `default:"jaeger:4318" envconfig:"OTEL_ENDPOINT" validate:"required_if=Enabled true"`
	SampleRatio float64 `default:"1" envconfig:"OTEL_SAMPLE_RATIO" validate:"gte=0,lte=1"`
}

type Logger struct {
	IsProd bool `default:"false" envconfig:"IS_PROD"`
}

// Proxy — edge-прокси к бэкенду автоматизаций.
type Proxy struct {
	UpstreamURL  string        `default:"http://localhost:5678/webhook" envconfig:"UPSTREAM_URL" validate:"required,url"`
	Timeout      time.Duration `default:"30s" envconfig:"TIMEOUT" validate:"gt=0"`
	MaxBodyBytes int64         `default:"20971520" envconfig:"MAX_BODY_BYTES" validate:"gt=0"`
}

// Webhook — куда диспетчер отправляет действия.
type Webhook struct {
	PrimaryURL      string        `default:"http://localhost:8080/webhook-proxy" envconfig:"PRIMARY_URL" validate:"required,url"`
	PrimaryProxied  bool          `default:"true" envconfig:"PRIMARY_PROXIED"`
	FallbackURL     string        `default:"http://localhost:5678/webhook" envconfig:"FALLBACK_URL" validate:"omitempty,url"`
	FallbackProxied bool          `default:"false" envconfig:"FALLBACK_PROXIED"`
	Timeout         time.Duration `default:"30s" envconfig:"TIMEOUT" validate:"gt=0"`
}

type Cache struct {
	ListTTL  time.Duration `default:"5m" envconfig:"LIST_TTL" validate:"gte=0"`
	StatsTTL time.Duration `default:"1h" envconfig:"STATS_TTL" validate:"gte=0"`
}

// Kafka — шина инвалидации кэшей между инстансами.
type Kafka struct {
	Enabled        bool          `default:"false" envconfig:"ENABLED"`
	Brokers        []string      `default:"kafka:9092" envconfig:"BROKERS" validate:"required_if=Enabled true"`
	Topic          string        `default:"inventory-invalidation" envconfig:"TOPIC" validate:"required"`
	GroupID        string        `envconfig:"GROUP_ID"` // пусто — своя группа на инстанс
	StartOffset    string        `default:"last" envconfig:"START_OFFSET"`
	ProcessTimeout time.Duration `default:"5s" envconfig:"PROCESS_TIMEOUT"`
	RetryInitial   time.Duration `default:"1s" envconfig:"RETRY_INITIAL"`
	RetryMax       time.Duration `default:"30s" envconfig:"RETRY_MAX"`
	WriteTimeout   time.Duration `default:"5s" envconfig:"WRITE_TIMEOUT"`
}

type Config struct {
	Instance string `envconfig:"INSTANCE"` // пусто — сгенерированный uuid
	HTTP     HTTP
	Tracing  Tracing
	Logger   Logger
	Proxy    Proxy
	Webhook  Webhook
	Cache    Cache
	Kafka    Kafka
}

// Load — конфигурация из окружения с префиксом VETSTOCK.
func Load() (Config, error) {
	return LoadWithPrefix(Prefix)
}

// LoadWithPrefix — то же с произвольным префиксом (для тестов).
func LoadWithPrefix(prefix string) (Config, error) {
	var c Config

	if err := envconfig.Process(prefix, &c); err != nil {
		return Config{}, fmt.Errorf("process env: %w", err)
	}
	if err := validator.New().Struct(&c); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}
