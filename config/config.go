package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port      int    `env:"PORT" envDefault:"3000"`
	PgURL     string `env:"PG_URL,required,notEmpty"`
	PgPoolMax int    `env:"PG_POOL_MAX" envDefault:"10"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// PIX settings used when building ticket payment codes
	PixKey            string  `env:"PIX_KEY" envDefault:"contato@arenatransformados.com.br"`
	PixMaxAmount      float64 `env:"PIX_MAX_AMOUNT" envDefault:"10000"`
	TicketMaxQuantity int     `env:"TICKET_DEFAULT_MAX_QUANTITY" envDefault:"10"`

	// Checkout sessions live in Redis when REDIS_ADDR is set, in memory otherwise
	RedisAddr          string        `env:"REDIS_ADDR"`
	RedisPassword      string        `env:"REDIS_PASSWORD"`
	RedisDB            int           `env:"REDIS_DB" envDefault:"0"`
	CheckoutSessionTTL time.Duration `env:"CHECKOUT_SESSION_TTL" envDefault:"30m"`

	// Kafka configuration; order events are not published when KAFKA_BROKERS is empty
	KafkaBrokers               []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaOrdersTopic           string   `env:"KAFKA_ORDERS_TOPIC" envDefault:"orders.events"`
	KafkaOrdersDLQTopic        string   `env:"KAFKA_ORDERS_DLQ_TOPIC" envDefault:"orders.events.dlq"`
	KafkaNotifierConsumerGroup string   `env:"KAFKA_NOTIFIER_CONSUMER_GROUP" envDefault:"ticketpix-notifier"`

	OpensearchUrls          []string `env:"OPENSEARCH_URLS" envSeparator:","`
	OpensearchIndexProducts string   `env:"OPENSEARCH_INDEX_PRODUCTS" envDefault:"products"`

	TelegramBotToken    string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramAdminChatID int64  `env:"TELEGRAM_ADMIN_CHAT_ID"`
}

// New loads .env (if present) into the process environment and parses Config.
func New() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}

	c, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}

	return c, nil
}

func (c Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func (c Config) ConsoleLogs() bool {
	return c.LogFormat == "console"
}
