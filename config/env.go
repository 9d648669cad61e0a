package config

import (
	"net/url"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Env holds the process settings read from the environment.
type Env struct {
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	APIPort  string `env:"API_PORT" envDefault:"3000"`

	DatabaseHost    string `env:"DATABASE_HOST" envDefault:"localhost"`
	DatabasePort    string `env:"DATABASE_PORT" envDefault:"5432"`
	DatabaseUser    string `env:"DATABASE_USER" envDefault:"postgres"`
	DatabasePass    string `env:"DATABASE_PASS"`
	DatabaseName    string `env:"DATABASE_NAME" envDefault:"bramble"`
	DatabaseSSLMode string `env:"DATABASE_SSLMODE" envDefault:"require"`

	RedisHost     string `env:"REDIS_HOST"`
	RedisPort     string `env:"REDIS_PORT" envDefault:"6379"`
	RedisUsername string `env:"REDIS_USERNAME"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	InfluxDBURL      string `env:"INFLUXDB_URL"`
	InfluxDBDatabase string `env:"INFLUXDB_DATABASE" envDefault:"bramble"`

	EventsBackend string   `env:"EVENTS_BACKEND" envDefault:"none"`
	AMQPURL       string   `env:"AMQP_URL"`
	AMQPExchange  string   `env:"AMQP_EXCHANGE" envDefault:"bramble.events"`
	KafkaBrokers  []string `env:"KAFKA_BROKERS" envSeparator:","`

	JWTPublicKey string `env:"JWT_PUBLIC_KEY"`
	PayoutConfig string `env:"PAYOUT_CONFIG" envDefault:"config/payout.yml"`
	RollbarToken string `env:"ROLLBAR_TOKEN"`
}

// LoadEnv reads .env when present and parses the environment.
func LoadEnv() (*Env, error) {
	_ = godotenv.Load()

	cfg := &Env{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

var sslModes = map[string]bool{
	"disable":     true,
	"allow":       true,
	"prefer":      true,
	"require":     true,
	"verify-ca":   true,
	"verify-full": true,
}

// SSLMode returns DATABASE_SSLMODE when it is a libpq mode, require otherwise.
func (e *Env) SSLMode() string {
	if sslModes[e.DatabaseSSLMode] {
		return e.DatabaseSSLMode
	}

	return "require"
}

func (e *Env) DatabaseDSN() string {
	params := [][2]string{
		{"host", e.DatabaseHost},
		{"port", e.DatabasePort},
		{"user", e.DatabaseUser},
		{"password", e.DatabasePass},
		{"dbname", e.DatabaseName},
		{"sslmode", e.SSLMode()},
	}

	pairs := make([]string, 0, len(params))
	for _, p := range params {
		pairs = append(pairs, p[0]+"="+quoteDSNValue(p[1]))
	}

	return strings.Join(pairs, " ")
}

func (e *Env) DatabaseURL() string {
	q := make(url.Values)
	q.Set("sslmode", e.SSLMode())

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(e.DatabaseUser, e.DatabasePass),
		Host:     e.DatabaseHost + ":" + e.DatabasePort,
		Path:     e.DatabaseName,
		RawQuery: q.Encode(),
	}

	return u.String()
}

// quoteDSNValue single-quotes v when it is empty or holds spaces, quotes or
// backslashes, escaping the latter two.
func quoteDSNValue(v string) string {
	if len(v) > 0 && !strings.ContainsAny(v, " '\\\t") {
		return v
	}

	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)

	return "'" + v + "'"
}
