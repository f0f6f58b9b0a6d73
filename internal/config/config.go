package config

import "time"

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL" envDefault:"http://localhost:8080"`
	Database    Database

	Braintree Braintree `envPrefix:"BRAINTREE_"`
	Breaker   Breaker   `envPrefix:"BREAKER_"`
}

// Braintree holds one credentials block per environment. TestMode selects
// which block is active.
type Braintree struct {
	TestMode bool        `env:"TEST_MODE" envDefault:"true"`
	Prod     Credentials `envPrefix:"PROD_"`
	Test     Credentials `envPrefix:"TEST_"`
}

type Credentials struct {
	MerchantID        string `env:"MERCHANT_ID"`
	MerchantAccountID string `env:"MERCHANT_ACCOUNT_ID"`
	PublicKey         string `env:"PUBLIC_KEY"`
	PrivateKey        string `env:"PRIVATE_KEY"`
}

// Active returns the credentials for the environment selected by TestMode.
func (b Braintree) Active() Credentials {
	if b.TestMode {
		return b.Test
	}
	return b.Prod
}

func (b Braintree) EnvironmentName() string {
	if b.TestMode {
		return "sandbox"
	}
	return "production"
}

// HasValidConfig reports whether the active environment has the three
// credentials required to talk to Braintree.
func (b Braintree) HasValidConfig() bool {
	c := b.Active()
	return c.MerchantID != "" && c.PublicKey != "" && c.PrivateKey != ""
}

type Breaker struct {
	Enabled      bool          `env:"ENABLED" envDefault:"true"`
	MaxRequests  uint32        `env:"MAX_REQUESTS" envDefault:"1"`
	Interval     time.Duration `env:"INTERVAL" envDefault:"60s"`
	Timeout      time.Duration `env:"TIMEOUT" envDefault:"30s"`
	MinRequests  uint32        `env:"MIN_REQUESTS" envDefault:"3"`
	FailureRatio float64       `env:"FAILURE_RATIO" envDefault:"0.6"`
}

type Database struct {
	Driver string `env:"DATABASE_DRIVER" envDefault:"sqlite"` // sqlite | mysql
	URL    string `env:"DATABASE_URL" envDefault:"braintree.db"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
