package config

import "github.com/caarlos0/env/v9"

type Config struct {
	Port                   string `env:"PORT" envDefault:"8080"`
	DBUser                 string `env:"DB_USER,required"`
	DBPassword             string `env:"DB_PASSWORD,required"`
	DBHost                 string `env:"DB_HOST,required"` // e.g. tcp(host:3306) or unix(/cloudsql/instance)
	DBName                 string `env:"DB_NAME,required"`
	DBPort                 string `env:"DB_PORT" envDefault:"3306"`
	InstanceConnectionName string `env:"INSTANCE_CONNECTION_NAME"`

	// Shared secret for the whole admin surface, compared against the
	// X-Admin-Password header.
	AdminPassword string `env:"ADMIN_PASSWORD,required"`

	// Firebase project backing member identity. Member endpoints are
	// disabled when empty.
	FirebaseProjectID string `env:"FIREBASE_PROJECT_ID"`

	// Redis backing the public-lookup rate limiter. The limiter is
	// disabled when the address is empty.
	RedisAddr           string `env:"REDIS_ADDR"`
	RedisDB             int    `env:"REDIS_DB" envDefault:"0"`
	LookupRateLimit     int    `env:"LOOKUP_RATE_LIMIT" envDefault:"20"`
	LookupRateWindowSec int    `env:"LOOKUP_RATE_WINDOW_SEC" envDefault:"60"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
