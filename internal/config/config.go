// Package config provides functionality for managing configuration options
// for the application using command-line flags and environment variables.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"strconv"
)

// Options holds the configuration values for the application.
type Options struct {
	// Address defines the server's listening address (ip:port).
	Address string

	// DatabaseDSN holds the MySQL connection string for the application.
	DatabaseDSN string

	// SecretKey is the HMAC secret used to sign access tokens.
	SecretKey string

	// Algorithm is the JWT signing algorithm (HS256, HS384 or HS512).
	Algorithm string

	// AccessTokenExpireMinutes is the access token lifetime in minutes.
	AccessTokenExpireMinutes int

	// Config is the path to the Config file.
	Config string
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Address, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address")
	flag.StringVar(&options.SecretKey, "s", "", "token signing secret")
	flag.StringVar(&options.Algorithm, "alg", "HS256", "token signing algorithm")
	flag.IntVar(&options.AccessTokenExpireMinutes, "exp", 30, "access token lifetime in minutes")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags and environment variables to set
// configuration values. It returns a pointer to the Options struct containing
// the parsed configuration values. Environment variables take precedence
// over flags and the config file.
func Parse() *Options {
	flag.Parse()

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Address = serverAddress
	}

	if dbURL := os.Getenv("DB_URL"); dbURL != "" {
		options.DatabaseDSN = dbURL
	}

	if secretKey := os.Getenv("SECRET_KEY"); secretKey != "" {
		options.SecretKey = secretKey
	}

	if algorithm := os.Getenv("ALGORITHM"); algorithm != "" {
		options.Algorithm = algorithm
	}

	if expire := os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"); expire != "" {
		minutes, err := strconv.Atoi(expire)
		if err != nil {
			log.Fatalf("invalid ACCESS_TOKEN_EXPIRE_MINUTES: %v", err)
		}
		options.AccessTokenExpireMinutes = minutes
	}

	return options
}
