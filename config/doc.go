// Package config loads service configuration with viper.
//
// Sources are layered: cmd/<service>/config.yml, then a .env file (loaded with
// godotenv), then the process environment. Environment keys map onto nested
// config keys by splitting on underscores, so SERVER_PORT sets server.port.
package config
