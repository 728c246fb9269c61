// Package config loads service configuration from files and environment
// variables.
//
// Viper reads the first config.yml found (see ConfigCandidates), godotenv
// loads a .env file, and every key declared through mapstructure tags on the
// target struct is bound to its environment name. FETCH_BASE_URL, for
// example, overrides fetch.base_url.
//
//	var cfg MyConfig
//	err := config.LoadConfig("web-client", &cfg)
package config
