package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoaderConfig holds optional overrides for LoadConfig.
type LoaderConfig struct {
	ConfigFile string
	EnvFile    string
	EnvPrefix  string
}

// LoaderOption configures LoadConfig.
type LoaderOption func(*LoaderConfig)

// WithConfigFile skips the search and reads path instead.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile skips the search and loads path as the .env file.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// WithEnvPrefix requires environment overrides to carry a prefix:
// with "APP", APP_FETCH_TIMEOUT overrides fetch.timeout.
func WithEnvPrefix(prefix string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvPrefix = prefix }
}

// ConfigCandidates lists where LoadConfig looks for a service's config file.
func ConfigCandidates(serviceName string) []string {
	return []string{
		fmt.Sprintf("./cmd/%s/config.yml", serviceName),
		fmt.Sprintf("./config/%s.yml", serviceName),
		"./config/config.yml",
		"./config.yml",
	}
}

// EnvCandidates lists where LoadConfig looks for a service's .env file.
func EnvCandidates(serviceName string) []string {
	return []string{
		fmt.Sprintf("./cmd/%s/.env", serviceName),
		fmt.Sprintf(".env.%s", serviceName),
		".env",
	}
}

// LoadConfig fills cfg from a YAML file, a .env file and the environment,
// later sources winning. Missing files are not an error. Every key reachable
// through cfg's mapstructure tags can be overridden by its upper-cased,
// underscore-joined environment name: fetch.base_url by FETCH_BASE_URL.
func LoadConfig(serviceName string, cfg interface{}, opts ...LoaderOption) error {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}

	v := viper.New()
	if path := pick(lc.ConfigFile, ConfigCandidates(serviceName)); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config file %s: %w", path, err)
		}
	}
	if path := pick(lc.EnvFile, EnvCandidates(serviceName)); path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load env file %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(lc.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range structKeys(reflect.TypeOf(cfg), "") {
		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("bind env for %s: %w", key, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unmarshal config for service %s: %w", serviceName, err)
	}
	return nil
}

// pick returns explicit when set and present, otherwise the first existing
// candidate.
func pick(explicit string, candidates []string) string {
	if explicit != "" {
		candidates = []string{explicit}
	}
	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// structKeys lists the dotted viper keys of every leaf field of t.
// Embedded structs tagged ",squash" contribute their keys unprefixed.
func structKeys(t reflect.Type, prefix string) []string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	var keys []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, opts, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "-" {
			continue
		}
		if strings.Contains(opts, "squash") {
			keys = append(keys, structKeys(f.Type, prefix)...)
			continue
		}
		if name == "" {
			name = strings.ToLower(f.Name)
		}
		key := prefix + name
		ft := f.Type
		for ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.Struct && ft.PkgPath() != "time" {
			keys = append(keys, structKeys(ft, key+".")...)
			continue
		}
		keys = append(keys, key)
	}
	return keys
}
