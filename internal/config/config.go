// Package config provides environment-variable-first configuration loading
// with an optional JSON or YAML file as the base layer.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults matching common mail provider setups: implicit TLS submission on
// 465, IMAP over TLS on 993.
const (
	defaultSMTPPort       = 465
	defaultTimeoutSeconds = 30
	defaultIMAPPort       = 993
	defaultSentFolder     = "Sent"
)

// Config holds the complete application configuration. It is loaded once
// and never mutated afterwards.
type Config struct {
	SMTP     SMTPConfig
	IMAP     IMAPConfig
	SES      SESConfig
	TLS      TLSConfig
	Logging  LoggingConfig
	Provider string
}

// SMTPConfig holds the SMTP submission credentials and connection mode.
type SMTPConfig struct {
	Host           string
	Port           int
	UseStartTLS    bool
	Username       string
	Password       string
	TimeoutSeconds int
}

// Timeout returns the connect/IO timeout as a duration.
func (c SMTPConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// IMAPConfig controls the best-effort copy of sent mail into a mailbox.
type IMAPConfig struct {
	Host       string
	Port       int
	SaveToSent bool
	SentFolder string
}

// SESConfig holds the AWS SES v2 delivery backend configuration.
type SESConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Sender          string
}

// TLSConfig holds client-side TLS options for the SMTP and IMAP connections.
type TLSConfig struct {
	CAFile             string
	InsecureSkipVerify bool
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string
}

// fileValues is the on-disk document shape: the flat keys documented for
// config.json. Pointer fields distinguish absent keys from zero values so
// the file only overrides what it actually sets.
type fileValues struct {
	SMTPHost              *string `json:"smtp_host" yaml:"smtp_host"`
	SMTPPort              *int    `json:"smtp_port" yaml:"smtp_port"`
	SMTPUseTLS            *bool   `json:"smtp_use_tls" yaml:"smtp_use_tls"`
	Username              *string `json:"username" yaml:"username"`
	Password              *string `json:"password" yaml:"password"`
	TimeoutSeconds        *int    `json:"timeout_seconds" yaml:"timeout_seconds"`
	IMAPHost              *string `json:"imap_host" yaml:"imap_host"`
	IMAPPort              *int    `json:"imap_port" yaml:"imap_port"`
	SaveToSent            *bool   `json:"save_to_sent" yaml:"save_to_sent"`
	SentFolder            *string `json:"sent_folder" yaml:"sent_folder"`
	Provider              *string `json:"provider" yaml:"provider"`
	SESRegion             *string `json:"ses_region" yaml:"ses_region"`
	SESAccessKeyID        *string `json:"ses_access_key_id" yaml:"ses_access_key_id"`
	SESSecretAccessKey    *string `json:"ses_secret_access_key" yaml:"ses_secret_access_key"`
	SESSender             *string `json:"ses_sender" yaml:"ses_sender"`
	TLSCAFile             *string `json:"tls_ca_file" yaml:"tls_ca_file"`
	TLSInsecureSkipVerify *bool   `json:"tls_insecure_skip_verify" yaml:"tls_insecure_skip_verify"`
	LogLevel              *string `json:"log_level" yaml:"log_level"`
}

// Load loads configuration from environment variables only.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.applyDefaults()
	cfg.applyEnvVars()
	return cfg, nil
}

// LoadFromFile loads configuration from a JSON or YAML file as the base
// layer, then overrides with environment variables. The decoder is chosen
// by file extension; anything that is not .yaml/.yml is treated as JSON.
func LoadFromFile(path string) (*Config, error) {
	cfg := &Config{}
	cfg.applyDefaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var vals fileValues
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &vals); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &vals); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}
	if err := vals.checkRequired(); err != nil {
		return nil, err
	}
	vals.apply(cfg)

	// Environment variables always override file values
	cfg.applyEnvVars()

	return cfg, nil
}

// checkRequired enforces that the config file carries the five core keys.
// A key may be omitted only when the corresponding environment variable
// supplies the value, since the environment always overrides the file.
func (v *fileValues) checkRequired() error {
	required := []struct {
		key string
		set bool
		env string
	}{
		{"smtp_host", v.SMTPHost != nil, "SMTP_HOST"},
		{"smtp_port", v.SMTPPort != nil, "SMTP_PORT"},
		{"smtp_use_tls", v.SMTPUseTLS != nil, "SMTP_USE_TLS"},
		{"username", v.Username != nil, "SMTP_USERNAME"},
		{"password", v.Password != nil, "SMTP_PASSWORD"},
	}
	for _, r := range required {
		if !r.set && os.Getenv(r.env) == "" {
			return fmt.Errorf("missing required key %s in config file", r.key)
		}
	}
	return nil
}

// Validate checks that the fields every send depends on are present and
// sane. Security-relevant fields get no silent defaults, and error text
// never includes the password value.
func (c *Config) Validate() error {
	if c.SMTP.Host == "" {
		return fmt.Errorf("smtp_host is required")
	}
	if c.SMTP.Port < 1 || c.SMTP.Port > 65535 {
		return fmt.Errorf("smtp_port must be between 1 and 65535, got %d", c.SMTP.Port)
	}
	if c.SMTP.Username == "" {
		return fmt.Errorf("username is required")
	}
	if c.SMTP.Password == "" {
		return fmt.Errorf("password is required")
	}
	if c.SMTP.TimeoutSeconds < 1 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", c.SMTP.TimeoutSeconds)
	}
	return nil
}

// SESConfigured returns true if the SES backend has its required fields.
func (c *Config) SESConfigured() bool {
	return c.SES.Region != "" && c.SES.Sender != ""
}

// IMAPHost returns the IMAP host, falling back to the SMTP host when unset.
func (c *Config) IMAPHost() string {
	if c.IMAP.Host != "" {
		return c.IMAP.Host
	}
	return c.SMTP.Host
}

// applyDefaults sets default values for fields that have safe defaults.
// Host and credentials intentionally have none.
func (c *Config) applyDefaults() {
	c.SMTP.Port = defaultSMTPPort
	c.SMTP.TimeoutSeconds = defaultTimeoutSeconds
	c.IMAP.Port = defaultIMAPPort
	c.IMAP.SaveToSent = true
	c.IMAP.SentFolder = defaultSentFolder
	c.Logging.Level = "info"
}

// apply copies the file document onto the configuration, overriding only
// the keys present in the file.
func (v *fileValues) apply(c *Config) {
	setString(&c.SMTP.Host, v.SMTPHost)
	setInt(&c.SMTP.Port, v.SMTPPort)
	setBool(&c.SMTP.UseStartTLS, v.SMTPUseTLS)
	setString(&c.SMTP.Username, v.Username)
	setString(&c.SMTP.Password, v.Password)
	setInt(&c.SMTP.TimeoutSeconds, v.TimeoutSeconds)
	setString(&c.IMAP.Host, v.IMAPHost)
	setInt(&c.IMAP.Port, v.IMAPPort)
	setBool(&c.IMAP.SaveToSent, v.SaveToSent)
	setString(&c.IMAP.SentFolder, v.SentFolder)
	setString(&c.Provider, v.Provider)
	setString(&c.SES.Region, v.SESRegion)
	setString(&c.SES.AccessKeyID, v.SESAccessKeyID)
	setString(&c.SES.SecretAccessKey, v.SESSecretAccessKey)
	setString(&c.SES.Sender, v.SESSender)
	setString(&c.TLS.CAFile, v.TLSCAFile)
	setBool(&c.TLS.InsecureSkipVerify, v.TLSInsecureSkipVerify)
	setString(&c.Logging.Level, v.LogLevel)
}

// applyEnvVars overrides configuration with environment variable values.
// Only non-empty environment variables override existing values.
func (c *Config) applyEnvVars() {
	if v := os.Getenv("SMTP_HOST"); v != "" {
		c.SMTP.Host = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.SMTP.Port = port
		}
	}
	if v := os.Getenv("SMTP_USE_TLS"); v != "" {
		if b, err := strconv.ParseBool(strings.ToLower(v)); err == nil {
			c.SMTP.UseStartTLS = b
		}
	}
	if v := os.Getenv("SMTP_USERNAME"); v != "" {
		c.SMTP.Username = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		c.SMTP.Password = v
	}
	if v := os.Getenv("SMTP_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			c.SMTP.TimeoutSeconds = secs
		}
	}

	if v := os.Getenv("IMAP_HOST"); v != "" {
		c.IMAP.Host = v
	}
	if v := os.Getenv("IMAP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.IMAP.Port = port
		}
	}
	if v := os.Getenv("SAVE_TO_SENT"); v != "" {
		if b, err := strconv.ParseBool(strings.ToLower(v)); err == nil {
			c.IMAP.SaveToSent = b
		}
	}
	if v := os.Getenv("SENT_FOLDER"); v != "" {
		c.IMAP.SentFolder = v
	}

	if v := os.Getenv("PROVIDER"); v != "" {
		c.Provider = strings.ToLower(v)
	}
	if v := os.Getenv("SES_REGION"); v != "" {
		c.SES.Region = v
	}
	if v := os.Getenv("SES_ACCESS_KEY_ID"); v != "" {
		c.SES.AccessKeyID = v
	}
	if v := os.Getenv("SES_SECRET_ACCESS_KEY"); v != "" {
		c.SES.SecretAccessKey = v
	}
	if v := os.Getenv("SES_SENDER"); v != "" {
		c.SES.Sender = v
	}

	if v := os.Getenv("TLS_CA_FILE"); v != "" {
		c.TLS.CAFile = v
	}
	if v := os.Getenv("TLS_INSECURE_SKIP_VERIFY"); v != "" {
		if b, err := strconv.ParseBool(strings.ToLower(v)); err == nil {
			c.TLS.InsecureSkipVerify = b
		}
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
