// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	skipMailCheck  = pflag.Bool("skip-mail-check", false, "Skips the SMTP configuration check. Mails won't be sent")
	validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}
)

func genSecret() string {
	b := make([]byte, 64)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "app_log_level")
	v.BindEnv("app.env", "app_env")

	v.BindEnv("host.port", "host_port")
	v.BindEnv("host.domain", "host_domain")
	v.BindEnv("host.cors", "host_cors")

	v.BindEnv("jwt.access_secret", "jwt_access_secret")
	v.BindEnv("jwt.refresh_secret", "jwt_refresh_secret")
	v.BindEnv("jwt.activation_secret", "jwt_activation_secret")
	v.BindEnv("jwt.access_ttl", "jwt_access_ttl")
	v.BindEnv("jwt.refresh_ttl", "jwt_refresh_ttl")

	v.BindEnv("mail.host", "mail_host")
	v.BindEnv("mail.port", "mail_port")
	v.BindEnv("mail.sender", "mail_sender")
	v.BindEnv("mail.password", "mail_password")

	v.BindEnv("aws.access_key_id", "aws_access_key_id")
	v.BindEnv("aws.secret_access_key", "aws_secret_access_key")
	v.BindEnv("aws.region", "aws_region")
	v.BindEnv("aws.bucket", "aws_bucket")
	v.BindEnv("aws.public_url", "aws_public_url")

	v.BindEnv("security.rate_limit", "security_rate_limit")

	v.BindEnv("upload.max_avatar_size", "upload_max_avatar_size")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.env", "local")

	v.SetDefault("host.port", 8080)
	v.SetDefault("host.domain", "localhost")

	v.SetDefault("jwt.access_ttl", "5m")
	v.SetDefault("jwt.refresh_ttl", "24h")

	v.SetDefault("security.rate_limit", 10)

	// Avatars are sent as base64 blobs so leave some headroom
	v.SetDefault("upload.max_avatar_size", 8)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); ok {
			return errors.New("config.toml file is missing")
		}

		return fmt.Errorf("failed to read config file, %w", err)
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if err := setupLogger(v.GetString("app.log_level"), v.GetString("app.env")); err != nil {
		return err
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	for _, key := range []string{"jwt.access_secret", "jwt.refresh_secret", "jwt.activation_secret"} {
		if v.GetString(key) == "" {
			fmt.Println("WARNING: You haven't set " + key + ", so a secret has been generated for you. Please set it as an environment variable or in the config.toml file.\nYour random secret:\n\n" + genSecret() + "\n\nPaste it into your config.toml file.")
			os.Exit(0)
		}
	}

	if v.GetString("jwt.access_secret") == v.GetString("jwt.refresh_secret") ||
		v.GetString("jwt.access_secret") == v.GetString("jwt.activation_secret") {
		return errors.New("jwt secrets must be distinct from each other")
	}

	if v.GetDuration("jwt.access_ttl") <= 0 {
		return errors.New("jwt.access_ttl must be bigger than 0")
	}

	if v.GetDuration("jwt.refresh_ttl") <= 0 {
		return errors.New("jwt.refresh_ttl must be bigger than 0")
	}

	if !*skipMailCheck {
		if v.GetString("mail.host") == "" {
			return errors.New("mail host can't be empty")
		}
		if v.GetInt("mail.port") <= 0 {
			return errors.New("invalid mail port provided")
		}
		if v.GetString("mail.sender") == "" {
			return errors.New("mail sender address can't be empty")
		}
	}

	if v.GetString("aws.access_key_id") == "" {
		return errors.New("account access id can't be empty")
	}
	if v.GetString("aws.secret_access_key") == "" {
		return errors.New("secret access key can't be empty")
	}
	if v.GetString("aws.bucket") == "" {
		return errors.New("bucket can't be empty")
	}
	if v.GetString("aws.public_url") == "" {
		return errors.New("bucket public url can't be empty")
	}

	if v.GetInt("security.rate_limit") <= 0 {
		return errors.New("rate limit must be bigger than 0")
	}

	if v.GetInt("upload.max_avatar_size") <= 0 {
		return errors.New("max avatar size must be bigger than 0")
	}

	v.Set("upload.max_avatar_size", v.GetInt64("upload.max_avatar_size")<<20)
	return nil
}

func setupLogger(level, env string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("failed to parse log level, %w", err)
	}

	var cfg zap.Config
	if env == "prod" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	cfg.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger, %w", err)
	}

	zap.ReplaceGlobals(logger)
	return nil
}
