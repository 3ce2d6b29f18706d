package core

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config holds all runtime settings for the portal client.
type Config struct {
	Env      string
	Debug    bool
	TestMode bool
	AppName  string
	Build    string

	API struct {
		BaseURL string
		Timeout time.Duration
	}

	Session struct {
		StateDir string
		TTL      time.Duration
	}

	RollbarToken string
}

// LoadConfig builds a Config from defaults, an optional .env.<env> file
// and ENV-prefixed environment variables (highest precedence).
func LoadConfig() (*Config, error) {
	conf := viper.New()
	conf.SetTypeByDefaultValue(true)

	// defaults
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "Portal Santa Rita")
	conf.SetDefault("build", "dev")
	conf.SetDefault("apiBaseURL", "http://localhost:5000/api")
	conf.SetDefault("apiTimeout", 30*time.Second)
	conf.SetDefault("sessionTTL", 24*time.Hour)
	conf.SetDefault("stateDir", "")
	conf.SetDefault("rollbarToken", "")

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "config.godotenv(%s)", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "config.os.Stat(%s)", dotEnvPath)
	}
	conf.AutomaticEnv()

	c := &Config{
		Env:          env,
		Debug:        conf.GetBool("debug"),
		TestMode:     conf.GetBool("testMode"),
		AppName:      conf.GetString("appName"),
		Build:        conf.GetString("build"),
		RollbarToken: conf.GetString("rollbarToken"),
	}
	c.API.BaseURL = strings.TrimRight(conf.GetString("apiBaseURL"), "/")
	c.API.Timeout = conf.GetDuration("apiTimeout")
	c.Session.TTL = conf.GetDuration("sessionTTL")

	c.Session.StateDir = conf.GetString("stateDir")
	if c.Session.StateDir == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, errors.Wrap(err, "config.os.UserConfigDir")
		}
		c.Session.StateDir = filepath.Join(dir, "portal")
	}
	return c, nil
}
