// Package config loads per-environment connection profiles for fluentdb from
// a YAML file and FLUENTDB_* environment variables.
//
//	environment: production
//	profiles:
//	  production:
//	    driver: mysql
//	    host: db.internal
//	    database: test
//	    username: tester
//	    password: secret
//
// FLUENTDB_ENVIRONMENT picks the profile; FLUENTDB_DB_<FIELD> (for example
// FLUENTDB_DB_HOST or FLUENTDB_DB_PORT) overrides one field of it.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/viper"

	fluentdb "github.com/biyonik/go-fluent-db"
)

// EnvPrefix is the prefix of every environment variable Load reads.
const EnvPrefix = "FLUENTDB_"

// DefaultEnvironment is used when neither the file nor the environment names one.
const DefaultEnvironment = "development"

// Profile is one connection profile.
type Profile struct {
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Database string `mapstructure:"database"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Charset  string `mapstructure:"charset"`
	TLS      bool   `mapstructure:"tls"`
}

// Settings is the loaded configuration.
type Settings struct {
	Environment string             `mapstructure:"environment"`
	Profiles    map[string]Profile `mapstructure:"profiles"`

	// DB holds FLUENTDB_DB_* overrides; non-zero fields replace the active profile's.
	DB Profile `mapstructure:"db"`
}

// ErrUnknownEnvironment is returned by Active when no profile has the requested name.
var ErrUnknownEnvironment = errors.New("config: unknown environment")

// Load reads path (YAML) and the environment. An empty path looks for an
// optional fluentdb.yaml in the working directory.
func Load(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("fluentdb")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	// FLUENTDB_DB_HOST -> db.host
	for _, env := range os.Environ() {
		key, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		prop := strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
		if prop == "environment" {
			v.Set("environment", value)
			continue
		}
		if rest, found := strings.CutPrefix(prop, "db_"); found && rest != "" {
			v.Set("db."+rest, value)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &s, nil
}

// setDefaults registers the two stock profiles. Port and charset are left to
// the driver profile so a file can switch the driver without resetting them.
func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", DefaultEnvironment)

	for name, p := range map[string]Profile{
		"production":  {Database: "test", Username: "tester"},
		"development": {Database: "blog", Username: "root"},
	} {
		prefix := "profiles." + name + "."
		v.SetDefault(prefix+"driver", "mysql")
		v.SetDefault(prefix+"host", "localhost")
		v.SetDefault(prefix+"database", p.Database)
		v.SetDefault(prefix+"username", p.Username)
		v.SetDefault(prefix+"password", "")
	}
}

// Environments returns the profile names, sorted.
func (s *Settings) Environments() []string {
	names := make([]string, 0, len(s.Profiles))
	for n := range s.Profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Active returns the connection config of the selected environment with the
// FLUENTDB_DB_* overrides applied.
func (s *Settings) Active() (*fluentdb.Config, error) {
	return s.Profile(s.Environment)
}

// Profile returns the connection config of env with overrides applied.
func (s *Settings) Profile(env string) (*fluentdb.Config, error) {
	name := strings.ToLower(strings.TrimSpace(env))
	if name == "" {
		name = DefaultEnvironment
	}
	p, ok := s.Profiles[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (have %s)", ErrUnknownEnvironment, env, strings.Join(s.Environments(), ", "))
	}
	p = merge(p, s.DB)

	return &fluentdb.Config{
		Driver:   p.Driver,
		Host:     p.Host,
		Port:     p.Port,
		Database: p.Database,
		Username: p.Username,
		Password: p.Password,
		Charset:  p.Charset,
		TLS:      p.TLS,
	}, nil
}

func merge(base, over Profile) Profile {
	if over.Driver != "" {
		base.Driver = over.Driver
	}
	if over.Host != "" {
		base.Host = over.Host
	}
	if over.Port != 0 {
		base.Port = over.Port
	}
	if over.Database != "" {
		base.Database = over.Database
	}
	if over.Username != "" {
		base.Username = over.Username
	}
	if over.Password != "" {
		base.Password = over.Password
	}
	if over.Charset != "" {
		base.Charset = over.Charset
	}
	if over.TLS {
		base.TLS = true
	}
	return base
}
