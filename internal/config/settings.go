// Package config loads the five PostgreSQL connection settings from env
// files, the process environment or inline literals, and keeps the named
// profiles used by the pgenv command.
package config

import (
	"fmt"
	"net"
	"strings"
)

const (
	KeyHost     = "host"
	KeyPort     = "port"
	KeyDatabase = "database"
	KeyUser     = "user"
	KeyPassword = "password"
)

// RequiredKeys lists the settings needed to open a session, in canonical order.
var RequiredKeys = []string{KeyHost, KeyPort, KeyDatabase, KeyUser, KeyPassword}

// Settings is the typed form of the config mapping.
type Settings struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

// FromMap builds Settings from a mapping, failing with a MissingKeyError if
// any required key is absent.
func FromMap(values map[string]string) (Settings, error) {
	if missing := missingKeys(values); len(missing) > 0 {
		return Settings{}, &MissingKeyError{Keys: missing}
	}
	return Settings{
		Host:     values[KeyHost],
		Port:     values[KeyPort],
		Database: values[KeyDatabase],
		User:     values[KeyUser],
		Password: values[KeyPassword],
	}, nil
}

// Map returns the five-key mapping.
func (s Settings) Map() map[string]string {
	return map[string]string{
		KeyHost:     s.Host,
		KeyPort:     s.Port,
		KeyDatabase: s.Database,
		KeyUser:     s.User,
		KeyPassword: s.Password,
	}
}

// Address joins host and port, bracketing IPv6 hosts.
func (s Settings) Address() string {
	return net.JoinHostPort(s.Host, s.Port)
}

// Redacted renders the settings with the password masked.
func (s Settings) Redacted() string {
	password := ""
	if s.Password != "" {
		password = "*****"
	}
	return fmt.Sprintf("host=%s port=%s database=%s user=%s password=%s",
		s.Host, s.Port, s.Database, s.User, password)
}

func missingKeys(values map[string]string) []string {
	var missing []string
	for _, key := range RequiredKeys {
		if _, ok := values[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}

func envName(prefix, key string) string {
	return prefix + strings.ToUpper(key)
}
