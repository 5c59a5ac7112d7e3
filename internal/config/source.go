package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is read when no profile names another file.
const DefaultEnvFile = ".env"

// Source is anything that yields raw key/value connection settings.
type Source interface {
	Values() (map[string]string, error)
}

// Named sources report where their values came from in errors.
type Named interface {
	Name() string
}

type literalSource map[string]string

// Literal is the inline variant: the five settings given directly.
func Literal(host, port, database, user, password string) Source {
	return literalSource(Settings{
		Host:     host,
		Port:     port,
		Database: database,
		User:     user,
		Password: password,
	}.Map())
}

func (l literalSource) Values() (map[string]string, error) {
	values := make(map[string]string, len(l))
	for k, v := range l {
		values[k] = v
	}
	return values, nil
}

func (l literalSource) Name() string { return "inline settings" }

type envFileSource string

// EnvFile reads settings from a dotenv formatted file.
func EnvFile(path string) Source {
	if path == "" {
		path = DefaultEnvFile
	}
	return envFileSource(path)
}

func (f envFileSource) Values() (map[string]string, error) {
	data, err := os.ReadFile(string(f))
	if err != nil {
		return nil, fmt.Errorf("read env file %s: %w", string(f), err)
	}
	values, err := godotenv.Unmarshal(escapeDollars(string(data)))
	if err != nil {
		return nil, fmt.Errorf("parse env file %s: %w", string(f), err)
	}
	return values, nil
}

// escapeDollars turns every bare $ into \$ so godotenv keeps it literally
// instead of expanding $NAME. Single-quoted values are never expanded and
// are left as written.
func escapeDollars(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		sep := strings.IndexAny(line, "=:")
		if sep < 0 {
			continue
		}
		value := strings.TrimLeft(line[sep+1:], " \t")
		if strings.HasPrefix(value, "'") {
			continue
		}

		var b strings.Builder
		b.WriteString(line[:sep+1])
		rest := line[sep+1:]
		for j := 0; j < len(rest); j++ {
			if rest[j] == '$' && (j == 0 || rest[j-1] != '\\') {
				b.WriteByte('\\')
			}
			b.WriteByte(rest[j])
		}
		lines[i] = b.String()
	}
	return strings.Join(lines, "\n")
}

func (f envFileSource) Name() string { return string(f) }

type environmentSource string

// Environment reads prefix+KEY variables (e.g. PG_HOST) from the process
// environment.
func Environment(prefix string) Source {
	return environmentSource(prefix)
}

func (e environmentSource) Values() (map[string]string, error) {
	values := make(map[string]string)
	for _, key := range RequiredKeys {
		if v, ok := os.LookupEnv(envName(string(e), key)); ok {
			values[key] = v
		}
	}
	return values, nil
}

func (e environmentSource) Name() string {
	return fmt.Sprintf("environment (%s*)", string(e))
}

// Load returns exactly the recognised keys of src, values unaltered.
// Unrecognised keys are dropped; a missing key is an error.
func Load(src Source) (map[string]string, error) {
	if src == nil {
		return nil, errors.New("config source is nil")
	}
	raw, err := src.Values()
	if err != nil {
		return nil, err
	}

	values := make(map[string]string, len(RequiredKeys))
	for _, key := range RequiredKeys {
		if v, ok := raw[key]; ok {
			values[key] = v
		}
	}

	if missing := missingKeys(values); len(missing) > 0 {
		merr := &MissingKeyError{Keys: missing}
		if n, ok := src.(Named); ok {
			merr.Source = n.Name()
		}
		return nil, merr
	}
	return values, nil
}

// LoadSettings is Load followed by FromMap.
func LoadSettings(src Source) (Settings, error) {
	values, err := Load(src)
	if err != nil {
		return Settings{}, err
	}
	return FromMap(values)
}
