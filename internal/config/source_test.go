package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	return path
}

func TestLoadEnvFileAllKeys(t *testing.T) {
	path := writeEnvFile(t, `host=db.internal
port=5432
database=analytics
user=reporter
password="s3cr3t #1"
`)

	got, err := Load(EnvFile(path))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := map[string]string{
		"host":     "db.internal",
		"port":     "5432",
		"database": "analytics",
		"user":     "reporter",
		"password": "s3cr3t #1",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load() = %v, want %v", got, want)
	}
}

func TestLoadDropsUnrecognisedKeys(t *testing.T) {
	path := writeEnvFile(t, `host=localhost
port=5432
database=postgres
user=postgres
password=postgres
sslmode=disable
EXTRA=1
`)

	got, err := Load(EnvFile(path))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != len(RequiredKeys) {
		t.Errorf("Load() returned %d keys, want %d: %v", len(got), len(RequiredKeys), got)
	}
	if _, ok := got["sslmode"]; ok {
		t.Error("Load() should not return sslmode")
	}
}

func TestLoadMissingKeys(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "password missing",
			content: "host=h\nport=1\ndatabase=d\nuser=u\n",
			want:    []string{"password"},
		},
		{
			name:    "host and database missing",
			content: "port=1\nuser=u\npassword=p\n",
			want:    []string{"host", "database"},
		},
		{
			name:    "empty file",
			content: "",
			want:    []string{"host", "port", "database", "user", "password"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeEnvFile(t, tt.content)
			_, err := Load(EnvFile(path))
			if err == nil {
				t.Fatal("Load() error = nil, want missing key error")
			}
			if !errors.Is(err, ErrMissingKey) {
				t.Errorf("Load() error = %v, want ErrMissingKey", err)
			}

			var merr *MissingKeyError
			if !errors.As(err, &merr) {
				t.Fatalf("Load() error type = %T, want *MissingKeyError", err)
			}
			if !reflect.DeepEqual(merr.Keys, tt.want) {
				t.Errorf("MissingKeyError.Keys = %v, want %v", merr.Keys, tt.want)
			}
			if merr.Source != path {
				t.Errorf("MissingKeyError.Source = %q, want %q", merr.Source, path)
			}
		})
	}
}

func TestLoadEmptyValueCountsAsPresent(t *testing.T) {
	path := writeEnvFile(t, "host=h\nport=5432\ndatabase=d\nuser=u\npassword=\n")

	got, err := Load(EnvFile(path))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if v, ok := got["password"]; !ok || v != "" {
		t.Errorf("Load() password = %q, %v; want empty, true", v, ok)
	}
}

func TestLoadKeepsDollarInValues(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{name: "unquoted upper case", line: `password=pa$WORD1`, want: "pa$WORD1"},
		{name: "unquoted lower case", line: `password=pa$word1`, want: "pa$word1"},
		{name: "double quoted", line: `password="pa$WORD1"`, want: "pa$WORD1"},
		{name: "single quoted", line: `password='pa$WORD1'`, want: "pa$WORD1"},
		{name: "braces", line: `password=x${HOME}y`, want: "x${HOME}y"},
		{name: "trailing", line: `password=cost$`, want: "cost$"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeEnvFile(t, "host=localhost\nport=5432\ndatabase=app\nuser=app\n"+tt.line+"\n")

			got, err := Load(EnvFile(path))
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if got["password"] != tt.want {
				t.Errorf("Load() password = %q, want %q", got["password"], tt.want)
			}
		})
	}
}

func TestLoadEnvFileNotFound(t *testing.T) {
	_, err := Load(EnvFile(filepath.Join(t.TempDir(), "nope.env")))
	if err == nil {
		t.Fatal("Load() error = nil, want error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want os.ErrNotExist", err)
	}
}

func TestLiteral(t *testing.T) {
	s, err := LoadSettings(Literal("localhost", "5432", "shop", "admin", "pw"))
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	want := Settings{Host: "localhost", Port: "5432", Database: "shop", User: "admin", Password: "pw"}
	if s != want {
		t.Errorf("LoadSettings() = %+v, want %+v", s, want)
	}
}

func TestEnvironment(t *testing.T) {
	t.Setenv("PGENV_TEST_HOST", "10.0.0.1")
	t.Setenv("PGENV_TEST_PORT", "6543")
	t.Setenv("PGENV_TEST_DATABASE", "warehouse")
	t.Setenv("PGENV_TEST_USER", "etl")
	t.Setenv("PGENV_TEST_PASSWORD", "hunter2")

	s, err := LoadSettings(Environment("PGENV_TEST_"))
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if s.Host != "10.0.0.1" || s.Port != "6543" || s.Database != "warehouse" {
		t.Errorf("LoadSettings() = %+v", s)
	}
}

func TestEnvironmentMissing(t *testing.T) {
	t.Setenv("PGENV_PARTIAL_HOST", "localhost")

	_, err := Load(Environment("PGENV_PARTIAL_"))
	if !IsMissingKey(err) {
		t.Fatalf("Load() error = %v, want missing key error", err)
	}
	want := "missing connection settings in environment (PGENV_PARTIAL_*): port, database, user, password"
	if err.Error() != want {
		t.Errorf("Load() error = %q, want %q", err.Error(), want)
	}
}

func TestSettingsRedacted(t *testing.T) {
	s := Settings{Host: "h", Port: "1", Database: "d", User: "u", Password: "secret"}
	got := s.Redacted()
	want := "host=h port=1 database=d user=u password=*****"
	if got != want {
		t.Errorf("Redacted() = %q, want %q", got, want)
	}
}

func TestSettingsAddress(t *testing.T) {
	tests := []struct {
		host string
		want string
	}{
		{"localhost", "localhost:5432"},
		{"::1", "[::1]:5432"},
	}
	for _, tt := range tests {
		s := Settings{Host: tt.host, Port: "5432"}
		if got := s.Address(); got != tt.want {
			t.Errorf("Address() = %q, want %q", got, tt.want)
		}
	}
}
