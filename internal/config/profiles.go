package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

var CfgPath = os.ExpandEnv("$HOME/.config/pgenv/")
var CfgFile = filepath.Join(CfgPath, "config.yaml")

// Notices receives one-off messages such as the creation of a blank file.
// It is stderr so that query output on stdout stays clean.
var Notices io.Writer = os.Stderr

type Profiles struct {
	CurrentProfile string              `yaml:"current_profile"`
	Profiles       map[string]*Profile `yaml:"profiles"`
	Style          Style               `yaml:"style"`

	path string
}

type Style struct {
	Accent string `yaml:"accent_color"`
}

// Profile points at an env file holding the five settings, plus the driver
// options used to reach the server.
type Profile struct {
	Name    string           `yaml:"name"`
	EnvFile string           `yaml:"env_file"`
	Driver  string           `yaml:"driver,omitempty"`
	SSLMode string           `yaml:"sslmode,omitempty"`
	Queries map[string]Query `yaml:"queries,omitempty"`
}

// Source returns the env file source of the profile.
func (p *Profile) Source() Source {
	return EnvFile(p.EnvFile)
}

// LoadProfiles reads the profile file, creating a blank one when absent.
func LoadProfiles(path string) (*Profiles, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(Notices, "Creating blank config file at", path)
			p := &Profiles{
				Profiles: make(map[string]*Profile),
				path:     path,
			}
			if err := p.Save(); err != nil {
				return nil, err
			}
			return p, nil
		}
		return nil, err
	}

	var p Profiles
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if p.Profiles == nil {
		p.Profiles = make(map[string]*Profile)
	}
	p.path = path
	return &p, nil
}

func (p *Profiles) Save() error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(p.path, data, 0644)
}

// Current returns the active profile, if any.
func (p *Profiles) Current() (*Profile, bool) {
	if p.CurrentProfile == "" {
		return nil, false
	}
	prof, ok := p.Profiles[p.CurrentProfile]
	return prof, ok
}

// Put stores prof under its name and makes it current.
func (p *Profiles) Put(prof *Profile) {
	if prof.Queries == nil {
		prof.Queries = make(map[string]Query)
	}
	p.Profiles[prof.Name] = prof
	p.CurrentProfile = prof.Name
}

// Remove deletes a profile, clearing the current one if it was removed.
func (p *Profiles) Remove(name string) error {
	if _, ok := p.Profiles[name]; !ok {
		return fmt.Errorf("profile '%s' does not exist", name)
	}
	delete(p.Profiles, name)
	if p.CurrentProfile == name {
		p.CurrentProfile = ""
	}
	return nil
}
