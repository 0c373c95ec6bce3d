// Package config stores the moltbook CLI's connection profiles.
//
// The file is YAML, found by walking up from the working directory to the
// nearest .moltbook/config.yaml and falling back to ~/.moltbook/config.yaml.
// MOLTBOOK_API_KEY, MOLTBOOK_BASE_URL, MOLTBOOK_PROFILE and MOLTBOOK_FORMAT
// override what the file says.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/zalando/go-keyring"
	yamlv3 "gopkg.in/yaml.v3"
)

const (
	dirName  = ".moltbook"
	fileName = "config.yaml"

	envPrefix      = "MOLTBOOK_"
	keyringService = "moltbook"

	// DefaultProfile is the profile name used when none is given.
	DefaultProfile = "main"
)

// ErrNotConnected means no credential is configured for the active profile.
var ErrNotConnected = errors.New("not connected. run: moltbook connect --api-key <key>")

type Config struct {
	Version        int                `koanf:"version" yaml:"version"`
	DefaultProfile string             `koanf:"default_profile" yaml:"default_profile"`
	Profiles       map[string]Profile `koanf:"profiles" yaml:"profiles"`
	Preferences    map[string]string  `koanf:"preferences" yaml:"preferences,omitempty"`

	env  Env
	path string
}

// Profile is one saved connection. With Keyring set the key lives in the OS
// keyring and APIKey is empty on disk.
type Profile struct {
	BaseURL     string `koanf:"base_url" yaml:"base_url,omitempty"`
	APIKey      string `koanf:"api_key" yaml:"api_key,omitempty"`
	Agent       string `koanf:"agent" yaml:"agent,omitempty"`
	Keyring     bool   `koanf:"keyring" yaml:"keyring,omitempty"`
	ConnectedAt string `koanf:"connected_at" yaml:"connected_at,omitempty"`
}

// Env holds the MOLTBOOK_* overrides.
type Env struct {
	APIKey  string `koanf:"api_key"`
	BaseURL string `koanf:"base_url"`
	Profile string `koanf:"profile"`
	Format  string `koanf:"format"`
}

// Credentials is what a command needs to build a client.
type Credentials struct {
	Profile string
	BaseURL string
	APIKey  string
	Agent   string
}

func defaults() *Config {
	return &Config{
		Version:        1,
		DefaultProfile: DefaultProfile,
		Profiles:       map[string]Profile{},
		Preferences:    map[string]string{},
	}
}

// Path returns the config file in effect for the working directory.
func Path() (string, error) {
	if p, ok := findLocalPath(); ok {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, dirName, fileName), nil
}

// LocalPath returns the config file inside the working directory.
func LocalPath() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, dirName, fileName), nil
}

func findLocalPath() (string, bool) {
	dir, err := os.Getwd()
	if err != nil {
		return "", false
	}
	for {
		candidate := filepath.Join(dir, dirName, fileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func Load() (*Config, error) {
	p, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(p)
}

// LoadFromPath layers defaults, the YAML file at p when it exists, and the
// environment.
func LoadFromPath(p string) (*Config, error) {
	c := defaults()
	c.path = p

	k := koanf.New(".")
	if _, err := os.Stat(p); err == nil {
		if err := k.Load(file.Provider(p), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if err := k.UnmarshalWithConf("", c, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	ek := koanf.New(".")
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	})
	if err := ek.Load(envProvider, nil); err != nil {
		return nil, err
	}
	if err := ek.UnmarshalWithConf("", &c.env, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if c.Profiles == nil {
		c.Profiles = map[string]Profile{}
	}
	if c.Preferences == nil {
		c.Preferences = map[string]string{}
	}
	if c.DefaultProfile == "" {
		c.DefaultProfile = DefaultProfile
	}
	if c.Version == 0 {
		c.Version = 1
	}
	return c, nil
}

// Save writes c back to the file it was loaded from.
func Save(c *Config) error {
	p := c.path
	if p == "" {
		var err error
		if p, err = Path(); err != nil {
			return err
		}
	}
	return SaveToPath(c, p)
}

func SaveToPath(c *Config, p string) error {
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	b, err := yamlv3.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.WriteFile(p, b, 0o600); err != nil {
		return err
	}
	c.path = p
	return nil
}

// File returns the path c is read from and saved to.
func (c *Config) File() string {
	return c.path
}

// Env returns the environment overrides seen at load time.
func (c *Config) Env() Env {
	return c.env
}

// ActiveProfile returns the profile name commands use: MOLTBOOK_PROFILE, then
// the file's default.
func (c *Config) ActiveProfile() string {
	if c.env.Profile != "" {
		return c.env.Profile
	}
	return c.DefaultProfile
}

// SetProfile saves p under name and makes it the default. With p.Keyring the
// key moves into the OS keyring.
func (c *Config) SetProfile(name string, p Profile) error {
	if name == "" {
		name = DefaultProfile
	}
	if p.Keyring && p.APIKey != "" {
		if err := keyring.Set(keyringService, name, p.APIKey); err != nil {
			return fmt.Errorf("store api key in keyring: %w", err)
		}
		p.APIKey = ""
	}
	p.ConnectedAt = time.Now().UTC().Format(time.RFC3339)
	c.Profiles[name] = p
	c.DefaultProfile = name
	return nil
}

// RemoveProfile deletes name and its keyring entry. It reports whether the
// profile existed.
func (c *Config) RemoveProfile(name string) (bool, error) {
	p, ok := c.Profiles[name]
	if !ok {
		return false, nil
	}
	if p.Keyring {
		if err := keyring.Delete(keyringService, name); err != nil && !errors.Is(err, keyring.ErrNotFound) {
			return true, fmt.Errorf("remove api key from keyring: %w", err)
		}
	}
	delete(c.Profiles, name)
	return true, nil
}

// Resolve returns the credentials for profile, or for the active profile
// when profile is empty. MOLTBOOK_API_KEY and MOLTBOOK_BASE_URL win over
// the stored values.
func (c *Config) Resolve(profile string) (Credentials, error) {
	if profile == "" {
		profile = c.ActiveProfile()
	}
	creds := Credentials{Profile: profile}

	p, ok := c.Profiles[profile]
	if ok {
		creds.BaseURL = p.BaseURL
		creds.APIKey = p.APIKey
		creds.Agent = p.Agent
		if p.Keyring && c.env.APIKey == "" {
			key, err := keyring.Get(keyringService, profile)
			if err != nil {
				return Credentials{}, fmt.Errorf("read api key from keyring: %w", err)
			}
			creds.APIKey = key
		}
	}
	if c.env.APIKey != "" {
		creds.APIKey = c.env.APIKey
	}
	if c.env.BaseURL != "" {
		creds.BaseURL = c.env.BaseURL
	}
	if strings.TrimSpace(creds.APIKey) == "" {
		return Credentials{}, ErrNotConnected
	}
	return creds, nil
}
