package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Environment variables overriding the config file.
const (
	EnvTodoistToken = "TODOIST_API_TOKEN"
	EnvHabitifyKey  = "HABITIFY_API_KEY"
)

const configFileName = "config.toml"

// Config is the full habitsync configuration.
type Config struct {
	Todoist  TodoistConfig  `toml:"todoist"`
	Habitify HabitifyConfig `toml:"habitify"`

	// DataDir overrides where the state database lives.
	DataDir string `toml:"data_dir,omitempty"`
}

// TodoistConfig configures the to-do service client.
type TodoistConfig struct {
	Token   string `toml:"token,omitempty"`
	BaseURL string `toml:"base_url,omitempty"`
}

// HabitifyConfig configures the habit service client.
type HabitifyConfig struct {
	APIKey  string `toml:"api_key,omitempty"`
	BaseURL string `toml:"base_url,omitempty"`
}

// ConfigStore loads and persists the TOML configuration file.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	config   Config
}

// NewConfigStore creates a config store rooted at configDir.
// If configDir is empty, defaults to ~/.habitsync. The config file is read
// if it exists; environment variables override credentials from the file.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".habitsync")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		filePath: filepath.Join(configDir, configFileName),
	}

	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Config returns a copy of the effective configuration.
func (s *ConfigStore) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// Path returns the config file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

// SetTodoistToken stores the Todoist token and persists immediately.
func (s *ConfigStore) SetTodoistToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.config.Todoist.Token = token
	return s.save()
}

// SetHabitifyKey stores the Habitify API key and persists immediately.
func (s *ConfigStore) SetHabitifyKey(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.config.Habitify.APIKey = key
	return s.save()
}

// load reads the config file and applies environment overrides.
func (s *ConfigStore) load() error {
	// Cron deployments commonly keep credentials in a .env next to the
	// crontab entry's working directory. Missing file is fine.
	_ = godotenv.Load()

	data, err := os.ReadFile(s.filePath)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &s.config); err != nil {
			return fmt.Errorf("parsing %s: %w", s.filePath, err)
		}
	case os.IsNotExist(err):
		// First run, defaults only.
	default:
		return err
	}

	if token := os.Getenv(EnvTodoistToken); token != "" {
		s.config.Todoist.Token = token
	}
	if key := os.Getenv(EnvHabitifyKey); key != "" {
		s.config.Habitify.APIKey = key
	}

	return nil
}

// save writes the configuration to the TOML file (caller must hold lock).
// Credentials end up in the file, so it is not group or world readable.
func (s *ConfigStore) save() error {
	data, err := toml.Marshal(s.config)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	return os.WriteFile(s.filePath, data, 0600)
}
