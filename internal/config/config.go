package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LocalSourceConfig configures reading episodes from a local directory.
type LocalSourceConfig struct {
	Dir      string   `yaml:"dir"`
	Patterns []string `yaml:"patterns"`
	Encoding string   `yaml:"encoding"`
}

// DriveSourceConfig configures reading episodes from a cloud-drive folder.
// The access token is read from the environment variable named by TokenEnv.
type DriveSourceConfig struct {
	BaseURL     string `yaml:"base_url"`
	FolderID    string `yaml:"folder_id"`
	MimeType    string `yaml:"mime_type"`
	TokenEnv    string `yaml:"token_env"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// SourceConfig selects and configures the document source.
type SourceConfig struct {
	Type  string             `yaml:"type"`
	Local *LocalSourceConfig `yaml:"local,omitempty"`
	Drive *DriveSourceConfig `yaml:"drive,omitempty"`
}

// StopwordsConfig points at the stopword list.
type StopwordsConfig struct {
	File    string `yaml:"file"`
	Builtin string `yaml:"builtin,omitempty"`
}

// AnalysisConfig tunes the statistics pass and phrase search.
type AnalysisConfig struct {
	TopN        int    `yaml:"top_n"`
	PhraseMatch string `yaml:"phrase_match"`
}

// ExportConfig selects where the statistics table is written.
type ExportConfig struct {
	Type string `yaml:"type"`
	Path string `yaml:"path"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Source    SourceConfig    `yaml:"source"`
	Stopwords StopwordsConfig `yaml:"stopwords"`
	Analysis  AnalysisConfig  `yaml:"analysis"`
	Export    ExportConfig    `yaml:"export"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML config data and fills in defaults.
func Parse(data []byte) (*AppConfig, error) {
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/textstats/config.yaml.
// If neither exists, it writes defaults to ~/.config/textstats/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "textstats", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Source: SourceConfig{
			Type:  "local",
			Local: &LocalSourceConfig{Dir: "texte", Patterns: []string{"*.txt"}, Encoding: "utf-8"},
		},
		Stopwords: StopwordsConfig{File: "stopwords.txt"},
		Analysis:  AnalysisConfig{TopN: 20, PhraseMatch: "padded"},
		Export:    ExportConfig{Type: "csv", Path: "buchstatistiken.csv"},
	}
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Source.Type == "" {
		cfg.Source.Type = "local"
	}
	if cfg.Source.Type == "local" {
		if cfg.Source.Local == nil {
			cfg.Source.Local = &LocalSourceConfig{}
		}
		if cfg.Source.Local.Dir == "" {
			cfg.Source.Local.Dir = "texte"
		}
		if len(cfg.Source.Local.Patterns) == 0 {
			cfg.Source.Local.Patterns = []string{"*.txt"}
		}
		if cfg.Source.Local.Encoding == "" {
			cfg.Source.Local.Encoding = "utf-8"
		}
	}
	if cfg.Source.Type == "drive" && cfg.Source.Drive != nil {
		if cfg.Source.Drive.BaseURL == "" {
			cfg.Source.Drive.BaseURL = "https://www.googleapis.com/drive/v3"
		}
		if cfg.Source.Drive.MimeType == "" {
			cfg.Source.Drive.MimeType = "text/plain"
		}
		if cfg.Source.Drive.TokenEnv == "" {
			cfg.Source.Drive.TokenEnv = "DRIVE_ACCESS_TOKEN"
		}
		if cfg.Source.Drive.TimeoutSecs == 0 {
			cfg.Source.Drive.TimeoutSecs = 30
		}
	}
	if cfg.Analysis.TopN == 0 {
		cfg.Analysis.TopN = 20
	}
	if cfg.Analysis.PhraseMatch == "" {
		cfg.Analysis.PhraseMatch = "padded"
	}
	if cfg.Export.Type == "" {
		cfg.Export.Type = "csv"
	}
	if cfg.Export.Path == "" {
		switch cfg.Export.Type {
		case "csv":
			cfg.Export.Path = "buchstatistiken.csv"
		case "sqlite":
			cfg.Export.Path = "buchstatistiken.db"
		}
	}
}
