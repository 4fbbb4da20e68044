package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	// ProjectConfigFile is the name of the project-level config file
	ProjectConfigFile = "sitecheck.yaml"
	// UserConfigDir is the directory for user-level config
	UserConfigDir = ".config/sitecheck"
	// UserConfigFile is the name of the user-level config file
	UserConfigFile = "config.yaml"
)

// Loader handles configuration loading with layered precedence
type Loader struct {
	logger  *slog.Logger
	homeDir func() (string, error)
}

// NewLoader creates a new configuration loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger, homeDir: os.UserHomeDir}
}

// Load loads configuration with layered precedence:
//  1. Default config
//  2. User config (~/.config/sitecheck/config.yaml)
//  3. Project config (sitecheck.yaml in the site root or its parents),
//     or explicitPath when it is non-empty
//
// siteRoot seeds Site.Root unless a config file sets it.
func (l *Loader) Load(siteRoot, explicitPath string) (*Config, error) {
	config := DefaultConfig()
	if siteRoot != "" {
		config.Site.Root = siteRoot
	}

	// Load user config
	if userConfigPath := l.userConfigPath(); userConfigPath != "" {
		if err := config.MergeFile(userConfigPath); err == nil {
			l.logger.Debug("Loaded user config", slog.String("path", userConfigPath))
		} else if !errors.Is(err, fs.ErrNotExist) {
			l.logger.Warn("Failed to load user config", slog.String("path", userConfigPath), slog.String("error", err.Error()))
		}
	}

	// Load project config
	projectConfigPath := explicitPath
	if projectConfigPath == "" {
		projectConfigPath = l.findProjectConfig(config.Site.Root)
	}
	if projectConfigPath != "" {
		config.Site.Root = ""
		if err := config.MergeFile(projectConfigPath); err != nil {
			return nil, err
		}
		// A relative root in a config file is relative to that file.
		if config.Site.Root == "" || !filepath.IsAbs(config.Site.Root) {
			config.Site.Root = filepath.Join(filepath.Dir(projectConfigPath), config.Site.Root)
		}
		l.logger.Debug("Loaded project config", slog.String("path", projectConfigPath))
	} else {
		l.logger.Debug("No project config found")
	}

	// An explicit site root on the command line wins over config files.
	if siteRoot != "" {
		config.Site.Root = siteRoot
	}

	// Validate final config
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// EnsureProjectConfig writes a default sitecheck.yaml into dir unless one exists.
// It reports whether a file was created.
func (l *Loader) EnsureProjectConfig(dir string) (string, bool, error) {
	path := filepath.Join(dir, ProjectConfigFile)

	// Check if it already exists
	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	}

	if err := DefaultConfig().SaveToFile(path); err != nil {
		return path, false, err
	}

	l.logger.Info("Created default project config", slog.String("path", path))
	return path, true, nil
}

// userConfigPath returns the path to the user config file
func (l *Loader) userConfigPath() string {
	home, err := l.homeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}

// findProjectConfig searches for sitecheck.yaml in start and parent directories
func (l *Loader) findProjectConfig(start string) string {
	dir, err := filepath.Abs(start)
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(dir, ProjectConfigFile)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		// Move to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			break
		}
		dir = parent
	}

	return ""
}
