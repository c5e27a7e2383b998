package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd

const (
	userConfigDir    = ".config/lacpctl"
	projectConfigDir = ".lacpctl"
	configFileName   = "config.yaml"
)

// LoadConfig loads the lacpctl configuration by layering default, user, and
// project settings. User and project files are both optional; a missing file
// simply leaves the lower layer in place.
func LoadConfig() (LacpctlConfig, error) {
	// 1. Start with the default configuration
	config := GetDefaultConfig()

	// 2. Overlay the user-specific configuration, if any
	userConfigPath, err := getUserConfigPath()
	if err != nil {
		// Not fatal; user config is optional
		fmt.Fprintf(os.Stderr, "Warning: Could not determine user config path: %v\n", err)
	} else {
		if _, err := os.Stat(userConfigPath); !os.IsNotExist(err) {
			userConfig, err := loadConfigFromFile(userConfigPath)
			if err != nil {
				return LacpctlConfig{}, fmt.Errorf("error loading user config from %s: %w", userConfigPath, err)
			}
			config = mergeConfigs(config, userConfig)
		}
	}

	// 3. Overlay the project-specific configuration, if any
	projectConfigPath, err := getProjectConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not determine project config path: %v\n", err)
	} else {
		if _, err := os.Stat(projectConfigPath); !os.IsNotExist(err) {
			projectConfig, err := loadConfigFromFile(projectConfigPath)
			if err != nil {
				return LacpctlConfig{}, fmt.Errorf("error loading project config from %s: %w", projectConfigPath, err)
			}
			config = mergeConfigs(config, projectConfig)
		}
	}

	return config, nil
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

// loadConfigFromFile loads a LacpctlConfig from a YAML file.
func loadConfigFromFile(filePath string) (LacpctlConfig, error) {
	var config LacpctlConfig
	data, err := os.ReadFile(filePath)
	if err != nil {
		return LacpctlConfig{}, err
	}
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return LacpctlConfig{}, err
	}
	return config, nil
}

// mergeConfigs merges 'overlay' config into 'base' config. Zero values in
// the overlay leave the base value untouched.
func mergeConfigs(base, overlay LacpctlConfig) LacpctlConfig {
	merged := base

	if overlay.GlobalSettings.LogLevel != "" {
		merged.GlobalSettings.LogLevel = overlay.GlobalSettings.LogLevel
	}

	if overlay.Suite.DevicesDir != "" {
		merged.Suite.DevicesDir = overlay.Suite.DevicesDir
	}
	if overlay.Suite.TestsDir != "" {
		merged.Suite.TestsDir = overlay.Suite.TestsDir
	}
	if overlay.Suite.BundlePrefix != "" {
		merged.Suite.BundlePrefix = overlay.Suite.BundlePrefix
	}
	if overlay.Suite.EntryPoint != "" {
		merged.Suite.EntryPoint = overlay.Suite.EntryPoint
	}
	if overlay.Suite.Interpreter != "" {
		merged.Suite.Interpreter = overlay.Suite.Interpreter
	}
	if overlay.Suite.TimeoutSeconds != 0 {
		merged.Suite.TimeoutSeconds = overlay.Suite.TimeoutSeconds
	}
	if overlay.Suite.DeviceTimeoutSeconds != 0 {
		merged.Suite.DeviceTimeoutSeconds = overlay.Suite.DeviceTimeoutSeconds
	}

	return merged
}

// GetUserConfigDir returns the user configuration directory path.
func GetUserConfigDir() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir), nil
}
