package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config keys, also readable from the environment as SVOD_<KEY>.
const (
	KeyAPIBaseURL = "api_base_url"
	KeyOrigin     = "origin"
	KeyAPIToken   = "api_token"
	KeyStateDir   = "state_dir"
	KeyLogLevel   = "log_level"
)

const (
	envPrefix       = "SVOD"
	configName      = ".svod-cli"
	defaultStateDir = ".svod-cli"
)

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			logrus.WithError(err).Fatal("cannot resolve home directory")
		}

		// Search config in home directory with name ".svod-cli" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(configName)
	}

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()
	viper.SetDefault(KeyLogLevel, "info")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			logrus.WithError(err).Warn("config file could not be read, using defaults")
		}
	}
}

// SaveValue persists a single key to the config file, creating it if needed.
func SaveValue(key string, value any) error {
	viper.Set(key, value)

	if err := viper.WriteConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return viper.SafeWriteConfig()
		}
		// If it exists but failed to write, try writing to default path
		home, herr := os.UserHomeDir()
		if herr != nil {
			return err
		}
		return viper.WriteConfigAs(filepath.Join(home, configName+".yaml"))
	}
	return nil
}

// StateDir is where client-local persistent state (token, settings) lives.
func StateDir() string {
	if dir := viper.GetString(KeyStateDir); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultStateDir
	}
	return filepath.Join(home, defaultStateDir)
}
