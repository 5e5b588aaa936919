package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/kailas-cloud/fundex/internal/domain/page"
	"github.com/kailas-cloud/fundex/pkg/client"
)

const (
	configFileName = "fundctl"
	configFileType = "yaml"
	envPrefix      = "FUNDCTL"

	cfgKeyServer        = "server"
	cfgKeyPageSize      = "page_size"
	cfgKeyAutosaveDelay = "autosave_delay"
	cfgKeyTimeout       = "timeout"

	defaultServer = "http://localhost:3000"
)

// loadConfig resolves settings with precedence flag > FUNDCTL_* env > config
// file > default. An explicit --config path must exist; the default search
// locations ($HOME/.config/fundex, then the working directory) are optional.
func loadConfig(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyServer, defaultServer)
	v.SetDefault(cfgKeyPageSize, page.DefaultSize)
	v.SetDefault(cfgKeyAutosaveDelay, client.DefaultAutosaveDelay)
	v.SetDefault(cfgKeyTimeout, 10*time.Second)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		return v, nil
	}

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "fundex"))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}
