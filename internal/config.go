package internal

import (
	"fmt"

	"github.com/spf13/viper"
)

type ToydbConfig struct {
	AppName string `mapstructure:"app_name"`

	Database struct {
		Name string `mapstructure:"name"`
	} `mapstructure:"database"`

	Server struct {
		Addr  string `mapstructure:"addr"`
		Debug bool   `mapstructure:"debug"`
	} `mapstructure:"server"`
}

// LoadConfig reads a YAML config file. An empty path yields the defaults.
func LoadConfig(path string) (*ToydbConfig, error) {
	v := viper.New()
	v.SetDefault("app_name", "toydb")
	v.SetDefault("database.name", "toydb")
	v.SetDefault("server.addr", "127.0.0.1:8642")
	v.SetDefault("server.debug", false)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg ToydbConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}
