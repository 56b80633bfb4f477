package config

import (
	"errors"

	"github.com/spf13/viper"
)

const (
	DefaultListenAddr = ":3000"
	DefaultSMTPPort   = 587
)

type MySQLConfig struct {
	Dsn             string `yaml:"dsn"`
	MaxIdleConns    int    `yaml:"maxIdleConns"`
	MaxOpenConns    int    `yaml:"maxOpenConns"`
	ConnMaxIdleTime int    `yaml:"connMaxIdleTime"`
	ConnMaxLifetime int    `yaml:"connMaxLifetime"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type Config struct {
	Debug      bool        `yaml:"debug"`
	ListenAddr string      `yaml:"listenAddr"`
	BaseURL    string      `yaml:"baseURL"`
	AdminEmail string      `yaml:"adminEmail"`
	MySQL      MySQLConfig `yaml:"mysql"`
	SMTP       SMTPConfig  `yaml:"smtp"`
}

func (c *Config) Sanitize() error {
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
	if c.SMTP.Port == 0 {
		c.SMTP.Port = DefaultSMTPPort
	}
	if c.MySQL.Dsn == "" {
		return errors.New("missing mysql dsn")
	}
	if c.BaseURL == "" {
		return errors.New("missing application base URL")
	}
	if c.AdminEmail == "" {
		return errors.New("missing admin notification email")
	}
	return nil
}

func LoadConfig(filename string) (*Config, error) {
	viper.SetConfigFile(filename)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Sanitize(); err != nil {
		return nil, err
	}
	return &config, nil
}
