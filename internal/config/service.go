package config

import "fmt"

type ServiceConfig struct {
	Name        string
	Environment string
	Version     string
}

type RedisConfig struct {
	Enabled       bool
	Host          string
	Port          int
	Password      string
	DB            int
	EventsChannel string
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
