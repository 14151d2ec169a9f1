package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	HTTP            HTTPConfig
	GRPC            GRPCConfig
	ShutdownTimeout time.Duration
}

type HTTPConfig struct {
	Host        string
	Port        int
	BodyLimit   string
	CORSOrigins []string
}

func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type GRPCConfig struct {
	Enabled bool
	Host    string
	Port    int
}

func (c GRPCConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
