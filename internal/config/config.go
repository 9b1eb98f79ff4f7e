// Package config provides configuration helpers for go-panda commands.
package config

import (
	"fmt"
	"os"
)

// Defaults for command-line tools.
const (
	DefaultControlPort = "9010"
	DefaultMonitorPort = "8080"
)

// RobotAddr returns the controller address from the PANDA_ADDR env var.
// Falls back to the provided default if not set.
func RobotAddr(defaultAddr string) string {
	if addr := os.Getenv("PANDA_ADDR"); addr != "" {
		return addr
	}
	return defaultAddr
}

// RobotAddrRequired returns the controller address from PANDA_ADDR.
// Exits with usage help if not set.
func RobotAddrRequired() string {
	addr := os.Getenv("PANDA_ADDR")
	if addr == "" {
		fmt.Fprintln(os.Stderr, "Error: PANDA_ADDR environment variable is required")
		fmt.Fprintln(os.Stderr, "Usage: PANDA_ADDR=192.168.2.10:9010 go run ./cmd/...")
		os.Exit(1)
	}
	return addr
}

// LogLevel returns the log level from PANDA_LOG_LEVEL or "info".
func LogLevel() string {
	if lvl := os.Getenv("PANDA_LOG_LEVEL"); lvl != "" {
		return lvl
	}
	return "info"
}

// MonitorPort returns the dashboard port from MONITOR_PORT or the default.
func MonitorPort() string {
	if port := os.Getenv("MONITOR_PORT"); port != "" {
		return port
	}
	return DefaultMonitorPort
}
