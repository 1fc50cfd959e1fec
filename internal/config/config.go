package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Config holds all application configuration values.
type Config struct {
	// MQTT
	MQTTBroker           string
	MQTTClientIDProducer string
	MQTTClientIDConsole  string
	MQTTClientIDWeb      string

	// Topics
	TopicGPSFix string

	// GPS receiver
	GPSSerialPort string
	GPSBaudRate   int

	// Web server
	WebServerPort int

	// Fix logging
	LogIntervalSeconds int
	LogDir             string

	// Display
	TZOffsetHours int

	Debug bool
}

// defaults returns a Config preloaded with the values a bare config file
// would leave unset. GPS_SERIAL_PORT has no sensible default and stays
// required.
func defaults() *Config {
	return &Config{
		MQTTBroker:           "tcp://localhost:1883",
		MQTTClientIDProducer: "nmea-fusion-producer",
		MQTTClientIDConsole:  "nmea-fusion-console",
		MQTTClientIDWeb:      "nmea-fusion-web",
		TopicGPSFix:          "nmea/gps/fix",
		GPSBaudRate:          9600,
		WebServerPort:        8080,
		LogIntervalSeconds:   10,
		LogDir:               ".",
	}
}

// Package-level singleton, set once by InitGlobal and read through Get.
// The RWMutex lets goroutines read concurrently while guaranteeing they
// never observe a half-initialized config.
var (
	globalConfig *Config
	configOnce   sync.Once
	configMu     sync.RWMutex
)

// Load reads the configuration file and returns a Config struct.
func Load(configPath string) (*Config, error) {
	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	cfg := defaults()
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=VALUE
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid config line %d: %q", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if err := cfg.setValue(key, value); err != nil {
			return nil, fmt.Errorf("config line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setValue sets a config value based on the key.
func (c *Config) setValue(key, value string) error {
	switch key {
	// MQTT
	case "MQTT_BROKER":
		c.MQTTBroker = value
	case "MQTT_CLIENT_ID_PRODUCER":
		c.MQTTClientIDProducer = value
	case "MQTT_CLIENT_ID_CONSOLE":
		c.MQTTClientIDConsole = value
	case "MQTT_CLIENT_ID_WEB":
		c.MQTTClientIDWeb = value

	// Topics
	case "TOPIC_GPS_FIX":
		c.TopicGPSFix = value

	// GPS receiver
	case "GPS_SERIAL_PORT":
		c.GPSSerialPort = value
	case "GPS_BAUD_RATE":
		rate, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid GPS_BAUD_RATE %q: %w", value, err)
		}
		c.GPSBaudRate = rate

	// Web server
	case "WEB_SERVER_PORT":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid WEB_SERVER_PORT %q: %w", value, err)
		}
		c.WebServerPort = port

	// Fix logging
	case "LOG_INTERVAL_SECONDS":
		interval, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid LOG_INTERVAL_SECONDS %q: %w", value, err)
		}
		if interval <= 0 {
			return fmt.Errorf("LOG_INTERVAL_SECONDS must be positive, got %d", interval)
		}
		c.LogIntervalSeconds = interval
	case "LOG_DIR":
		c.LogDir = value

	// Display
	case "TZ_OFFSET_HOURS":
		offset, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid TZ_OFFSET_HOURS %q: %w", value, err)
		}
		if offset < -12 || offset > 14 {
			return fmt.Errorf("TZ_OFFSET_HOURS must be -12..14, got %d", offset)
		}
		c.TZOffsetHours = offset

	case "DEBUG":
		debug, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid DEBUG %q: %w", value, err)
		}
		c.Debug = debug

	default:
		return fmt.Errorf("unknown config key: %q", key)
	}

	return nil
}

// validate checks that all required fields are set.
func (c *Config) validate() error {
	if c.MQTTBroker == "" {
		return fmt.Errorf("MQTT_BROKER is required")
	}
	if c.TopicGPSFix == "" {
		return fmt.Errorf("TOPIC_GPS_FIX is required")
	}
	if c.GPSSerialPort == "" {
		return fmt.Errorf("GPS_SERIAL_PORT is required")
	}
	if c.GPSBaudRate <= 0 {
		return fmt.Errorf("GPS_BAUD_RATE must be positive")
	}
	if c.WebServerPort <= 0 {
		return fmt.Errorf("WEB_SERVER_PORT must be positive")
	}
	return nil
}

// InitGlobal initializes the global configuration from file. Safe to call
// more than once; only the first call loads.
func InitGlobal(configPath string) error {
	var err error
	configOnce.Do(func() {
		configMu.Lock()
		defer configMu.Unlock()
		globalConfig, err = Load(configPath)
	})
	return err
}

// Get returns the global configuration instance. InitGlobal must have
// been called first, or this returns nil.
func Get() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return globalConfig
}
