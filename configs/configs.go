package configs

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var (
	HKDFInfo      = []byte("aes-tool")
	ServerAddress = "localhost:8080"
	RedisAddress  = "localhost:6379"
	WebSocketPath = "/ws"

	// SessionBackend is "memory" or "redis"
	SessionBackend    = "memory"
	SessionTTL        = 30 * time.Minute
	SessionCookieName = "aestool_session"

	// Redis keys

	SessionKey = "aestool:session:%s"

	// Form defaults

	DefaultKeySize = 24
	DefaultMode    = "CBC"
	DefaultFormat  = "Base64"
	DefaultInput   = "To implement Advanced Encryption Standard (AES) using a cryptographic library, understand block cipher logic, and document the implementation process."

	LogLevel      = "info"
	ClientLogPath = "aes-tool.log"
)

// Load reads .env (if any) and overrides the defaults from the environment.
// Unparseable numbers and durations keep their defaults.
func Load(logger *logrus.Logger, files ...string) {
	if err := godotenv.Load(files...); err != nil && logger != nil {
		logger.Debugf("No .env loaded: %v", err)
	}

	ServerAddress = getEnv("SERVER_ADDRESS", ServerAddress)
	RedisAddress = getEnv("REDIS_ADDRESS", RedisAddress)
	SessionBackend = getEnv("SESSION_BACKEND", SessionBackend)
	SessionTTL = getEnvDuration(logger, "SESSION_TTL", SessionTTL)
	DefaultKeySize = getEnvInt(logger, "DEFAULT_KEY_SIZE", DefaultKeySize)
	DefaultMode = getEnv("DEFAULT_MODE", DefaultMode)
	DefaultFormat = getEnv("DEFAULT_FORMAT", DefaultFormat)
	LogLevel = getEnv("LOG_LEVEL", LogLevel)
	ClientLogPath = getEnv("CLIENT_LOG_PATH", ClientLogPath)

	if logger != nil {
		if level, err := logrus.ParseLevel(LogLevel); err == nil {
			logger.SetLevel(level)
		} else {
			logger.Warnf("Unknown LOG_LEVEL %q, keeping %s", LogLevel, logger.GetLevel())
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(logger *logrus.Logger, key string, defaultValue int) int {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		if logger != nil {
			logger.Warnf("Invalid %s %q: %v", key, value, err)
		}
		return defaultValue
	}
	return n
}

func getEnvDuration(logger *logrus.Logger, key string, defaultValue time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		if logger != nil {
			logger.Warnf("Invalid %s %q: %v", key, value, err)
		}
		return defaultValue
	}
	return d
}
