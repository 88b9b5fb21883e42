package ranger

import (
	"os"
	"strings"

	"github.com/xy-planning-network/typed/logger"
)

// envVarOrLogLevel gets the environment variable from the provided key,
// creates a logger.LogLevel from the retrieved value,
// or returns the provided default logger.LogLevel
// if the value is an unknown logger.LogLevel.
func envVarOrLogLevel(key string, def logger.LogLevel) logger.LogLevel {
	val := os.Getenv(key)
	if val == "" {
		return def
	}

	ll := logger.NewLogLevel(strings.ToUpper(val))
	if ll == logger.LogLevelUnk {
		return def
	}

	return ll
}
