// logging/logging.go - Application-wide zap loggers
package logging

import (
	"os"

	"go.uber.org/zap"
)

// Log is the structured logger, SLog its sugared twin for printf-style messages.
var (
	Log  *zap.Logger
	SLog *zap.SugaredLogger
)

func init() {
	Init()
}

// Init builds the loggers from the APP_ENV environment variable.
// Anything other than "production" gets the human-readable development config.
func Init() {
	var err error
	if os.Getenv("APP_ENV") == "production" {
		Log, err = zap.NewProduction()
	} else {
		Log, err = zap.NewDevelopment()
	}
	if err != nil {
		panic("failed to initialize zap logger: " + err.Error())
	}
	SLog = Log.Sugar()
}

// Sync flushes any buffered log entries. Call on shutdown.
func Sync() {
	_ = Log.Sync()
}
