package listview

import (
	"log/slog"
	"os"
)

// logLevel controls the verbosity of the default logger.
var logLevel = func() *slog.LevelVar {
	v := new(slog.LevelVar)
	v.Set(slog.LevelWarn)
	return v
}()

var defaultLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

// SetLogLevel changes the level of the logger used by lists created without Options.Logger.
func SetLogLevel(level slog.Level) {
	logLevel.Set(level)
}
