package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/powerman/structlog"
)

// LogLevels lists the names accepted in LOG_LEVEL.
var LogLevels = []string{"err", "wrn", "inf", "dbg"}

var initLogOnce sync.Once

// InitLog sets the keys and formats of the default structlog logger shared
// by every package. structlog refuses these changes once anything has been
// logged, so call it first thing in main; later calls do nothing.
func InitLog() {
	initLogOnce.Do(func() {
		structlog.DefaultLogger.
			SetPrefixKeys(
				structlog.KeyApp, structlog.KeyPID, structlog.KeyLevel, structlog.KeyUnit, structlog.KeyTime,
			).
			SetDefaultKeyvals(
				structlog.KeyApp, filepath.Base(os.Args[0]),
				structlog.KeySource, structlog.Auto,
			).
			SetSuffixKeys(structlog.KeyStack, structlog.KeySource).
			SetKeysFormat(map[string]string{
				structlog.KeyTime:   " %[2]s",
				structlog.KeySource: " %6[2]s",
				structlog.KeyUnit:   " %6[2]s",
			})
	})
}

// SetLogLevel applies one of LogLevels; it is safe after logging started.
func SetLogLevel(level string) {
	structlog.DefaultLogger.SetLogLevel(structlog.ParseLevel(level))
}
