// Package obs holds observability setup shared by the binaries.
package obs

import (
	"log/slog"
	"os"
)

// InitLogger installs a JSON slog handler as the process default logger and
// returns it tagged with the service name.
func InitLogger(service string) *slog.Logger {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	l := slog.New(h).With("service", service)
	slog.SetDefault(l)
	return l
}
