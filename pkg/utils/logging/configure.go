package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/masq"
)

// Format selects the log output encoding
type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

// Configure builds a logger from level/format/output names and installs it as
// the default. It returns a closer for the output file, if one was opened.
func Configure(level, format, output string) (func(), error) {
	var lv slog.Level
	if err := lv.UnmarshalText([]byte(level)); err != nil {
		return nil, goerr.Wrap(err, "invalid log level", goerr.V("level", level))
	}

	var w io.Writer
	closer := func() {}
	switch output {
	case "stdout", "-", "":
		w = os.Stdout
	case "stderr":
		w = os.Stderr
	default:
		// #nosec G304 - path comes from CLI configuration
		f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to open log file", goerr.V("path", output))
		}
		w = f
		closer = func() { _ = f.Close() }
	}

	var handler slog.Handler
	switch Format(format) {
	case FormatConsole, "":
		handler = clog.New(
			clog.WithWriter(w),
			clog.WithLevel(lv),
			clog.WithSource(false),
			clog.WithReplaceAttr(masq.New(masq.WithTag("secret"))),
		)
	case FormatJSON:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:       lv,
			ReplaceAttr: masq.New(masq.WithTag("secret")),
		})
	default:
		closer()
		return nil, goerr.New("invalid log format", goerr.V("format", format))
	}

	SetDefault(slog.New(handler))
	return closer, nil
}
