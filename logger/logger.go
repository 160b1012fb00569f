// Package logger builds the zerolog logger used by the sqlchain CLI.
package logger

import (
	"io"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// MaskValue replaces secrets in logged values.
const MaskValue = "***"

var callerMarshalOnce sync.Once

// New creates a logger writing to out at level. Unknown levels fall back
// to info. When pretty is true, output is formatted for humans.
func New(out io.Writer, level string, pretty bool) zerolog.Logger {
	callerMarshalOnce.Do(func() {
		zerolog.CallerMarshalFunc = func(_ uintptr, file string, line int) string {
			base := filepath.Base(file)
			parent := filepath.Base(filepath.Dir(file))
			if parent != "." && parent != "" {
				return parent + "/" + base + ":" + strconv.Itoa(line)
			}
			return base + ":" + strconv.Itoa(line)
		}
	})

	if pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	l := zerolog.New(out).With().Timestamp().Logger()

	zLevel, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		zLevel = zerolog.InfoLevel
	}
	return l.Level(zLevel)
}

// MaskDSN hides the password in a connection string. URL forms
// (postgres://, sqlserver://) and the MySQL user:password@ form are
// recognized; anything else is returned unchanged.
func MaskDSN(dsn string) string {
	if u, err := url.Parse(dsn); err == nil && u.Scheme != "" && u.User != nil {
		if _, ok := u.User.Password(); ok {
			u.User = url.UserPassword(u.User.Username(), MaskValue)
			return strings.Replace(u.String(), url.QueryEscape(MaskValue), MaskValue, 1)
		}
		return dsn
	}

	at := strings.LastIndex(dsn, "@")
	if at < 0 {
		return dsn
	}
	colon := strings.Index(dsn[:at], ":")
	if colon < 0 {
		return dsn
	}
	return dsn[:colon+1] + MaskValue + dsn[at:]
}
