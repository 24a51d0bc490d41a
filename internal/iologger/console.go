package iologger

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/gnames/gn"
)

var markup = regexp.MustCompile(`</?[a-z]+>`)

// Info prints an [INFO] line and logs it.
func Info(msg string, vars ...any) {
	gn.Info("[INFO] "+msg, vars...)
	slog.Info(Plain(msg, vars...))
}

// Warn prints a [WARN] line and logs it.
func Warn(msg string, vars ...any) {
	gn.Warn("<warn>[WARN]</warn> "+msg, vars...)
	slog.Warn(Plain(msg, vars...))
}

// Success prints an [OK] line and logs it.
func Success(msg string, vars ...any) {
	gn.Info("<em>[OK]</em> "+msg, vars...)
	slog.Info(Plain(msg, vars...))
}

// Step prints a plain progress line of a multi-stage command.
func Step(msg string, vars ...any) {
	gn.Message(msg, vars...)
	slog.Info(Plain(msg, vars...))
}

// Error prints an [ERROR] line for err and logs it. Errors of type
// *gn.Error print their user-facing message.
func Error(err error) {
	if err == nil {
		return
	}
	slog.Error("Command failed", "error", err)

	var gnErr *gn.Error
	if errors.As(err, &gnErr) {
		gn.Warn("<warn>[ERROR]</warn> "+gnErr.Msg, gnErr.Vars...)
		return
	}
	gn.Warn("<warn>[ERROR]</warn> %s", err.Error())
}

// Plain formats a message and removes console markup.
func Plain(msg string, vars ...any) string {
	if len(vars) > 0 {
		msg = fmt.Sprintf(msg, vars...)
	}
	return markup.ReplaceAllString(msg, "")
}
