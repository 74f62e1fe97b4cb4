package logger

import (
	"context"
	"fmt"
	"log"

	"github.com/rollbar/rollbar-go"
)

// Logger is the application logger. args may contain errors, maps of extra
// fields or a *models.User-like Person to attach to the report.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// Person identifies the user a log entry is about.
type Person struct {
	ID    string
	Name  string
	Email string
}

type RollbarLogger struct {
	std     *log.Logger
	client  *rollbar.Client
	enabled bool
}

var _ Logger = (*RollbarLogger)(nil)

// NewRollbarLogger writes to std and forwards warnings and errors to rollbar
// when token is set.
func NewRollbarLogger(std *log.Logger, token, env string) *RollbarLogger {
	enabled := token != ""
	client := rollbar.New(token, env, "", "", "")
	client.SetEnabled(enabled)
	return &RollbarLogger{std: std, client: client, enabled: enabled}
}

// report sends one item. The person travels in the item's context so
// concurrent reports never share it.
func (l *RollbarLogger) report(level, msg string, args []interface{}) {
	ctx := context.Background()
	extras := map[string]interface{}{}
	var (
		reported error
		rest     []interface{}
	)
	for _, arg := range args {
		switch v := arg.(type) {
		case Person:
			if _, ok := rollbar.PersonFromContext(ctx); !ok {
				ctx = rollbar.NewPersonContext(ctx, &rollbar.Person{Id: v.ID, Username: v.Name, Email: v.Email})
			}
		case error:
			if reported == nil {
				reported = v
				continue
			}
			rest = append(rest, v.Error())
		case map[string]interface{}:
			for k, val := range v {
				extras[k] = val
			}
		default:
			rest = append(rest, v)
		}
	}
	if len(rest) > 0 {
		extras["args"] = rest
	}

	if reported != nil {
		extras["message"] = msg
		l.client.ErrorWithExtrasAndContext(ctx, level, reported, extras)
		return
	}
	l.client.MessageWithExtrasAndContext(ctx, level, msg, extras)
}

func (l *RollbarLogger) print(level, msg string, args []interface{}) {
	line := fmt.Sprintf("[%s] %s", level, msg)
	for _, arg := range args {
		line += fmt.Sprintf(" %+v", arg)
	}
	l.std.Println(line)
}

func (l *RollbarLogger) Debug(msg string, args ...interface{}) {
	l.print("DEBUG", msg, args)
}

func (l *RollbarLogger) Info(msg string, args ...interface{}) {
	l.print("INFO", msg, args)
}

func (l *RollbarLogger) Warn(msg string, args ...interface{}) {
	if l.enabled {
		l.report(rollbar.WARN, msg, args)
	}
	l.print("WARN", msg, args)
}

func (l *RollbarLogger) Error(msg string, args ...interface{}) {
	if l.enabled {
		l.report(rollbar.ERR, msg, args)
	}
	l.print("ERROR", msg, args)
}

// Close flushes pending rollbar reports.
func (l *RollbarLogger) Close() {
	l.client.Wait()
}
