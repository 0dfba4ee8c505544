package utils

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var Logger = logrus.New()

// serviceHook tags every entry with the service name: as a message prefix
// for text output, as an "app" field for JSON output.
type serviceHook struct {
	appName string
	asField bool
}

func (h *serviceHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *serviceHook) Fire(entry *logrus.Entry) error {
	if h.asField {
		entry.Data["app"] = h.appName
		return nil
	}
	entry.Message = "[" + h.appName + "] " + entry.Message
	return nil
}

// InitLogger configures Logger from LOG_LEVEL (default info) and
// LOG_FORMAT (text or json). Calling it again replaces the previous setup.
func InitLogger(appName string) {
	initLogger(os.Stdout, appName, os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
}

func initLogger(out io.Writer, appName, levelStr, format string) {
	Logger.SetOutput(out)

	levelStr = strings.ToLower(levelStr)
	if levelStr == "" {
		levelStr = "info"
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		Logger.Warnf("Invalid LOG_LEVEL '%s', defaulting to INFO", levelStr)
		level = logrus.InfoLevel
	}
	Logger.SetLevel(level)

	hook := &serviceHook{appName: appName}
	if strings.EqualFold(format, "json") {
		Logger.SetFormatter(&logrus.JSONFormatter{})
		hook.asField = true
	} else {
		Logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	hooks := make(logrus.LevelHooks)
	hooks.Add(hook)
	Logger.ReplaceHooks(hooks)
}
