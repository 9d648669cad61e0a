package config

import (
	"os"

	"github.com/rollbar/rollbar-go"
	"github.com/sirupsen/logrus"
)

var Logger *logrus.Logger

func NewLoggerService(cfg *Env) {
	Logger = logrus.New()
	Logger.SetOutput(os.Stdout)
	Logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	Logger.SetLevel(level)

	if len(cfg.RollbarToken) > 0 {
		hostname, _ := os.Hostname()
		rollbar.SetToken(cfg.RollbarToken)
		rollbar.SetEnvironment(cfg.AppEnv)
		rollbar.SetServerHost(hostname)
		Logger.AddHook(&RollbarHook{})
	}
}

// RollbarHook reports error entries to Rollbar.
type RollbarHook struct {
	// Report defaults to rollbar.Error.
	Report func(interfaces ...interface{})
}

func (h *RollbarHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel}
}

func (h *RollbarHook) Fire(entry *logrus.Entry) error {
	report := h.Report
	if report == nil {
		report = rollbar.Error
	}

	extras := make(map[string]interface{}, len(entry.Data))
	for k, v := range entry.Data {
		if k == logrus.ErrorKey {
			continue
		}
		extras[k] = v
	}

	if err, ok := entry.Data[logrus.ErrorKey].(error); ok {
		report(err, extras)
	} else {
		report(entry.Message, extras)
	}

	return nil
}

// CloseLogger flushes pending Rollbar reports.
func CloseLogger() {
	rollbar.Wait()
}
