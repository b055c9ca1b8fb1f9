// Package logs is the process-wide logging facade. It lazily initializes a
// single ui.Logger and exposes package-level helpers so callers don't pass
// loggers around.
package logs

import (
	"os"
	"sync"

	"github.com/kvant-lab/slimpack/internal/ui"
)

var (
	initOnce sync.Once
	logger   *ui.Logger
)

func Init() {
	initOnce.Do(func() {
		opts := ui.Options{
			Out:      os.Stdout,
			LogLevel: ui.LogLevelWarn,
		}
		logger = ui.New(opts)
	})
}

func L() *ui.Logger {
	Init()
	return logger
}

func SetDebugVerbosity(cnt int) {
	switch {
	case cnt <= 0:
		L().SetLogLevel(ui.LogLevelWarn)
	case cnt == 1:
		L().SetLogLevel(ui.LogLevelDebug)
	default:
		L().SetLogLevel(ui.LogLevelDebugVerbose)
	}
}

func SetComponent(component string) {
	L().SetComponent(component)
}

func Banner(title string) {
	L().Banner(title)
}

func Spacer() {
	L().Spacer()
}

func Infof(format string, args ...any) {
	L().Info(format, args...)
}

func Debugf(format string, args ...any) {
	L().Debug(format, args...)
}

func Warnf(format string, args ...any) {
	L().Warn(format, args...)
}

func Errorf(format string, args ...any) {
	L().Error(format, args...)
}

func PromptSelectOne(label string, options []ui.SelectOption) (ui.SelectOption, error) {
	return L().SelectOne(label, options)
}

func PromptConfirm(text string) (bool, error) {
	return L().Confirm(text)
}
