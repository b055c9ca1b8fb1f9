package ui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelDebug
	LogLevelDebugVerbose
)

// Options configures the Logger.
type Options struct {
	// Out is where we print user-facing logs.
	// In most cases this should be os.Stdout.
	Out io.Writer

	// LogLevel controls the amount of logs printed to stdout.
	// greater the number => more logs coming out
	// error < info < warn < debug < debugVerbose
	LogLevel LogLevel

	// Component identifies the source of log messages (e.g., "build", "run").
	// If empty, no component tag is included in log output.
	Component string
}

// Logger is the stdout logger used across the CLI.
type Logger struct {
	out       io.Writer
	mu        sync.Mutex
	style     styles
	component string

	logLevel LogLevel
}

// styles for log levels and banners.
type styles struct {
	logInfo  lipgloss.Style
	logWarn  lipgloss.Style
	logError lipgloss.Style
	banner   lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		logInfo:  lipgloss.NewStyle(),
		logWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // orange-ish
		logError: lipgloss.NewStyle().Foreground(lipgloss.Color("196")), // red
		banner:   lipgloss.NewStyle().Bold(true).Border(lipgloss.NormalBorder()).Padding(0, 1).Margin(1, 0),
	}
}

// New creates a new Logger.
func New(opts Options) *Logger {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	return &Logger{
		out:       opts.Out,
		style:     defaultStyles(),
		logLevel:  opts.LogLevel,
		component: opts.Component,
	}
}

func (l *Logger) SetLogLevel(logLevel LogLevel) {
	l.logLevel = logLevel
}

func (l *Logger) SetComponent(component string) {
	l.component = component
}

func (l *Logger) Error(format string, args ...any) {
	l.printLog(false, "ERR ", l.style.logError, format, args...)
}

func (l *Logger) Info(format string, args ...any) {
	silent := l.logLevel < LogLevelInfo
	l.printLog(silent, "INFO", l.style.logInfo, format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	silent := l.logLevel < LogLevelWarn
	l.printLog(silent, "WARN", l.style.logWarn, format, args...)
}

func (l *Logger) Debug(format string, args ...any) {
	if l.logLevel >= LogLevelDebug {
		l.printLog(false, "DEBG", l.style.logInfo, format, args...)
	}
}

func (l *Logger) Spacer() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.out)
}

// Banner prints a nice box title.
func (l *Logger) Banner(title string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	box := l.style.banner.Render(title)
	fmt.Fprintln(l.out, box)
}

func (l *Logger) formatCaller(format string, args ...any) string {
	msg := fmt.Sprintf(format, args...)
	if l.logLevel < LogLevelDebugVerbose {
		return msg
	}
	pc, file, line, ok := runtime.Caller(4)
	if !ok {
		file = "?"
		line = 0
	}

	fn := runtime.FuncForPC(pc)
	var fnName string
	if fn != nil {
		fnName = strings.ReplaceAll(fn.Name(), "github.com/kvant-lab/slimpack", "")
	}

	return fmt.Sprintf("[%s:%d %s] %s", filepath.Base(file), line, fnName, msg)
}

func (l *Logger) printLog(silent bool, level string, style lipgloss.Style, format string, args ...any) {
	if silent {
		return
	}

	msg := l.formatCaller(format, args...)
	timestamp := time.Now().Format("2006-01-02T15:04:05.000")

	componentTag := ""
	if l.component != "" {
		componentTag = fmt.Sprintf("[%s] ", l.component)
	}

	line := fmt.Sprintf("[%s] [%s] %s%s", timestamp, level, componentTag, msg)

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.out, style.Render(line))
}
