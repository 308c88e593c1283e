package log

import (
	"io"
	"os"

	"github.com/op/go-logging"
)

// Level is the minimum severity a message needs to reach the sink
type Level int

const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var levelNames = map[Level]string{
	Debug:   "debug",
	Info:    "info",
	Notice:  "notice",
	Warning: "warning",
	Error:   "error",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "error"
}

// backendLevel translates a Level into the go-logging equivalent. Unknown
// levels are treated as Error.
func (l Level) backendLevel() logging.Level {
	switch l {
	case Debug:
		return logging.DEBUG
	case Info:
		return logging.INFO
	case Notice:
		return logging.NOTICE
	case Warning:
		return logging.WARNING
	default:
		return logging.ERROR
	}
}

var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

var (
	leveledBackend logging.LeveledBackend
	currentLevel   = Notice
)

// Logger is the subset of go-logging used by the renderer and the CLI
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// New returns the logger for a module name.
func New(name string) Logger {
	return logging.MustGetLogger(name)
}

// SetSink redirects all output to sink. The active level carries over to the
// new backend.
func SetSink(sink io.Writer) {
	backend := logging.NewBackendFormatter(logging.NewLogBackend(sink, "", 0), format)
	leveledBackend = logging.AddModuleLevel(backend)
	logging.SetBackend(leveledBackend)
	SetLevel(currentLevel)
}

// SetLevel changes the verbosity of every module.
func SetLevel(level Level) {
	currentLevel = level
	leveledBackend.SetLevel(level.backendLevel(), "")
}

// CurrentLevel returns the verbosity last passed to SetLevel.
func CurrentLevel() Level {
	return currentLevel
}

// Verbosity maps the -v / -vv command line switches to a level. The more
// verbose switch wins when both are given.
func Verbosity(verbose, veryVerbose bool) Level {
	switch {
	case veryVerbose:
		return Debug
	case verbose:
		return Info
	default:
		return Notice
	}
}

func init() {
	SetSink(os.Stdout)
}
