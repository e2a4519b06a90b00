package commands

import (
	"context"
	"io"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"k8s.io/client-go/util/homedir"

	"github.com/slok/tasks/internal/conventions"
	"github.com/slok/tasks/internal/log"
)

const (
	// LoggerTypeDefault is the logger default type.
	LoggerTypeDefault = "default"
	// LoggerTypeJSON is the logger json type.
	LoggerTypeJSON = "json"
)

// Command represents an application command, all commands that want to be executed
// should implement and setup on main.
type Command interface {
	Name() string
	Run(ctx context.Context) error
}

// RootCommand represents the root command configuration and global configuration
// for all the commands.
type RootCommand struct {
	// Global flags.
	Debug      bool
	NoLog      bool
	NoColor    bool
	LoggerType string
	DBPath     string
	ConfigPath string
	Endpoint   string
	Headers    []string
	Timeout    time.Duration
	TimeoutSet bool

	// Global instances.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger log.Logger
}

// NewRootCommand initializes the main root configuration.
func NewRootCommand(app *kingpin.Application) *RootCommand {
	c := &RootCommand{}

	app.Flag("debug", "Enable debug mode.").BoolVar(&c.Debug)
	app.Flag("no-log", "Disable logger.").BoolVar(&c.NoLog)
	app.Flag("no-color", "Disable logger color.").BoolVar(&c.NoColor)
	app.Flag("logger", "Selects the logger type.").Default(LoggerTypeDefault).EnumVar(&c.LoggerType, LoggerTypeDefault, LoggerTypeJSON)

	home := homedir.HomeDir()
	app.Flag("db-path", "Path to the SQLite database file with the local task list.").Default(conventions.DBPath(home)).StringVar(&c.DBPath)
	app.Flag("config", "Path to the YAML client configuration file, ignored when missing.").Default(conventions.ConfigPath(home)).StringVar(&c.ConfigPath)
	app.Flag("endpoint", "Task database base URL (default: the tutorial Firebase database).").StringVar(&c.Endpoint)
	app.Flag("header", "Header added to every request in NAME=VALUE format (repeatable).").StringsVar(&c.Headers)
	app.Flag("timeout", "Request timeout, 0 disables it. When set, overrides the config file timeout.").Default("0s").IsSetByUser(&c.TimeoutSet).DurationVar(&c.Timeout)

	return c
}
