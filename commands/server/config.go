package server

import (
	"flag"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/iov-one/swapweave/errors"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"
)

// Configuration keys, also used as flag names. The environment
// variable of a key is its upper case name with the SWAPD_ prefix.
const (
	keyBind     = "bind"
	keyDebug    = "debug"
	keyLogLevel = "log_level"
)

// ConfigName is the base name of the daemon configuration file
// in the home directory.
const ConfigName = "swapd"

// loadConfig builds the daemon configuration. Flags win over the
// environment, which wins over the configuration file.
func loadConfig(home string, args []string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(keyBind, "tcp://localhost:26658")
	v.SetDefault(keyDebug, false)
	v.SetDefault(keyLogLevel, "info")

	v.SetConfigName(ConfigName)
	v.SetConfigType("toml")
	if home != "" {
		v.AddConfigPath(home)
	}
	v.SetEnvPrefix("SWAPD")
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrapf(errors.ErrInvalidInput, "config: %s", err)
		}
	}

	fs := flag.NewFlagSet("start", flag.ContinueOnError)
	bind := fs.String(keyBind, v.GetString(keyBind), "address server listens on")
	debug := fs.Bool(keyDebug, v.GetBool(keyDebug), "call stack returned on error")
	level := fs.String(keyLogLevel, v.GetString(keyLogLevel), "one of debug, info, error or none")
	if err := fs.Parse(args); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case keyBind:
			v.Set(keyBind, *bind)
		case keyDebug:
			v.Set(keyDebug, *debug)
		case keyLogLevel:
			v.Set(keyLogLevel, *level)
		}
	})
	return v, nil
}

// LevelLogger filters log entries by a level that can be changed while
// the daemon is running.
type LevelLogger struct {
	level *atomic.Value
	base  log.Logger
}

var _ log.Logger = LevelLogger{}

// NewLevelLogger wraps the logger with a filter allowing the given level.
func NewLevelLogger(base log.Logger, level string) (LevelLogger, error) {
	l := LevelLogger{level: &atomic.Value{}, base: base}
	return l, l.SetLevel(level)
}

// SetLevel changes the level for this logger and all loggers derived
// from it with With.
func (l LevelLogger) SetLevel(level string) error {
	opt, err := log.AllowLevel(level)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	l.level.Store(opt)
	return nil
}

func (l LevelLogger) filtered() log.Logger {
	return log.NewFilter(l.base, l.level.Load().(log.Option))
}

func (l LevelLogger) Debug(msg string, keyvals ...interface{}) {
	l.filtered().Debug(msg, keyvals...)
}

func (l LevelLogger) Info(msg string, keyvals ...interface{}) {
	l.filtered().Info(msg, keyvals...)
}

func (l LevelLogger) Error(msg string, keyvals ...interface{}) {
	l.filtered().Error(msg, keyvals...)
}

func (l LevelLogger) With(keyvals ...interface{}) log.Logger {
	return LevelLogger{level: l.level, base: l.base.With(keyvals...)}
}

// watchLogLevel reloads the log level whenever the configuration
// file changes.
func watchLogLevel(v *viper.Viper, logger LevelLogger) {
	if v.ConfigFileUsed() == "" {
		return
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		level := v.GetString(keyLogLevel)
		if err := logger.SetLevel(level); err != nil {
			logger.Error("Cannot reload log level", "file", e.Name, "err", err)
			return
		}
		logger.Info("Configuration reloaded", "file", e.Name, "op", e.Op.String(), "log_level", level)
	})
	v.WatchConfig()
}
