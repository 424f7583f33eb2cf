// Package dlog carries a leveled logger through a context.Context, the way
// every request and every object-store operation in this codebase expects
// to find one already there.
package dlog

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	defaultLogger   *logrus.Entry = logrus.StandardLogger().WithField("go.version", runtime.Version())
	defaultLoggerMu sync.RWMutex
)

// Logger is the leveled-logging interface every hashstore package logs
// through, rather than a package-global *logrus.Logger.
type Logger interface {
	Debug(args ...any)
	Debugf(format string, args ...any)

	Info(args ...any)
	Infof(format string, args ...any)

	Warn(args ...any)
	Warnf(format string, args ...any)

	Error(args ...any)
	Errorf(format string, args ...any)

	WithError(err error) *logrus.Entry
	WithField(key string, value any) *logrus.Entry
}

type loggerKey struct{}

// WithLogger attaches logger to ctx, returning a derived context.
func WithLogger(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// WithField returns a logger scoped to (ctx's logger, or the default) plus
// one extra field, without modifying ctx.
func WithField(ctx context.Context, key string, value any) Logger {
	return getLogrusLogger(ctx).WithField(key, value)
}

// GetLogger returns the logger carried by ctx, or the package default if
// none was attached via WithLogger. Only a *logrus.Entry attached via
// WithLogger is used; a logger of any other type is ignored.
func GetLogger(ctx context.Context) Logger {
	return getLogrusLogger(ctx)
}

// SetDefaultLogger replaces the base logger new contexts fall back to.
// Intended for cmd/hashstore's startup, to apply a configured level. A
// logger that is not a *logrus.Entry is ignored and the default is kept.
func SetDefaultLogger(logger Logger) {
	entry, ok := logger.(*logrus.Entry)
	if !ok {
		return
	}
	defaultLoggerMu.Lock()
	defaultLogger = entry
	defaultLoggerMu.Unlock()
}

func getLogrusLogger(ctx context.Context) *logrus.Entry {
	if v := ctx.Value(loggerKey{}); v != nil {
		if lgr, ok := v.(*logrus.Entry); ok {
			return lgr
		}
	}

	if baseDir := ctx.Value(storeBaseKey{}); baseDir != nil {
		defaultLoggerMu.RLock()
		defer defaultLoggerMu.RUnlock()
		return defaultLogger.WithField("store.base", fmt.Sprint(baseDir))
	}

	defaultLoggerMu.RLock()
	defer defaultLoggerMu.RUnlock()
	return defaultLogger
}

type storeBaseKey struct{}

// WithStoreBase tags ctx with the store base path, picked up automatically
// by GetLogger as a "store.base" field.
func WithStoreBase(ctx context.Context, base string) context.Context {
	return context.WithValue(ctx, storeBaseKey{}, base)
}
