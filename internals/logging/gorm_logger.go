package logging

import (
	"context"
	"time"

	"go.uber.org/zap"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

// GormLogger routes GORM's query log through zap. Queries slower than
// SlowThreshold are logged at warn level.
type GormLogger struct {
	Log           *zap.Logger
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger(log *zap.Logger) gormLogger.Interface {
	return &GormLogger{
		Log:           log,
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      gormLogger.Warn,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	cloned := *l
	cloned.LogLevel = level
	return &cloned
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		l.Log.Sugar().Infof(msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		l.Log.Sugar().Warnf(msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		l.Log.Sugar().Errorf(msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := []zap.Field{
		zap.String("caller", utils.FileWithLineNum()),
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
		zap.String("sql", sql),
	}

	switch {
	case err != nil && l.LogLevel >= gormLogger.Error:
		l.Log.Error("query failed", append(fields, zap.Error(err))...)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		l.Log.Warn("slow query", fields...)
	case l.LogLevel >= gormLogger.Info:
		l.Log.Debug("query", fields...)
	}
}
