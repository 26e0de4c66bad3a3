package logging

import (
	"context"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
	"moul.io/zapgorm2"
)

// GormLogger routes gorm's SQL log into l. Statements are logged at info level
// only when debug is set; slow queries and errors are always logged.
func GormLogger(l *zap.Logger, debug bool) gormlogger.Interface {
	gl := zapgorm2.New(l.Named("gorm"))
	gl.SlowThreshold = 200 * time.Millisecond
	gl.IgnoreRecordNotFoundError = true
	gl.Context = func(ctx context.Context) []zapcore.Field {
		if id := RequestID(ctx); id != "" {
			return []zapcore.Field{zap.String("req_id", id)}
		}
		return nil
	}
	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}
	return gl.LogMode(level)
}
