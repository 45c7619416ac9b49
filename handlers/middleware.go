package handlers

import (
	"time"

	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"
)

// RequestLogMiddleware logs every request with its status and duration.
func RequestLogMiddleware(log *zap.Logger) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		start := time.Now()
		err := e.Next()

		fields := []zap.Field{
			zap.String("method", e.Request.Method),
			zap.String("path", e.Request.URL.Path),
			zap.Int("status", e.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.Bool("htmx", e.Request.Header.Get("HX-Request") == "true"),
		}
		if err != nil {
			log.Warn("http: request failed", append(fields, zap.Error(err))...)
			return err
		}
		log.Debug("http: request", fields...)
		return nil
	}
}
