package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/guttosm/salespulse/internal/logger"
)

// RequestLogger logs one structured line per request once it has been handled.
//
// Behavior:
//   - 5xx answers are logged at error level, 4xx at warn, the rest at info.
//   - Errors attached with c.Error are included.
//   - Chart and swagger asset requests are logged at debug to keep dashboards quiet.
//
// Usage:
//
//	router := gin.New()
//	router.Use(middleware.RequestID(), middleware.RequestLogger())
//
// Example log output:
//
//	{"level":"info","request_id":"123e...","method":"GET","route":"/charts/:name","status":200,"latency_ms":15,"message":"http_request"}
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()

		var ev *zerolog.Event
		switch {
		case status >= 500:
			ev = logger.L().Error()
		case status >= 400:
			ev = logger.L().Warn()
		case isQuietRoute(route):
			ev = logger.L().Debug()
		default:
			ev = logger.L().Info()
		}

		if len(c.Errors) > 0 {
			ev = ev.Str("errors", c.Errors.String())
		}
		ev.Str("request_id", GetRequestID(c)).
			Str("method", method).
			Str("path", path).
			Str("route", route).
			Int("status", status).
			Int("bytes", c.Writer.Size()).
			Int64("latency_ms", time.Since(start).Milliseconds()).
			Str("client_ip", c.ClientIP()).
			Msg("http_request")
	}
}

func isQuietRoute(route string) bool {
	switch route {
	case "/charts/:name", "/swagger/*any", "/healthz":
		return true
	}
	return false
}
