package server

import (
	"bytes"
	"io"
	"strings"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/FACorreiaa/go-routeplanner/internal/app/middleware"
	"github.com/FACorreiaa/go-routeplanner/internal/routes"
)

// maxLoggedBody keeps screenshot payloads out of request logs.
const maxLoggedBody = 4 << 10

// loggedBodyKey holds the captured request body for the access log.
const loggedBodyKey = "logged_request_body"

// SetupRouter configures and returns the Gin router with all middleware and routes
func SetupRouter(app *routes.AppHandlers, serviceName string, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(ginzap.GinzapWithConfig(logger, &ginzap.Config{
		UTC:        true,
		TimeFormat: time.RFC3339,
		Context:    zapContextFunc(),
		SkipPaths:  []string{"/health"},
	}))
	r.Use(captureBody())
	r.Use(ginzap.RecoveryWithZap(logger, true))
	r.Use(middleware.OTELGinMiddleware(serviceName))
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.SecurityMiddleware())

	routes.Setup(r, app, logger)

	return r
}

// zapContextFunc returns the Zap context function for logging
func zapContextFunc() ginzap.Fn {
	return func(c *gin.Context) []zapcore.Field {
		fields := []zapcore.Field{}

		if requestID := c.Writer.Header().Get("X-Request-Id"); requestID != "" {
			fields = append(fields, zap.String("request_id", requestID))
		}

		if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().IsValid() {
			fields = append(fields,
				zap.String("trace_id", span.SpanContext().TraceID().String()),
				zap.String("span_id", span.SpanContext().SpanID().String()),
			)
		}

		if body := c.GetString(loggedBodyKey); body != "" {
			fields = append(fields, zap.String("body", body))
		}

		return fields
	}
}

// captureBody copies small JSON request bodies before the handler consumes
// them, so the access log written after the handler can include them.
// Extraction uploads are megabytes of base64 and are never captured.
func captureBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil && strings.HasPrefix(c.ContentType(), "application/json") &&
			c.Request.ContentLength > 0 && c.Request.ContentLength <= maxLoggedBody {
			body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxLoggedBody))
			_ = c.Request.Body.Close()
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
			if err == nil && len(body) > 0 {
				c.Set(loggedBodyKey, string(body))
			}
		}
		c.Next()
	}
}
