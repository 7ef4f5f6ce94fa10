package logger

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RequestIDKey stores the request correlation id on the context.
type RequestIDKey struct{}

var (
	root     *zap.Logger
	buildErr error
	once     sync.Once
)

// New builds the process-wide logger. Production gets JSON output at info
// level; anything else gets the colored development console encoder.
func New(env string) (*zap.Logger, error) {
	once.Do(func() {
		cfg := zap.NewProductionConfig()
		if env != "production" {
			cfg = zap.NewDevelopmentConfig()
			cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		root, buildErr = cfg.Build()
	})
	return root, buildErr
}

// WithContext returns the root logger annotated with the request id, when
// one is present on the context.
func WithContext(ctx context.Context) *zap.Logger {
	if root == nil {
		fallback, _ := zap.NewDevelopment()
		return fallback
	}
	if ctx == nil {
		return root
	}
	if id, ok := ctx.Value(RequestIDKey{}).(string); ok && id != "" {
		return root.With(zap.String("request_id", id))
	}
	return root
}

// MaskEmail keeps up to three leading characters and the domain.
// jan.kowalski@example.com becomes jan***@example.com.
func MaskEmail(email string) string {
	local, domain, found := strings.Cut(email, "@")
	if !found || local == "" {
		return "***"
	}
	visible := 3
	if len(local) < visible {
		visible = len(local)
	}
	return local[:visible] + "***@" + domain
}

// MaskPhone keeps only the last four digits.
func MaskPhone(phone string) string {
	if len(phone) <= 4 {
		return "***"
	}
	return "***" + phone[len(phone)-4:]
}

// MaskIP truncates addresses to a network prefix: two octets for IPv4, four
// groups for IPv6.
func MaskIP(ip string) string {
	if parts := strings.Split(ip, "."); len(parts) == 4 {
		return parts[0] + "." + parts[1] + ".*.*"
	}
	if parts := strings.Split(ip, ":"); len(parts) >= 4 {
		return strings.Join(parts[:4], ":") + ":*:*:*:*"
	}
	return "***"
}
