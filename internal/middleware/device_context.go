package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/edumorph/backend/internal/models"
)

const deviceContextKey contextKey = "deviceContext"

var mobileMarkers = []string{"Mobile", "Android", "iPhone", "iPad", "Windows Phone"}

// DeviceContextMiddleware derives device metadata from request headers and
// stores it in the request context. The adaptation providers use it as a
// hint; it never participates in cache partitioning.
func DeviceContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		device := models.DeviceContext{
			UserAgent:  r.UserAgent(),
			IsMobile:   isMobileUserAgent(r.UserAgent()),
			LocaleHint: localeHint(r.Header.Get("Accept-Language")),
		}

		ctx := context.WithValue(r.Context(), deviceContextKey, device)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetDeviceContext retrieves the device context from context
func GetDeviceContext(ctx context.Context) models.DeviceContext {
	if device, ok := ctx.Value(deviceContextKey).(models.DeviceContext); ok {
		return device
	}
	return models.DeviceContext{LocaleHint: "en"}
}

func isMobileUserAgent(userAgent string) bool {
	for _, marker := range mobileMarkers {
		if strings.Contains(userAgent, marker) {
			return true
		}
	}
	return false
}

// localeHint extracts the first language tag from an Accept-Language header
func localeHint(acceptLanguage string) string {
	if acceptLanguage == "" {
		return "en"
	}
	first := strings.Split(acceptLanguage, ",")[0]
	first = strings.TrimSpace(strings.Split(first, ";")[0])
	if first == "" {
		return "en"
	}
	return first
}
