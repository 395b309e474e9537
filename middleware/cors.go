package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowAllOrigins  bool
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposeHeaders    []string
	AllowCredentials bool
	MaxAge           time.Duration
}

// NewCORSConfig builds the dashboard CORS policy. A "*" entry allows every
// origin without credentials.
func NewCORSConfig(origins []string) CORSConfig {
	config := CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{
			"GET",
			"POST",
			"DELETE",
			"OPTIONS",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Length",
			"Content-Type",
			"Authorization",
			"Accept",
			"X-Requested-With",
			"X-Request-ID",
		},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"Content-Disposition",
			"X-Request-ID",
		},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	for _, origin := range origins {
		if origin == "*" {
			config.AllowAllOrigins = true
			config.AllowCredentials = false
		}
	}
	return config
}

// CORS returns a CORS middleware with the given configuration
func CORS(config CORSConfig) gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if c.Request.Method == http.MethodOptions {
			handlePreflightRequest(c, config, origin)
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		handleActualRequest(c, config, origin)
		c.Next()
	})
}

func handlePreflightRequest(c *gin.Context, config CORSConfig, origin string) {
	if !setAllowOrigin(c, config, origin) {
		logrus.Warnf("CORS: Origin not allowed: %s", origin)
		return
	}

	c.Header("Access-Control-Allow-Methods", strings.Join(config.AllowMethods, ", "))
	c.Header("Access-Control-Allow-Headers", strings.Join(config.AllowHeaders, ", "))

	if config.MaxAge > 0 {
		c.Header("Access-Control-Max-Age", strconv.Itoa(int(config.MaxAge.Seconds())))
	}
}

func handleActualRequest(c *gin.Context, config CORSConfig, origin string) {
	if origin == "" || !setAllowOrigin(c, config, origin) {
		return
	}

	if len(config.ExposeHeaders) > 0 {
		c.Header("Access-Control-Expose-Headers", strings.Join(config.ExposeHeaders, ", "))
	}
	c.Header("Vary", "Origin")
}

// setAllowOrigin writes the allow-origin headers and reports whether the
// origin is allowed.
func setAllowOrigin(c *gin.Context, config CORSConfig, origin string) bool {
	if !isOriginAllowed(config, origin) {
		return false
	}

	switch {
	case config.AllowAllOrigins:
		c.Header("Access-Control-Allow-Origin", "*")
	default:
		c.Header("Access-Control-Allow-Origin", origin)
	}

	if config.AllowCredentials {
		c.Header("Access-Control-Allow-Credentials", "true")
	}
	return true
}

func isOriginAllowed(config CORSConfig, origin string) bool {
	if config.AllowAllOrigins {
		return true
	}

	if origin == "" {
		return false
	}

	for _, allowedOrigin := range config.AllowOrigins {
		if allowedOrigin == origin {
			return true
		}
		// Support wildcard subdomains (e.g., *.example.com)
		if strings.HasPrefix(allowedOrigin, "*.") {
			domain := allowedOrigin[2:]
			if strings.HasSuffix(origin, "."+domain) {
				return true
			}
		}
	}

	return false
}
