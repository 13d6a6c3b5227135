package services

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/tree-d/kiosk_api/dto"
	"github.com/tree-d/kiosk_api/shared"
)

// RateLimitService keeps fixed-window counters in Redis. Kiosks retry
// aggressively when the venue network flaps, so the scan window is generous;
// the strict limits only guard the admin surface.
type RateLimitService struct {
	appContext.DefaultService

	configs map[string]*RateLimitConfig
	mutex   sync.RWMutex

	redisSvc *RedisService
}

// RateLimitConfig represents rate limiting configuration
type RateLimitConfig struct {
	EndpointType string
	MaxRequests  int
	WindowSize   time.Duration
	Description  string
	IsActive     bool
}

const RATE_LIMIT_SVC = "rate_limit_svc"

func (svc RateLimitService) Id() string {
	return RATE_LIMIT_SVC
}

func (svc *RateLimitService) Configure(ctx *appContext.Context) error {
	svc.configs = make(map[string]*RateLimitConfig)
	return svc.DefaultService.Configure(ctx)
}

func (svc *RateLimitService) Start() error {
	svc.redisSvc, _ = svc.Service(REDIS_SVC).(*RedisService)
	if svc.redisSvc == nil {
		log.Warn("Redis not registered; rate limiting disabled")
	}

	svc.initDefaultConfigs()
	return nil
}

func (svc *RateLimitService) initDefaultConfigs() {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	svc.configs = map[string]*RateLimitConfig{
		// Ingest endpoint, keyed per device
		"scan_ingest": {
			EndpointType: "scan_ingest",
			MaxRequests:  120,
			WindowSize:   time.Minute,
			Description:  "Scan report ingest rate limit per device",
			IsActive:     true,
		},

		// Admin endpoints
		"admin_login": {
			EndpointType: "admin_login",
			MaxRequests:  10,
			WindowSize:   15 * time.Minute,
			Description:  "Admin login attempts rate limit",
			IsActive:     true,
		},
		"admin_export": {
			EndpointType: "admin_export",
			MaxRequests:  6,
			WindowSize:   time.Hour,
			Description:  "Interaction log export rate limit",
			IsActive:     true,
		},

		// General API calls per IP
		"api_general": {
			EndpointType: "api_general",
			MaxRequests:  2000,
			WindowSize:   time.Hour,
			Description:  "General API rate limit per IP",
			IsActive:     true,
		},
	}
}

// ==================== CORE RATE LIMITING LOGIC ====================

func (svc *RateLimitService) IsAllowed(identifier, endpointType string) (bool, *dto.RateLimitInfo, error) {
	svc.mutex.RLock()
	config, exists := svc.configs[endpointType]
	svc.mutex.RUnlock()

	if !exists || !config.IsActive || svc.redisSvc == nil {
		return true, &dto.RateLimitInfo{
			Allowed:   true,
			Remaining: -1,
		}, nil
	}

	key := fmt.Sprintf("ratelimit:%s:%s", endpointType, identifier)
	ctx := context.Background()

	count, err := svc.redisSvc.Increment(ctx, key)
	if err != nil {
		return false, nil, err
	}

	// First hit in the window owns the expiry
	if count == 1 {
		if err := svc.redisSvc.Expire(ctx, key, config.WindowSize); err != nil {
			return false, nil, err
		}
	}

	remaining := config.MaxRequests - int(count)
	if remaining < 0 {
		remaining = 0
	}

	var resetTime *time.Time
	if ttl, err := svc.redisSvc.TTL(ctx, key); err == nil && ttl > 0 {
		t := time.Now().Add(ttl)
		resetTime = &t
	}

	if int(count) > config.MaxRequests {
		return false, &dto.RateLimitInfo{
			Allowed:   false,
			Remaining: 0,
			ResetTime: resetTime,
		}, nil
	}

	return true, &dto.RateLimitInfo{
		Allowed:   true,
		Remaining: remaining,
		ResetTime: resetTime,
	}, nil
}

// ==================== MIDDLEWARE FUNCTIONS ====================

// ScanRateLimit limits ingest per device, falling back to the client IP when
// the body carries no usable device id.
func (svc *RateLimitService) ScanRateLimit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identifier := getDeviceIDFromRequest(c)
		if identifier == "" {
			identifier = getClientIP(c)
		}

		allowed, info, err := svc.IsAllowed(identifier, "scan_ingest")
		if err != nil {
			log.Printf("Scan rate limit check error for %s: %v", identifier, err)
			// Continue with request on error to avoid dropping scans on redis outages
			return c.Next()
		}

		svc.addRateLimitHeaders(c, info)

		if !allowed {
			return svc.handleRateLimitExceeded(c, "scan_ingest", info)
		}

		return c.Next()
	}
}

// IPRateLimit applies general rate limiting by IP address
func (svc *RateLimitService) IPRateLimit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ip := getClientIP(c)

		allowed, info, err := svc.IsAllowed(ip, "api_general")
		if err != nil {
			log.Printf("IP rate limit check error for %s: %v", ip, err)
			return c.Next()
		}

		svc.addRateLimitHeaders(c, info)

		if !allowed {
			return svc.handleRateLimitExceeded(c, "api_general", info)
		}

		return c.Next()
	}
}

// RateLimit creates a rate limiting middleware for a specific endpoint type,
// keyed by client IP.
func (svc *RateLimitService) RateLimit(endpointType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ip := getClientIP(c)

		allowed, info, err := svc.IsAllowed(ip, endpointType)
		if err != nil {
			log.Printf("Rate limit check error for %s (%s): %v", endpointType, ip, err)
			return c.Next()
		}

		svc.addRateLimitHeaders(c, info)

		if !allowed {
			return svc.handleRateLimitExceeded(c, endpointType, info)
		}

		return c.Next()
	}
}

// ==================== HELPER FUNCTIONS ====================

func (svc *RateLimitService) addRateLimitHeaders(c *fiber.Ctx, info *dto.RateLimitInfo) {
	if info == nil {
		return
	}

	if info.Remaining >= 0 {
		c.Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
	}

	if info.ResetTime != nil {
		c.Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))

		retryAfter := int(time.Until(*info.ResetTime).Seconds())
		if !info.Allowed && retryAfter > 0 {
			c.Set("Retry-After", strconv.Itoa(retryAfter))
		}
	}
}

func (svc *RateLimitService) handleRateLimitExceeded(c *fiber.Ctx, endpointType string, info *dto.RateLimitInfo) error {
	message := svc.getRateLimitMessage(endpointType)

	response := map[string]interface{}{
		"error":   "Rate limit exceeded",
		"message": message,
	}

	if info != nil && info.ResetTime != nil {
		response["retry_after"] = int(time.Until(*info.ResetTime).Seconds())
	}

	return shared.ResponseJSON(c, http.StatusTooManyRequests, message, response)
}

func (svc *RateLimitService) getRateLimitMessage(endpointType string) string {
	messages := map[string]string{
		"scan_ingest":  "Too many scan reports from this device. Please slow down.",
		"admin_login":  "Too many login attempts. Please try again later.",
		"admin_export": "Too many export requests. Please try again later.",
		"api_general":  "Too many requests. Please slow down.",
	}

	if message, exists := messages[endpointType]; exists {
		return message
	}

	return "Too many requests. Please try again later."
}

// ==================== UTILITY FUNCTIONS ====================

func getClientIP(c *fiber.Ctx) string {
	// Check for forwarded IP first (for load balancers/proxies)
	forwarded := c.Get("X-Forwarded-For")
	if forwarded != "" {
		ips := strings.Split(forwarded, ",")
		if len(ips) > 0 {
			ip := strings.TrimSpace(ips[0])
			if ip != "" {
				return ip
			}
		}
	}

	// Check for real IP header
	realIP := c.Get("X-Real-IP")
	if realIP != "" {
		return realIP
	}

	// Fall back to remote address
	ip, _, err := net.SplitHostPort(c.Context().RemoteAddr().String())
	if err != nil {
		return c.Context().RemoteAddr().String()
	}

	return ip
}

func getDeviceIDFromRequest(c *fiber.Ctx) string {
	// Try the header first so the body is only parsed when needed
	if deviceID := c.Get("X-Device-ID"); deviceID != "" {
		return deviceID
	}

	var reqBody map[string]interface{}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&reqBody); err == nil {
			if deviceID, exists := reqBody["id"]; exists {
				if deviceIDStr, ok := deviceID.(string); ok {
					return deviceIDStr
				}
			}
		}
	}

	return ""
}

// ==================== PUBLIC METHODS ====================

func (svc *RateLimitService) IsBlocked(identifier, endpointType string) bool {
	allowed, _, err := svc.IsAllowed(identifier, endpointType)
	if err != nil {
		log.Printf("Error checking rate limit status: %v", err)
		return false // Don't block on error
	}
	return !allowed
}

func (svc *RateLimitService) ResetRateLimit(identifier, endpointType string) error {
	if svc.redisSvc == nil {
		return nil
	}
	return svc.redisSvc.Delete(context.Background(), fmt.Sprintf("ratelimit:%s:%s", endpointType, identifier))
}
