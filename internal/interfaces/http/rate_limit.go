package http

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-portal/internal/application/dto"
	"golang.org/x/time/rate"
)

// maxTrackedClients tope de IPs en memoria; al superarlo se reinicia la caché.
const maxTrackedClients = 10000

// limiterCache un rate.Limiter por clave, con doble verificación al crear.
type limiterCache[K comparable] struct {
	mu       sync.RWMutex
	limiters map[K]*rate.Limiter
	rate     rate.Limit
	burst    int
}

func newLimiterCache[K comparable](rps float64, burst int) *limiterCache[K] {
	return &limiterCache[K]{
		limiters: make(map[K]*rate.Limiter),
		rate:     rate.Limit(rps),
		burst:    burst,
	}
}

func (lc *limiterCache[K]) get(key K) *rate.Limiter {
	lc.mu.RLock()
	limiter, ok := lc.limiters[key]
	lc.mu.RUnlock()
	if ok {
		return limiter
	}

	lc.mu.Lock()
	defer lc.mu.Unlock()
	if limiter, ok = lc.limiters[key]; ok {
		return limiter
	}
	if len(lc.limiters) >= maxTrackedClients {
		lc.limiters = make(map[K]*rate.Limiter)
	}
	limiter = rate.NewLimiter(lc.rate, lc.burst)
	lc.limiters[key] = limiter
	return limiter
}

// RateLimitByIP limita peticiones por IP de cliente (login y registro).
// rps <= 0 desactiva el límite.
func RateLimitByIP(rps float64, burst int) fiber.Handler {
	if rps <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	if burst < 1 {
		burst = 1
	}
	cache := newLimiterCache[string](rps, burst)
	return func(c *fiber.Ctx) error {
		if !cache.get(c.IP()).Allow() {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: "RATE_LIMITED", Message: "Too many attempts, try again later"})
		}
		return c.Next()
	}
}
