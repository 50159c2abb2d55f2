package http

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/hkxdv/pim-api/internal/application/dto"
	"github.com/hkxdv/pim-api/internal/application/inventory"
)

// HeaderActorID header con el identificador del actor, inyectado por el
// gateway que autentica delante de este servicio.
const HeaderActorID = "X-Actor-Id"

// RequestMeta arma los metadatos de auditoría de la petición actual.
func RequestMeta(c *fiber.Ctx) inventory.RequestMeta {
	return inventory.RequestMeta{
		UserID:    c.Get(HeaderActorID),
		IPAddress: c.IP(),
		UserAgent: c.Get(fiber.HeaderUserAgent),
	}
}

// ── Rate limiting por cliente ─────────────────────────────────────────────────

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter limita peticiones por IP con token bucket (golang.org/x/time).
// Se usa en el endpoint del asistente, que llama a un proveedor externo pago.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*clientLimiter
	rps      rate.Limit
	burst    int
}

// NewRateLimiter construye el limitador. rps permite fracciones (0.5 = una
// petición cada dos segundos).
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*clientLimiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
	go rl.cleanupLoop()
	return rl
}

func (rl *RateLimiter) visitor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	v, ok := rl.visitors[ip]
	if !ok {
		v = &clientLimiter{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

// cleanupLoop purga clientes inactivos para que el mapa no crezca sin límite.
func (rl *RateLimiter) cleanupLoop() {
	for {
		time.Sleep(time.Minute)
		rl.mu.Lock()
		for ip, v := range rl.visitors {
			if time.Since(v.lastSeen) > 5*time.Minute {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// Middleware devuelve el handler Fiber que aplica el límite.
func (rl *RateLimiter) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !rl.visitor(c.IP()).Allow() {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code: "RATE_LIMITED", Message: "demasiadas peticiones, intente de nuevo en unos segundos",
			})
		}
		return c.Next()
	}
}
