package middleware

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/yourusername/quiz-app/internal/domain/repository"
	"github.com/yourusername/quiz-app/pkg/logger"
)

// RateLimitConfig содержит настройки rate limiting
type RateLimitConfig struct {
	// MaxRequests - максимальное количество запросов за Window
	MaxRequests int
	// Window - временное окно для подсчета запросов
	Window time.Duration
	// KeyPrefix - префикс для ключей счетчиков
	KeyPrefix string
}

// DefaultAPIRateLimitConfig возвращает конфигурацию по умолчанию для /api
func DefaultAPIRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		MaxRequests: 120,
		Window:      time.Minute,
		KeyPrefix:   "rl:api",
	}
}

func tooManyRequests(c *gin.Context, retryAfter int) {
	c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
		"error":       "Too many requests. Please try again later.",
		"retry_after": retryAfter,
	})
}

// RateLimiter считает запросы по IP в фиксированном окне через общий счетчик кеша.
// Так лимит общий для всех экземпляров сервера.
type RateLimiter struct {
	counter repository.CacheRepository
}

// NewRateLimiter создает новый RateLimiter
func NewRateLimiter(counter repository.CacheRepository) *RateLimiter {
	return &RateLimiter{counter: counter}
}

// LimitByIP ограничивает количество запросов по IP на всю группу маршрутов
func (rl *RateLimiter) LimitByIP(cfg RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		key := fmt.Sprintf("%s:%s", cfg.KeyPrefix, clientIP)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		count, err := rl.counter.Increment(ctx, key)
		if err != nil {
			// fail-open: без счетчика запрос пропускаем
			logger.Log.Warn("[RateLimiter] Ошибка счетчика, запрос пропущен",
				zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}

		// первый запрос в окне выставляет TTL
		if count == 1 {
			rl.expire(ctx, key, cfg.Window)
		} else if int(count) > cfg.MaxRequests {
			// если TTL не встал в начале окна, ключ не истечет никогда; проверяем при превышении
			ttl, err := rl.counter.TTL(ctx, key)
			if err != nil {
				logger.Log.Warn("[RateLimiter] Не удалось прочитать TTL", zap.String("key", key), zap.Error(err))
			} else if ttl < 0 {
				rl.expire(ctx, key, cfg.Window)
			}
		}

		remaining := cfg.MaxRequests - int(count)
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", cfg.MaxRequests))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))

		if int(count) > cfg.MaxRequests {
			logger.Log.Info("[RateLimiter] Превышен лимит",
				zap.String("ip", clientIP), zap.Int64("count", count), zap.Int("limit", cfg.MaxRequests))
			tooManyRequests(c, int(cfg.Window.Seconds()))
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) expire(ctx context.Context, key string, window time.Duration) {
	if err := rl.counter.Expire(ctx, key, window); err != nil {
		logger.Log.Warn("[RateLimiter] Не удалось выставить TTL", zap.String("key", key), zap.Error(err))
	}
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LocalRateLimiter - лимитер в памяти процесса (token bucket на IP), когда Redis выключен
type LocalRateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	expiry    time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewLocalRateLimiter создает лимитер: maxRequests запросов за window с равномерным пополнением
func NewLocalRateLimiter(cfg RateLimitConfig) *LocalRateLimiter {
	if cfg.MaxRequests <= 0 {
		cfg.MaxRequests = 1
	}
	expiry := cfg.Window * 3
	if expiry < time.Minute {
		expiry = time.Minute
	}
	return &LocalRateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Every(cfg.Window / time.Duration(cfg.MaxRequests)),
		burst:    cfg.MaxRequests,
		expiry:   expiry,
		now:      time.Now,
	}
}

func (l *LocalRateLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	// неактивные IP вычищаем не чаще раза в expiry
	if now.Sub(l.lastSweep) > l.expiry {
		for k, v := range l.visitors {
			if now.Sub(v.lastSeen) > l.expiry {
				delete(l.visitors, k)
			}
		}
		l.lastSweep = now
	}

	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

// Middleware возвращает gin middleware
func (l *LocalRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.get(c.ClientIP()).Allow() {
			tooManyRequests(c, 1)
			return
		}
		c.Next()
	}
}
