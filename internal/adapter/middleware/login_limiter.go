package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// LoginLimiter counts failed logins per client IP and username in a fixed window.
type LoginLimiter struct {
	rdb    *redis.Client
	max    int
	window time.Duration
}

func NewLoginLimiter(rdb *redis.Client, max int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{rdb: rdb, max: max, window: window}
}

func loginKey(ip, username string) string {
	return "login:fail:" + ip + ":" + strconv.Quote(username)
}

// Blocked reports whether the pair has used up its failures for the current window.
func (l *LoginLimiter) Blocked(ctx context.Context, ip, username string) (bool, error) {
	n, err := l.rdb.Get(ctx, loginKey(ip, username)).Int()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return n >= l.max, nil
}

// Fail records one failed attempt. The window starts at the first failure.
func (l *LoginLimiter) Fail(ctx context.Context, ip, username string) error {
	key := loginKey(ip, username)
	n, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		return err
	}
	if n == 1 {
		return l.rdb.Expire(ctx, key, l.window).Err()
	}
	return nil
}

func (l *LoginLimiter) Reset(ctx context.Context, ip, username string) error {
	return l.rdb.Del(ctx, loginKey(ip, username)).Err()
}

// Middleware wraps the login handler: blocked pairs get 429 without a password check,
// a 401 response counts as a failure and a 200 clears the counter. Redis errors fail open.
func (l *LoginLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if l == nil || l.rdb == nil {
				return next(c)
			}
			req := c.Request()
			var body []byte
			if req.Body != nil {
				body, _ = io.ReadAll(req.Body)
			}
			req.Body = io.NopCloser(bytes.NewBuffer(body))

			var creds struct {
				Username string `json:"username"`
			}
			_ = json.Unmarshal(body, &creds)
			ip := c.RealIP()

			ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
			defer cancel()
			blocked, err := l.Blocked(ctx, ip, creds.Username)
			if err != nil {
				c.Logger().Warnf("login limiter: %v", err)
			}
			if blocked {
				return reject(c, http.StatusTooManyRequests, "too_many_attempts")
			}

			rec := &respRecorder{w: c.Response().Writer, code: http.StatusOK}
			c.Response().Writer = rec
			if err := next(c); err != nil {
				c.Error(err)
			}

			switch rec.code {
			case http.StatusUnauthorized:
				if err := l.Fail(context.Background(), ip, creds.Username); err != nil {
					c.Logger().Warnf("login limiter: record failure: %v", err)
				}
			case http.StatusOK:
				_ = l.Reset(context.Background(), ip, creds.Username)
			}
			return nil
		}
	}
}
