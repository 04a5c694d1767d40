package unleash

import (
	"context"

	"github.com/olusolaa/flagsync/internal/core/ports"
	"golang.org/x/time/rate"
)

const (
	defaultRateLimitRPS = 20
	minRateLimitRPS     = 1
	maxRateLimitRPS     = 100
)

func newLimiter(ctx context.Context, rps int, logger ports.Logger) *rate.Limiter {
	limitValue := defaultRateLimitRPS
	if rps >= minRateLimitRPS && rps <= maxRateLimitRPS {
		limitValue = rps
	} else if rps != 0 {
		logger.Warnf(ctx, "Invalid remote API RPS configured (%d), using default %d RPS. Valid range: %d-%d.", rps, defaultRateLimitRPS, minRateLimitRPS, maxRateLimitRPS)
	}
	logger.Debugf(ctx, "Remote API rate limit: %d RPS", limitValue)
	return rate.NewLimiter(rate.Limit(limitValue), limitValue)
}

func (c *Client) wait(ctx context.Context) error {
	err := c.limiter.Wait(ctx)
	if err != nil && ctx.Err() == nil {
		c.logger.Warnf(ctx, "Error waiting for remote API rate limiter: %v", err)
	}
	return err
}
