package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/writeup"
)

// Ensure LoggingChallengeService implements writeup.ChallengeService.
var _ writeup.ChallengeService = (*LoggingChallengeService)(nil)

// LoggingChallengeService wraps a ChallengeService with logging. Failures
// are logged at warn level since callers fall back to placeholders and
// the error is otherwise lost.
type LoggingChallengeService struct {
	next   writeup.ChallengeService
	logger *slog.Logger
}

// NewLoggingChallengeService creates a new LoggingChallengeService.
func NewLoggingChallengeService(next writeup.ChallengeService, logger *slog.Logger) *LoggingChallengeService {
	return &LoggingChallengeService{next: next, logger: logger}
}

// FindChallengeByID delegates to the wrapped service and logs the result.
func (s *LoggingChallengeService) FindChallengeByID(ctx context.Context, id string) (c *writeup.Challenge, err error) {
	defer func(begin time.Time) {
		if err != nil {
			s.logger.Warn("challenge fetch failed",
				"id", id,
				"authenticated", writeup.TokenFromContext(ctx) != "",
				"cookies", len(writeup.CookiesFromContext(ctx)),
				"code", writeup.ErrorCode(err),
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		s.logger.Info("challenge fetch",
			"id", id,
			"steps", len(c.Steps),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return s.next.FindChallengeByID(ctx, id)
}
