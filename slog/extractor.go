package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/writeup"
)

var (
	_ writeup.StepsExtractor       = (*LoggingStepsExtractor)(nil)
	_ writeup.DescriptionExtractor = (*LoggingDescriptionExtractor)(nil)
)

// LoggingStepsExtractor wraps a StepsExtractor with logging.
type LoggingStepsExtractor struct {
	next   writeup.StepsExtractor
	logger *slog.Logger
}

// NewLoggingStepsExtractor creates a new LoggingStepsExtractor.
func NewLoggingStepsExtractor(next writeup.StepsExtractor, logger *slog.Logger) *LoggingStepsExtractor {
	return &LoggingStepsExtractor{next: next, logger: logger}
}

// ExtractSteps delegates to the wrapped extractor. Empty results are
// logged at warn level.
func (e *LoggingStepsExtractor) ExtractSteps(ctx context.Context, page *writeup.Page) (steps string) {
	defer func(begin time.Time) {
		level := slog.LevelInfo
		if steps == "" {
			level = slog.LevelWarn
		}
		e.logger.Log(ctx, level, "steps extraction",
			"url", pageURL(page),
			"bytes", len(steps),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return e.next.ExtractSteps(ctx, page)
}

// LoggingDescriptionExtractor wraps a DescriptionExtractor with logging.
type LoggingDescriptionExtractor struct {
	next   writeup.DescriptionExtractor
	logger *slog.Logger
}

// NewLoggingDescriptionExtractor creates a new LoggingDescriptionExtractor.
func NewLoggingDescriptionExtractor(next writeup.DescriptionExtractor, logger *slog.Logger) *LoggingDescriptionExtractor {
	return &LoggingDescriptionExtractor{next: next, logger: logger}
}

// ExtractDescription delegates to the wrapped extractor. Empty results
// are logged at warn level.
func (e *LoggingDescriptionExtractor) ExtractDescription(page *writeup.Page) (desc string) {
	defer func(begin time.Time) {
		if desc == "" {
			e.logger.Warn("description extraction", "url", pageURL(page), "bytes", 0, "duration", time.Since(begin))
			return
		}
		e.logger.Info("description extraction", "url", pageURL(page), "bytes", len(desc), "duration", time.Since(begin))
	}(time.Now())
	return e.next.ExtractDescription(page)
}

func pageURL(page *writeup.Page) string {
	if page == nil {
		return ""
	}
	return page.URL
}
