package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/nanodocs"
)

// Ensure LoggingLoader implements nanodocs.EntrySetLoader.
var _ nanodocs.EntrySetLoader = (*LoggingLoader)(nil)

// LoggingLoader wraps an EntrySetLoader with logging.
type LoggingLoader struct {
	next   nanodocs.EntrySetLoader
	logger *slog.Logger
}

// NewLoggingLoader creates a new LoggingLoader.
func NewLoggingLoader(next nanodocs.EntrySetLoader, logger *slog.Logger) *LoggingLoader {
	return &LoggingLoader{next: next, logger: logger}
}

// Load delegates to the wrapped loader and logs the size and digest of the result.
func (l *LoggingLoader) Load(ctx context.Context, source nanodocs.Source) (set *nanodocs.EntrySet, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"category", source.Category,
			"url", source.URL,
			"entries", set.Len(),
			"duration", time.Since(begin),
		}
		if set != nil {
			attrs = append(attrs, "digest", set.Digest)
		}
		if err != nil {
			l.logger.Warn("load entries", append(attrs, "err", err)...)
			return
		}
		l.logger.Info("load entries", attrs...)
	}(time.Now())
	return l.next.Load(ctx, source)
}

// Ensure LoggingEntryService implements nanodocs.EntryService.
var _ nanodocs.EntryService = (*LoggingEntryService)(nil)

// LoggingEntryService wraps an EntryService with debug logging of cache use
// and lookups.
type LoggingEntryService struct {
	next   nanodocs.EntryService
	logger *slog.Logger
}

// NewLoggingEntryService creates a new LoggingEntryService.
func NewLoggingEntryService(next nanodocs.EntryService, logger *slog.Logger) *LoggingEntryService {
	return &LoggingEntryService{next: next, logger: logger}
}

// FindEntrySet delegates to the wrapped service and logs the cache status.
func (s *LoggingEntryService) FindEntrySet(ctx context.Context, category nanodocs.Category) (set *nanodocs.EntrySet, status nanodocs.CacheStatus, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("entry set",
			"category", category,
			"status", status.String(),
			"entries", set.Len(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindEntrySet(ctx, category)
}

// FindEntry delegates to the wrapped service and logs the lookup.
func (s *LoggingEntryService) FindEntry(ctx context.Context, category nanodocs.Category, key string) (entry *nanodocs.Entry, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find entry",
			"category", category,
			"key", key,
			"found", entry != nil,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindEntry(ctx, category, key)
}
