package mock

import (
	"context"

	"github.com/fwojciec/nanodocs"
)

var _ nanodocs.EntrySetLoader = (*EntrySetLoader)(nil)

// EntrySetLoader is a mock implementation of nanodocs.EntrySetLoader.
type EntrySetLoader struct {
	LoadFn func(ctx context.Context, source nanodocs.Source) (*nanodocs.EntrySet, error)
}

func (l *EntrySetLoader) Load(ctx context.Context, source nanodocs.Source) (*nanodocs.EntrySet, error) {
	return l.LoadFn(ctx, source)
}

var _ nanodocs.EntryService = (*EntryService)(nil)

// EntryService is a mock implementation of nanodocs.EntryService.
type EntryService struct {
	FindEntrySetFn func(ctx context.Context, category nanodocs.Category) (*nanodocs.EntrySet, nanodocs.CacheStatus, error)
	FindEntryFn    func(ctx context.Context, category nanodocs.Category, key string) (*nanodocs.Entry, error)
}

func (s *EntryService) FindEntrySet(ctx context.Context, category nanodocs.Category) (*nanodocs.EntrySet, nanodocs.CacheStatus, error) {
	return s.FindEntrySetFn(ctx, category)
}

func (s *EntryService) FindEntry(ctx context.Context, category nanodocs.Category, key string) (*nanodocs.Entry, error) {
	return s.FindEntryFn(ctx, category, key)
}
