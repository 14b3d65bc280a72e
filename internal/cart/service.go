package cart

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type Store interface {
	GetOrCreate(ctx context.Context, userID string) (*Cart, error)
	UpsertLine(ctx context.Context, userID, productID, size string, qty int) (*Cart, error)
	UpdateLineQuantity(ctx context.Context, userID, lineID string, qty int) (*Cart, error)
	RemoveLine(ctx context.Context, userID, lineID string) (*Cart, error)
	Clear(ctx context.Context, userID string) (*Cart, error)
	Merge(ctx context.Context, userID string, lines []GuestLine) (*Cart, error)
}

type Cache interface {
	Get(ctx context.Context, userID string) (*Cart, error)
	Set(ctx context.Context, c *Cart) error
	Delete(ctx context.Context, userID string) error
}

type Service struct {
	store Store
	cache Cache
	log   *zap.Logger
	sfg   singleflight.Group // cegah cache stampede per user
}

func NewService(store Store, cache Cache, log *zap.Logger) *Service {
	return &Service{store: store, cache: cache, log: log}
}

func (s *Service) Get(ctx context.Context, userID string) (*Cart, error) {
	v, err, _ := s.sfg.Do(userID, func() (any, error) {
		c, err := s.cache.Get(ctx, userID)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			s.log.Warn("cart cache get", zap.Error(err))
		}

		c, err = s.store.GetOrCreate(ctx, userID)
		if err != nil {
			return nil, err
		}
		s.refresh(c)
		return c, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Cart), nil
}

func (s *Service) AddLine(ctx context.Context, userID, productID, size string, qty int) (*Cart, error) {
	return s.afterMutation(s.store.UpsertLine(ctx, userID, productID, size, qty))
}

func (s *Service) UpdateLine(ctx context.Context, userID, lineID string, qty int) (*Cart, error) {
	return s.afterMutation(s.store.UpdateLineQuantity(ctx, userID, lineID, qty))
}

func (s *Service) RemoveLine(ctx context.Context, userID, lineID string) (*Cart, error) {
	return s.afterMutation(s.store.RemoveLine(ctx, userID, lineID))
}

func (s *Service) Clear(ctx context.Context, userID string) (*Cart, error) {
	return s.afterMutation(s.store.Clear(ctx, userID))
}

func (s *Service) Merge(ctx context.Context, userID string, lines []GuestLine) (*Cart, error) {
	return s.afterMutation(s.store.Merge(ctx, userID, lines))
}

// afterMutation: hasil mutasi adalah state otoritatif, langsung tulis ke cache.
func (s *Service) afterMutation(c *Cart, err error) (*Cart, error) {
	if err != nil {
		return nil, err
	}
	s.refresh(c)
	return c, nil
}

func (s *Service) refresh(c *Cart) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Set(ctx, c); err != nil {
		s.log.Warn("cart cache set", zap.Error(err))
	}
}
