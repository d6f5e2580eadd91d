package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dream-analyzer/backend/internal/common"
	"dream-analyzer/backend/internal/constants"
	"dream-analyzer/backend/internal/db/repositories"
	"dream-analyzer/backend/internal/metrics"
	"dream-analyzer/backend/internal/models/dtos"
)

var ErrInvalidPagination = errors.New("invalid pagination")

type DreamService struct {
	dreams   *repositories.DreamRepository
	accounts AccountFinder
	cache    common.CacheInterface
	ttl      time.Duration
	metrics  *metrics.MetricsRegistry
}

func NewDreamService(
	dreams *repositories.DreamRepository,
	accounts AccountFinder,
	cache common.CacheInterface,
	ttl time.Duration,
	metricsReg *metrics.MetricsRegistry,
) *DreamService {
	return &DreamService{
		dreams:   dreams,
		accounts: accounts,
		cache:    cache,
		ttl:      ttl,
		metrics:  metricsReg,
	}
}

// GetHistory returns one page of the user's dreams, newest first. Pages are cached for the configured TTL.
func (s *DreamService) GetHistory(ctx context.Context, telegramID int64, page, pageSize int) (*dtos.DreamHistoryResponse, error) {
	if page < 1 || page > constants.MaxHistoryPage || pageSize < 1 || pageSize > constants.MaxHistoryPageSize {
		return nil, ErrInvalidPagination
	}

	key := fmt.Sprintf("%s%d_%d_%d", constants.CachePrefixDreamHistory, telegramID, page, pageSize)

	history, hit, err := common.GetOrSetJSON(s.cache, key, s.ttl, func() (*dtos.DreamHistoryResponse, error) {
		return s.loadHistory(ctx, telegramID, page, pageSize)
	})
	if err != nil {
		return nil, err
	}

	s.observeCache(hit)
	return history, nil
}

func (s *DreamService) loadHistory(ctx context.Context, telegramID int64, page, pageSize int) (*dtos.DreamHistoryResponse, error) {
	user, err := s.accounts.GetUserByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}

	offset := (page - 1) * pageSize
	dreams, total, err := s.dreams.ListByUser(ctx, user.ID, pageSize, offset)
	if err != nil {
		return nil, err
	}

	entries := make([]dtos.DreamEntry, 0, len(dreams))
	for _, d := range dreams {
		entries = append(entries, dtos.DreamEntry{
			ID:             d.ID,
			DreamText:      d.DreamText,
			Interpretation: d.Interpretation,
			CreatedAt:      d.CreatedAt,
		})
	}

	return &dtos.DreamHistoryResponse{
		Dreams:   entries,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
		HasMore:  int64(offset+len(entries)) < total,
	}, nil
}

func (s *DreamService) observeCache(hit bool) {
	if s.metrics == nil {
		return
	}
	pattern := string(constants.CachePrefixDreamHistory)
	if hit {
		s.metrics.CacheHitsTotal.WithLabelValues(pattern).Inc()
	} else {
		s.metrics.CacheMissesTotal.WithLabelValues(pattern).Inc()
	}
}
