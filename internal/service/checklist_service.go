package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/HUPCF/Due-Diligence-Backend/internal/cache"
	apperrors "github.com/HUPCF/Due-Diligence-Backend/internal/errors"
	"github.com/HUPCF/Due-Diligence-Backend/internal/model"
	"github.com/HUPCF/Due-Diligence-Backend/internal/repository"
)

const checklistCacheTTL = 5 * time.Minute

// ChecklistService serves checklist reference data. It is immutable at
// runtime, so reads go through a short-lived Redis cache.
type ChecklistService interface {
	Categories(ctx context.Context) ([]model.ChecklistCategory, error)
	ItemsByCategory(ctx context.Context, categoryID uint) ([]model.ChecklistItem, error)
	ItemByID(ctx context.Context, id uint) (*model.ChecklistItem, error)
	Items(ctx context.Context) ([]model.ChecklistItemView, error)
}

type checklistService struct {
	checklist repository.ChecklistRepository
	cache     *cache.Client
}

// NewChecklistService creates a new checklist service.
func NewChecklistService(checklist repository.ChecklistRepository, cacheClient *cache.Client) ChecklistService {
	return &checklistService{checklist: checklist, cache: cacheClient}
}

func (s *checklistService) Categories(ctx context.Context) ([]model.ChecklistCategory, error) {
	var categories []model.ChecklistCategory
	err := s.cached(ctx, "checklist:categories", &categories, func() (interface{}, error) {
		return s.checklist.Categories(ctx)
	})
	return categories, err
}

func (s *checklistService) ItemsByCategory(ctx context.Context, categoryID uint) ([]model.ChecklistItem, error) {
	var items []model.ChecklistItem
	key := fmt.Sprintf("checklist:category:%d:items", categoryID)
	err := s.cached(ctx, key, &items, func() (interface{}, error) {
		return s.checklist.ItemsByCategory(ctx, categoryID)
	})
	return items, err
}

func (s *checklistService) ItemByID(ctx context.Context, id uint) (*model.ChecklistItem, error) {
	var item model.ChecklistItem
	key := fmt.Sprintf("checklist:item:%d", id)
	err := s.cached(ctx, key, &item, func() (interface{}, error) {
		return s.checklist.FindItem(ctx, id)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: checklist item", apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &item, nil
}

func (s *checklistService) Items(ctx context.Context) ([]model.ChecklistItemView, error) {
	var items []model.ChecklistItemView
	err := s.cached(ctx, "checklist:items", &items, func() (interface{}, error) {
		return s.checklist.Items(ctx)
	})
	return items, err
}

// cached reads through the cache: hit decodes into out, miss loads from the
// repository and stores the encoded result. Cache errors degrade to misses.
func (s *checklistService) cached(ctx context.Context, key string, out interface{}, load func() (interface{}, error)) error {
	if data, _ := s.cache.Get(ctx, key); data != nil {
		if err := json.Unmarshal(data, out); err == nil {
			return nil
		}
	}

	loaded, err := load()
	if err != nil {
		return err
	}

	data, err := json.Marshal(loaded)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	_ = s.cache.Set(ctx, key, data, checklistCacheTTL)
	return json.Unmarshal(data, out)
}
