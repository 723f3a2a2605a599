package service

import (
	"Atlania/internal/api/dto"
	"Atlania/internal/pkg/consts"
	"Atlania/internal/repository"
	"context"
	log "log/slog"

	"github.com/goccy/go-json"
)

type CategoryService interface {
	GetCategories(ctx context.Context) ([]*dto.CategoryDTO, error)
}

type categoryServiceImpl struct {
	categoryRepo repository.CategoryRepo
	store        KVStore
}

func NewCategoryService(categoryRepo repository.CategoryRepo, store KVStore) CategoryService {
	return &categoryServiceImpl{
		categoryRepo: categoryRepo,
		store:        store,
	}
}

// GetCategories 分类列表，缓存失败时直接读库
func (s *categoryServiceImpl) GetCategories(ctx context.Context) ([]*dto.CategoryDTO, error) {
	cached, err := s.store.GetValue(ctx, consts.CategoryListKey)
	if err != nil {
		log.WarnContext(ctx, "category cache read failed", "err", err)
	}
	if cached != "" {
		var res []*dto.CategoryDTO
		if err = json.Unmarshal([]byte(cached), &res); err == nil {
			return res, nil
		}
		log.WarnContext(ctx, "category cache corrupted", "err", err)
	}

	categories, err := s.categoryRepo.GetCategories(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.CategoryDTO, 0, len(categories))
	for _, category := range categories {
		res = append(res, toCategoryDTO(category))
	}

	if payload, err := json.Marshal(res); err == nil {
		if err = s.store.SetWithExpiration(ctx, consts.CategoryListKey, string(payload), consts.CategoryListTTL); err != nil {
			log.WarnContext(ctx, "category cache write failed", "err", err)
		}
	}
	return res, nil
}
