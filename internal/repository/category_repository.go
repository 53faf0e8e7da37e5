package repository

import (
	"slices"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/itsuabush1003/trivia/backend/golang/internal/model"
)

const categoriesKey string = "categories"

type CategoryRepository struct {
	c   *cache.Cache
	ttl time.Duration
}

func (cr *CategoryRepository) Save(categories []model.Category) {
	cr.c.Set(categoriesKey, slices.Clone(categories), cr.ttl)
}

func (cr *CategoryRepository) Fetch() ([]model.Category, bool) {
	v, found := cr.c.Get(categoriesKey)
	if !found {
		return nil, false
	}
	categories, ok := v.([]model.Category)
	if !ok {
		cr.c.Delete(categoriesKey)
		return nil, false
	}
	return slices.Clone(categories), true
}

func NewCategoryRepository(c *cache.Cache, ttl time.Duration) *CategoryRepository {
	return &CategoryRepository{
		c:   c,
		ttl: ttl,
	}
}
