package usecase

import (
	"context"

	"github.com/itsuabush1003/trivia/backend/golang/internal/model"
)

type ListCategoriesUsecase struct {
	api ICategoryAPI
	cr  ICategoryRepository
}

func (lcu *ListCategoriesUsecase) Execute(ctx context.Context) ([]model.Category, error) {
	if categories, found := lcu.cr.Fetch(); found {
		return categories, nil
	}
	categories, err := lcu.api.FetchCategories(ctx)
	if err != nil {
		return nil, err
	}
	lcu.cr.Save(categories)
	return categories, nil
}

func NewListCategoriesUsecase(api ICategoryAPI, cr ICategoryRepository) *ListCategoriesUsecase {
	return &ListCategoriesUsecase{
		api: api,
		cr:  cr,
	}
}
