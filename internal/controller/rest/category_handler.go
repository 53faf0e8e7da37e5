package controller

import (
	"net/http"

	"github.com/itsuabush1003/trivia/backend/golang/internal/usecase"
)

type CategoryHandler struct {
	lcu *usecase.ListCategoriesUsecase
}

func (ch *CategoryHandler) Handle(w http.ResponseWriter, r *http.Request) {
	categories, err := ch.lcu.Execute(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"categories": categories,
	})
}

func NewCategoryHandler(lcu *usecase.ListCategoriesUsecase) *CategoryHandler {
	return &CategoryHandler{
		lcu: lcu,
	}
}
