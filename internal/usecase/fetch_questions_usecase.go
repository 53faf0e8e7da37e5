package usecase

import (
	"context"

	"github.com/itsuabush1003/trivia/backend/golang/internal/model"
)

type FetchQuestionsUsecase struct {
	qs IQuestionService
}

func (fqu *FetchQuestionsUsecase) Execute(ctx context.Context, req model.FetchRequest) []model.Question {
	return fqu.qs.FetchQuestions(ctx, req)
}

func NewFetchQuestionsUsecase(qs IQuestionService) *FetchQuestionsUsecase {
	return &FetchQuestionsUsecase{
		qs: qs,
	}
}
