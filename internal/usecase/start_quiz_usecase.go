package usecase

import (
	"context"

	"github.com/itsuabush1003/trivia/backend/golang/internal/model"
)

type StartQuizUsecase struct {
	qs  IQuestionService
	qsr IQuizSessionRepository
}

func (squ *StartQuizUsecase) Execute(ctx context.Context, req model.FetchRequest) (QuizDTO, error) {
	questions := squ.qs.FetchQuestions(ctx, req)
	session, err := model.NewQuizSession(req, questions)
	if err != nil {
		return QuizDTO{}, err
	}
	if err := squ.qsr.Save(session); err != nil {
		return QuizDTO{}, err
	}
	return toQuizDTO(session), nil
}

func NewStartQuizUsecase(qs IQuestionService, qsr IQuizSessionRepository) *StartQuizUsecase {
	return &StartQuizUsecase{
		qs:  qs,
		qsr: qsr,
	}
}
