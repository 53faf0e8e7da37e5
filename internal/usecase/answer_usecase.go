package usecase

import (
	"github.com/google/uuid"

	"github.com/itsuabush1003/trivia/backend/golang/internal/model"
)

type AnswerUsecase struct {
	qsr IQuizSessionRepository
}

func (au *AnswerUsecase) Execute(sid uuid.UUID, answer string) (AnswerDTO, error) {
	var result model.AnswerResult
	session, err := au.qsr.Update(sid, func(qs *model.QuizSession) error {
		var err error
		result, err = qs.Answer(answer)
		return err
	})
	if err != nil {
		return AnswerDTO{}, err
	}
	return AnswerDTO{
		IsCorrect:     result.IsCorrect,
		CorrectAnswer: result.CorrectAnswer,
		Finished:      result.Finished,
		CorrectCount:  session.GetCorrectCount(),
		Total:         session.Total(),
	}, nil
}

func NewAnswerUsecase(qsr IQuizSessionRepository) *AnswerUsecase {
	return &AnswerUsecase{
		qsr: qsr,
	}
}
