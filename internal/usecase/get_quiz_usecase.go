package usecase

import "github.com/google/uuid"

type GetQuizUsecase struct {
	qsr IQuizSessionRepository
}

func (gqu *GetQuizUsecase) Execute(sid uuid.UUID) (QuizDTO, error) {
	session, err := gqu.qsr.FetchByID(sid)
	if err != nil {
		return QuizDTO{}, err
	}
	return toQuizDTO(session), nil
}

func NewGetQuizUsecase(qsr IQuizSessionRepository) *GetQuizUsecase {
	return &GetQuizUsecase{
		qsr: qsr,
	}
}
