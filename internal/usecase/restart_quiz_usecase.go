package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/itsuabush1003/trivia/backend/golang/internal/model"
)

type RestartQuizUsecase struct {
	qs  IQuestionService
	qsr IQuizSessionRepository
}

// 開始時と同じ条件で問題を取り直して最初からやり直す。取得できなかった場合はセッションをそのままにする
func (rqu *RestartQuizUsecase) Execute(ctx context.Context, sid uuid.UUID) (QuizDTO, error) {
	session, err := rqu.qsr.FetchByID(sid)
	if err != nil {
		return QuizDTO{}, err
	}
	questions := rqu.qs.FetchQuestions(ctx, session.GetRequest())
	if len(questions) == 0 {
		return QuizDTO{}, model.ErrNoQuestions
	}
	session, err = rqu.qsr.Update(sid, func(qs *model.QuizSession) error {
		return qs.Restart(questions)
	})
	if err != nil {
		return QuizDTO{}, err
	}
	return toQuizDTO(session), nil
}

func NewRestartQuizUsecase(qs IQuestionService, qsr IQuizSessionRepository) *RestartQuizUsecase {
	return &RestartQuizUsecase{
		qs:  qs,
		qsr: qsr,
	}
}
