package usecase

import (
	"github.com/google/uuid"

	"github.com/itsuabush1003/trivia/backend/golang/internal/model"
)

type QuizDTO struct {
	SessionID      uuid.UUID
	QuestionNumber int
	Total          int
	Category       string
	QuestionText   string
	Choices        []string
	CorrectCount   int
	Finished       bool
}

type AnswerDTO struct {
	IsCorrect     bool
	CorrectAnswer string
	Finished      bool
	CorrectCount  int
	Total         int
}

func toQuizDTO(session *model.QuizSession) QuizDTO {
	dto := QuizDTO{
		SessionID:      session.GetSessionID(),
		QuestionNumber: session.GetCurrentIndex() + 1,
		Total:          session.Total(),
		CorrectCount:   session.GetCorrectCount(),
		Finished:       session.IsFinished(),
	}
	question, choices, err := session.Current()
	if err != nil {
		// 終了済みなので出題する問題は無い
		dto.QuestionNumber = session.Total()
		return dto
	}
	dto.Category = question.GetCategory()
	dto.QuestionText = question.GetQuestionText()
	dto.Choices = choices
	return dto
}
