package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/itsuabush1003/trivia/backend/golang/internal/model"
)

type IQuestionService interface {
	FetchQuestions(context.Context, model.FetchRequest) []model.Question
}

type ICategoryAPI interface {
	FetchCategories(context.Context) ([]model.Category, error)
}

type IQuizSessionRepository interface {
	Save(*model.QuizSession) error
	FetchByID(uuid.UUID) (*model.QuizSession, error)
	Update(uuid.UUID, func(*model.QuizSession) error) (*model.QuizSession, error)
}

type ICategoryRepository interface {
	Save([]model.Category)
	Fetch() ([]model.Category, bool)
}
