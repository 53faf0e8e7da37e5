package core

import (
	"context"

	"github.com/itsuabush1003/trivia/backend/golang/internal/model"
)

type ITriviaAPI interface {
	RequestToken(context.Context) (model.APITokenResponse, error)
	ResetToken(context.Context, string) error
	FetchQuestions(context.Context, model.FetchRequest, string) (model.APIQuestionsResponse, error)
}
