package core

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/itsuabush1003/trivia/backend/golang/internal/model"
	"github.com/itsuabush1003/trivia/backend/golang/internal/util"
)

// 1回の取得で使い切ったトークンをリセットする上限。超えたらErrExhausted
const MaxExhaustedRetries int = 3

// 結果を受け取りたい実行コンテキストでfnを動かす
type Dispatcher func(fn func())

func InlineDispatcher(fn func()) {
	fn()
}

// OpenTDBのセッショントークンを1つだけ持ち、それを使って問題を取得する
type TriviaQuestionService struct {
	api        ITriviaAPI
	dispatcher Dispatcher
	logger     *slog.Logger
	mu         sync.Mutex
	token      string
}

func (tqs *TriviaQuestionService) Token() (string, bool) {
	tqs.mu.Lock()
	defer tqs.mu.Unlock()
	return tqs.token, tqs.token != ""
}

// トークンを持っていれば何もしない。同時に呼ばれても二重に取得しないようリクエスト中もロックを持ったままにする
func (tqs *TriviaQuestionService) AcquireToken(ctx context.Context) error {
	tqs.mu.Lock()
	defer tqs.mu.Unlock()
	if tqs.token != "" {
		return nil
	}

	res, err := tqs.api.RequestToken(ctx)
	if err != nil {
		return &TokenAcquireError{Err: err}
	}
	if res.ResponseCode != ResponseSuccess {
		tqs.logger.Warn("token request rejected", "response_code", res.ResponseCode, "response_message", res.Message)
		return &TokenAcquireError{Err: &APIError{Code: res.ResponseCode}}
	}
	if res.Token == "" {
		return &TokenAcquireError{Err: errors.New("Empty token in response")}
	}
	tqs.token = res.Token
	tqs.logger.Debug("session token acquired")
	return nil
}

// トークン文字列はリセット後も変わらない
func (tqs *TriviaQuestionService) ResetToken(ctx context.Context) error {
	token, held := tqs.Token()
	if !held {
		return nil
	}
	if err := tqs.api.ResetToken(ctx, token); err != nil {
		return err
	}
	tqs.logger.Debug("session token reset")
	return nil
}

func (tqs *TriviaQuestionService) Fetch(ctx context.Context, req model.FetchRequest) ([]model.Question, error) {
	req, err := req.Normalized()
	if err != nil {
		return nil, &FetchError{Op: "fetch questions", Err: err}
	}
	return tqs.fetch(ctx, req, 0)
}

func (tqs *TriviaQuestionService) fetch(ctx context.Context, req model.FetchRequest, resets int) ([]model.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, &FetchError{Op: "fetch questions", Err: err}
	}

	if _, held := tqs.Token(); !held {
		if err := tqs.AcquireToken(ctx); err != nil {
			tqs.logger.Warn("proceeding without session token", "err", err)
		}
	}
	token, _ := tqs.Token()

	res, err := tqs.api.FetchQuestions(ctx, req, token)
	if err != nil {
		return nil, &FetchError{Op: "fetch questions", Err: err}
	}

	switch res.ResponseCode {
	case ResponseSuccess:
		return mapQuestions(res.Results), nil
	case ResponseTokenEmpty:
		if resets >= MaxExhaustedRetries {
			return nil, &FetchError{Op: "fetch questions", Err: ErrExhausted}
		}
		tqs.logger.Info("session token exhausted, resetting", "attempt", resets+1)
		if err := tqs.ResetToken(ctx); err != nil {
			tqs.logger.Warn("token reset failed", "err", err)
		}
		return tqs.fetch(ctx, req, resets+1)
	default:
		return nil, &FetchError{Op: "fetch questions", Err: &APIError{Code: res.ResponseCode}}
	}
}

// 失敗してもエラーは返さず、ログに出して空のスライスを返す
func (tqs *TriviaQuestionService) FetchQuestions(ctx context.Context, req model.FetchRequest) []model.Question {
	questions, err := tqs.Fetch(ctx, req)
	if err != nil {
		tqs.logger.Error("failed to load questions", "amount", req.Amount, "err", err)
		return []model.Question{}
	}
	return questions
}

// 別goroutineで取得し、結果はdispatcher経由でcompletionに渡す
func (tqs *TriviaQuestionService) FetchQuestionsAsync(ctx context.Context, req model.FetchRequest, completion func([]model.Question)) {
	go func() {
		questions := tqs.FetchQuestions(ctx, req)
		tqs.dispatcher(func() {
			completion(questions)
		})
	}()
}

func mapQuestions(results []model.APIQuestion) []model.Question {
	questions := make([]model.Question, 0, len(results))
	for _, r := range results {
		questions = append(questions, model.NewQuestion(
			util.DecodeTransportText(r.Category),
			util.DecodeTransportText(r.Question),
			util.DecodeTransportText(r.CorrectAnswer),
			util.DecodeTransportTexts(r.IncorrectAnswers),
		))
	}
	return questions
}

func NewTriviaQuestionService(api ITriviaAPI, dispatcher Dispatcher, logger *slog.Logger) *TriviaQuestionService {
	if dispatcher == nil {
		dispatcher = InlineDispatcher
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TriviaQuestionService{
		api:        api,
		dispatcher: dispatcher,
		logger:     logger.With("component", "trivia_question_service"),
	}
}
