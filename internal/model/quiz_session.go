package model

import (
	"errors"
	"slices"

	"github.com/google/uuid"

	"github.com/itsuabush1003/trivia/backend/golang/internal/util"
)

var (
	ErrNoQuestions  = errors.New("Failed to load questions.")
	ErrQuizFinished = errors.New("Quiz has already finished")
)

type AnswerResult struct {
	IsCorrect     bool
	CorrectAnswer string
	Finished      bool
}

// 1回分の問題セットに対する回答の進行状況
type QuizSession struct {
	sessionID    uuid.UUID
	request      FetchRequest
	questions    []Question
	choices      [][]string
	currentIndex int
	correctCount int
}

func (qs *QuizSession) GetSessionID() uuid.UUID {
	return qs.sessionID
}

func (qs *QuizSession) GetRequest() FetchRequest {
	return qs.request
}

func (qs *QuizSession) GetCurrentIndex() int {
	return qs.currentIndex
}

func (qs *QuizSession) GetCorrectCount() int {
	return qs.correctCount
}

func (qs *QuizSession) GetQuestions() []Question {
	return slices.Clone(qs.questions)
}

// 問題ごとのシャッフル済み選択肢。保存用なので中身までコピーして返す
func (qs *QuizSession) GetChoices() [][]string {
	choices := make([][]string, 0, len(qs.choices))
	for _, c := range qs.choices {
		choices = append(choices, slices.Clone(c))
	}
	return choices
}

func (qs *QuizSession) Total() int {
	return len(qs.questions)
}

func (qs *QuizSession) IsFinished() bool {
	return qs.currentIndex >= len(qs.questions)
}

// 現在の問題とシャッフル済みの選択肢を返す
func (qs *QuizSession) Current() (Question, []string, error) {
	if qs.IsFinished() {
		return Question{}, nil, ErrQuizFinished
	}
	choices := make([]string, len(qs.choices[qs.currentIndex]))
	copy(choices, qs.choices[qs.currentIndex])
	return qs.questions[qs.currentIndex], choices, nil
}

func (qs *QuizSession) Answer(answer string) (AnswerResult, error) {
	if qs.IsFinished() {
		return AnswerResult{}, ErrQuizFinished
	}
	question := qs.questions[qs.currentIndex]
	isCorrect := question.IsCorrect(answer)
	if isCorrect {
		qs.correctCount++
	}
	qs.currentIndex++
	return AnswerResult{
		IsCorrect:     isCorrect,
		CorrectAnswer: question.GetCorrectAnswer(),
		Finished:      qs.IsFinished(),
	}, nil
}

// 新しい問題セットに差し替えて最初の問題からやり直す
func (qs *QuizSession) Restart(questions []Question) error {
	if len(questions) == 0 {
		return ErrNoQuestions
	}
	qs.questions = questions
	qs.choices = shuffleChoices(questions)
	qs.currentIndex = 0
	qs.correctCount = 0
	return nil
}

func shuffleChoices(questions []Question) [][]string {
	choices := make([][]string, len(questions))
	for i, q := range questions {
		choices[i] = util.ShuffleSlice(q.Choices())
	}
	return choices
}

func NewQuizSession(request FetchRequest, questions []Question) (*QuizSession, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	sessionID, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}
	return &QuizSession{
		sessionID:    sessionID,
		request:      request,
		questions:    questions,
		choices:      shuffleChoices(questions),
		currentIndex: 0,
		correctCount: 0,
	}, nil
}

// 保存済みの状態から復元する。選択肢の並びは保存時のものをそのまま使う
func RestoreQuizSession(
	sessionID uuid.UUID,
	request FetchRequest,
	questions []Question,
	choices [][]string,
	currentIndex int,
	correctCount int,
) (*QuizSession, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	if len(choices) != len(questions) {
		return nil, errors.New("Choices do not match questions")
	}
	if currentIndex < 0 || currentIndex > len(questions) {
		return nil, errors.New("Current index is out of range")
	}
	if correctCount < 0 || correctCount > currentIndex {
		return nil, errors.New("Correct count is out of range")
	}
	cs := make([][]string, 0, len(choices))
	for _, c := range choices {
		cs = append(cs, slices.Clone(c))
	}
	return &QuizSession{
		sessionID:    sessionID,
		request:      request,
		questions:    slices.Clone(questions),
		choices:      cs,
		currentIndex: currentIndex,
		correctCount: correctCount,
	}, nil
}
