package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/require"

	"github.com/itsuabush1003/trivia/backend/golang/internal/model"
	"github.com/itsuabush1003/trivia/backend/golang/internal/repository"
)

type stubQuestionService struct {
	batches  [][]model.Question
	requests []model.FetchRequest
}

func (s *stubQuestionService) FetchQuestions(ctx context.Context, req model.FetchRequest) []model.Question {
	s.requests = append(s.requests, req)
	if len(s.batches) == 0 {
		return []model.Question{}
	}
	batch := s.batches[0]
	s.batches = s.batches[1:]
	return batch
}

type stubCategoryAPI struct {
	categories []model.Category
	err        error
	calls      int
}

func (s *stubCategoryAPI) FetchCategories(ctx context.Context) ([]model.Category, error) {
	s.calls++
	return s.categories, s.err
}

func batch(prefix string, n int) []model.Question {
	questions := make([]model.Question, 0, n)
	for i := range n {
		questions = append(questions, model.NewQuestion(
			"General Knowledge",
			prefix+" question "+string(rune('A'+i)),
			"right",
			[]string{"wrong 1", "wrong 2", "wrong 3"},
		))
	}
	return questions
}

// SQLiteの代わりにメモリ上で持つセッションストア
type memorySessionRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*model.QuizSession
}

func copySession(qs *model.QuizSession) *model.QuizSession {
	c, err := model.RestoreQuizSession(
		qs.GetSessionID(),
		qs.GetRequest(),
		qs.GetQuestions(),
		qs.GetChoices(),
		qs.GetCurrentIndex(),
		qs.GetCorrectCount(),
	)
	if err != nil {
		panic(err)
	}
	return c
}

func (m *memorySessionRepo) Save(session *model.QuizSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.GetSessionID()] = copySession(session)
	return nil
}

func (m *memorySessionRepo) FetchByID(sid uuid.UUID) (*model.QuizSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[sid]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	return copySession(session), nil
}

func (m *memorySessionRepo) Update(sid uuid.UUID, fn func(*model.QuizSession) error) (*model.QuizSession, error) {
	session, err := m.FetchByID(sid)
	if err != nil {
		return nil, err
	}
	if err := fn(session); err != nil {
		return nil, err
	}
	return session, m.Save(session)
}

func newSessionRepo() *memorySessionRepo {
	return &memorySessionRepo{sessions: map[uuid.UUID]*model.QuizSession{}}
}

func TestFetchQuestionsUsecase(t *testing.T) {
	qs := &stubQuestionService{batches: [][]model.Question{batch("first", 5)}}
	questions := NewFetchQuestionsUsecase(qs).Execute(context.Background(), model.DefaultFetchRequest())
	require.Len(t, questions, 5)

	questions = NewFetchQuestionsUsecase(qs).Execute(context.Background(), model.DefaultFetchRequest())
	require.Empty(t, questions)
}

func TestQuizFlow(t *testing.T) {
	ctx := context.Background()
	repo := newSessionRepo()
	qs := &stubQuestionService{batches: [][]model.Question{batch("first", 2), batch("second", 3)}}
	category := 9
	req, err := model.NewFetchRequest(2, &category, model.Easy)
	require.NoError(t, err)

	quiz, err := NewStartQuizUsecase(qs, repo).Execute(ctx, req)
	require.NoError(t, err)
	require.Equal(t, 1, quiz.QuestionNumber)
	require.Equal(t, 2, quiz.Total)
	require.Equal(t, "first question A", quiz.QuestionText)
	require.ElementsMatch(t, []string{"right", "wrong 1", "wrong 2", "wrong 3"}, quiz.Choices)

	answer := NewAnswerUsecase(repo)
	res, err := answer.Execute(quiz.SessionID, "right")
	require.NoError(t, err)
	require.True(t, res.IsCorrect)
	require.False(t, res.Finished)

	current, err := NewGetQuizUsecase(repo).Execute(quiz.SessionID)
	require.NoError(t, err)
	require.Equal(t, 2, current.QuestionNumber)
	require.Equal(t, "first question B", current.QuestionText)

	res, err = answer.Execute(quiz.SessionID, "wrong 2")
	require.NoError(t, err)
	require.False(t, res.IsCorrect)
	require.Equal(t, "right", res.CorrectAnswer)
	require.True(t, res.Finished)
	require.Equal(t, 1, res.CorrectCount)
	require.Equal(t, 2, res.Total)

	_, err = answer.Execute(quiz.SessionID, "right")
	require.ErrorIs(t, err, model.ErrQuizFinished)

	finished, err := NewGetQuizUsecase(repo).Execute(quiz.SessionID)
	require.NoError(t, err)
	require.True(t, finished.Finished)
	require.Empty(t, finished.QuestionText)

	restarted, err := NewRestartQuizUsecase(qs, repo).Execute(ctx, quiz.SessionID)
	require.NoError(t, err)
	require.Equal(t, quiz.SessionID, restarted.SessionID)
	require.Equal(t, 1, restarted.QuestionNumber)
	require.Equal(t, 3, restarted.Total)
	require.Equal(t, 0, restarted.CorrectCount)
	require.False(t, restarted.Finished)
	require.Equal(t, "second question A", restarted.QuestionText)

	require.Len(t, qs.requests, 2)
	require.Equal(t, qs.requests[0], qs.requests[1])
}

func TestStartQuizWithoutQuestions(t *testing.T) {
	_, err := NewStartQuizUsecase(&stubQuestionService{}, newSessionRepo()).Execute(context.Background(), model.DefaultFetchRequest())
	require.ErrorIs(t, err, model.ErrNoQuestions)
}

func TestRestartKeepsSessionWhenFetchIsEmpty(t *testing.T) {
	ctx := context.Background()
	repo := newSessionRepo()
	qs := &stubQuestionService{batches: [][]model.Question{batch("only", 2)}}
	quiz, err := NewStartQuizUsecase(qs, repo).Execute(ctx, model.DefaultFetchRequest())
	require.NoError(t, err)
	_, err = NewAnswerUsecase(repo).Execute(quiz.SessionID, "right")
	require.NoError(t, err)

	_, err = NewRestartQuizUsecase(qs, repo).Execute(ctx, quiz.SessionID)
	require.ErrorIs(t, err, model.ErrNoQuestions)

	current, err := NewGetQuizUsecase(repo).Execute(quiz.SessionID)
	require.NoError(t, err)
	require.Equal(t, 2, current.QuestionNumber)
	require.Equal(t, 1, current.CorrectCount)
}

func TestUnknownSession(t *testing.T) {
	repo := newSessionRepo()
	_, err := NewGetQuizUsecase(repo).Execute(uuid.New())
	require.ErrorIs(t, err, repository.ErrSessionNotFound)
	_, err = NewAnswerUsecase(repo).Execute(uuid.New(), "x")
	require.ErrorIs(t, err, repository.ErrSessionNotFound)
	_, err = NewRestartQuizUsecase(&stubQuestionService{}, repo).Execute(context.Background(), uuid.New())
	require.ErrorIs(t, err, repository.ErrSessionNotFound)
}

func TestListCategoriesCachesResult(t *testing.T) {
	api := &stubCategoryAPI{categories: []model.Category{{ID: 9, Name: "General Knowledge"}}}
	cr := repository.NewCategoryRepository(cache.New(time.Minute, time.Minute), time.Minute)
	lcu := NewListCategoriesUsecase(api, cr)

	for range 3 {
		categories, err := lcu.Execute(context.Background())
		require.NoError(t, err)
		require.Equal(t, api.categories, categories)
	}
	require.Equal(t, 1, api.calls)
}

func TestListCategoriesDoesNotCacheErrors(t *testing.T) {
	api := &stubCategoryAPI{err: errors.New("upstream down")}
	cr := repository.NewCategoryRepository(cache.New(time.Minute, time.Minute), time.Minute)
	lcu := NewListCategoriesUsecase(api, cr)

	_, err := lcu.Execute(context.Background())
	require.Error(t, err)
	_, err = lcu.Execute(context.Background())
	require.Error(t, err)
	require.Equal(t, 2, api.calls)
}
