package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/itsuabush1003/trivia/backend/golang/internal/model"
)

var ErrSessionNotFound = errors.New("Quiz session not found")

type IDatabase interface {
	Get(dest any, query string, params ...any) error
	Select(dest any, query string, params ...any) error
	Transaction(fn func(tx *sqlx.Tx) error) error
}

type DBQuizSessionRow struct {
	SessionID    string        `db:"session_id"`
	Amount       int           `db:"amount"`
	Category     sql.NullInt64 `db:"category"`
	Difficulty   string        `db:"difficulty"`
	CurrentIndex int           `db:"current_index"`
	CorrectCount int           `db:"correct_count"`
	ExpiresAt    int64         `db:"expires_at"`
}

type DBQuizQuestionRow struct {
	SessionID        string `db:"session_id"`
	Position         int    `db:"position"`
	Category         string `db:"category"`
	QuestionText     string `db:"question_text"`
	CorrectAnswer    string `db:"correct_answer"`
	IncorrectAnswers string `db:"incorrect_answers"`
	Choices          string `db:"choices"`
}

// セッションはSQLiteに置く。保存のたびに有効期限をttl分延ばす
type QuizSessionRepository struct {
	db  IDatabase
	ttl time.Duration
	now func() time.Time
	mu  sync.Mutex
}

func (qsr *QuizSessionRepository) Save(session *model.QuizSession) error {
	if session == nil {
		return errors.New("Cannot save nil session")
	}
	sessionRow, questionRows, err := toRows(session, qsr.now().Add(qsr.ttl))
	if err != nil {
		return err
	}

	return qsr.db.Transaction(func(tx *sqlx.Tx) error {
		// 期限切れのセッションはついでに掃除する。問題はON DELETE CASCADEで消える
		if _, err := tx.Exec("DELETE FROM QuizSession WHERE expires_at <= ?", qsr.now().UnixNano()); err != nil {
			return err
		}
		if _, err := tx.NamedExec(`INSERT INTO QuizSession
			(session_id, amount, category, difficulty, current_index, correct_count, expires_at)
			VALUES (:session_id, :amount, :category, :difficulty, :current_index, :correct_count, :expires_at)
			ON CONFLICT(session_id) DO UPDATE SET
				amount = excluded.amount,
				category = excluded.category,
				difficulty = excluded.difficulty,
				current_index = excluded.current_index,
				correct_count = excluded.correct_count,
				expires_at = excluded.expires_at`, sessionRow); err != nil {
			return err
		}
		if _, err := tx.Exec("DELETE FROM QuizQuestion WHERE session_id = ?", sessionRow.SessionID); err != nil {
			return err
		}
		_, err := tx.NamedExec(`INSERT INTO QuizQuestion
			(session_id, position, category, question_text, correct_answer, incorrect_answers, choices)
			VALUES (:session_id, :position, :category, :question_text, :correct_answer, :incorrect_answers, :choices)`, questionRows)
		return err
	})
}

func (qsr *QuizSessionRepository) FetchByID(sid uuid.UUID) (*model.QuizSession, error) {
	sessionRow := DBQuizSessionRow{}
	if err := qsr.db.Get(&sessionRow, "SELECT * FROM QuizSession WHERE session_id = ? AND expires_at > ?", sid.String(), qsr.now().UnixNano()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	questionRows := []DBQuizQuestionRow{}
	if err := qsr.db.Select(&questionRows, "SELECT * FROM QuizQuestion WHERE session_id = ? ORDER BY position", sid.String()); err != nil {
		return nil, err
	}
	return fromRows(sid, sessionRow, questionRows)
}

// fnを適用した結果を保存する。同時に回答されても取りこぼさないよう直列化する
func (qsr *QuizSessionRepository) Update(sid uuid.UUID, fn func(*model.QuizSession) error) (*model.QuizSession, error) {
	qsr.mu.Lock()
	defer qsr.mu.Unlock()
	session, err := qsr.FetchByID(sid)
	if err != nil {
		return nil, err
	}
	if err := fn(session); err != nil {
		return nil, err
	}
	if err := qsr.Save(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (qsr *QuizSessionRepository) Remove(sid uuid.UUID) error {
	return qsr.db.Transaction(func(tx *sqlx.Tx) error {
		_, err := tx.Exec("DELETE FROM QuizSession WHERE session_id = ?", sid.String())
		return err
	})
}

func toRows(session *model.QuizSession, expiresAt time.Time) (DBQuizSessionRow, []DBQuizQuestionRow, error) {
	req := session.GetRequest()
	sessionRow := DBQuizSessionRow{
		SessionID:    session.GetSessionID().String(),
		Amount:       req.Amount,
		Difficulty:   req.Difficulty.String(),
		CurrentIndex: session.GetCurrentIndex(),
		CorrectCount: session.GetCorrectCount(),
		ExpiresAt:    expiresAt.UnixNano(),
	}
	if req.HasCategory() {
		sessionRow.Category = sql.NullInt64{Int64: int64(*req.Category), Valid: true}
	}

	questions := session.GetQuestions()
	choices := session.GetChoices()
	questionRows := make([]DBQuizQuestionRow, 0, len(questions))
	for i, q := range questions {
		incorrect, err := json.Marshal(q.GetIncorrectAnswers())
		if err != nil {
			return DBQuizSessionRow{}, nil, err
		}
		shuffled, err := json.Marshal(choices[i])
		if err != nil {
			return DBQuizSessionRow{}, nil, err
		}
		questionRows = append(questionRows, DBQuizQuestionRow{
			SessionID:        sessionRow.SessionID,
			Position:         i,
			Category:         q.GetCategory(),
			QuestionText:     q.GetQuestionText(),
			CorrectAnswer:    q.GetCorrectAnswer(),
			IncorrectAnswers: string(incorrect),
			Choices:          string(shuffled),
		})
	}
	return sessionRow, questionRows, nil
}

func fromRows(sid uuid.UUID, sessionRow DBQuizSessionRow, questionRows []DBQuizQuestionRow) (*model.QuizSession, error) {
	difficulty, err := model.ParseDifficulty(sessionRow.Difficulty)
	if err != nil {
		return nil, err
	}
	req := model.FetchRequest{
		Amount:     sessionRow.Amount,
		Difficulty: difficulty,
	}
	if sessionRow.Category.Valid {
		category := int(sessionRow.Category.Int64)
		req.Category = &category
	}

	questions := make([]model.Question, 0, len(questionRows))
	choices := make([][]string, 0, len(questionRows))
	for _, row := range questionRows {
		var incorrect, shuffled []string
		if err := json.Unmarshal([]byte(row.IncorrectAnswers), &incorrect); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(row.Choices), &shuffled); err != nil {
			return nil, err
		}
		questions = append(questions, model.NewQuestion(row.Category, row.QuestionText, row.CorrectAnswer, incorrect))
		choices = append(choices, shuffled)
	}
	return model.RestoreQuizSession(sid, req, questions, choices, sessionRow.CurrentIndex, sessionRow.CorrectCount)
}

func NewQuizSessionRepository(db IDatabase, ttl time.Duration) *QuizSessionRepository {
	return &QuizSessionRepository{
		db:  db,
		ttl: ttl,
		now: time.Now,
	}
}
