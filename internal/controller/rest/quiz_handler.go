package controller

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/itsuabush1003/trivia/backend/golang/internal/usecase"
)

const maxBodyBytes int64 = 1 << 16

type quizJSON struct {
	SessionID      string   `json:"session_id"`
	QuestionNumber int      `json:"question_number"`
	Total          int      `json:"total"`
	Category       string   `json:"category,omitempty"`
	Question       string   `json:"question,omitempty"`
	Choices        []string `json:"choices,omitempty"`
	CorrectCount   int      `json:"correct_count"`
	Finished       bool     `json:"finished"`
}

func toQuizJSON(dto usecase.QuizDTO) quizJSON {
	return quizJSON{
		SessionID:      dto.SessionID.String(),
		QuestionNumber: dto.QuestionNumber,
		Total:          dto.Total,
		Category:       dto.Category,
		Question:       dto.QuestionText,
		Choices:        dto.Choices,
		CorrectCount:   dto.CorrectCount,
		Finished:       dto.Finished,
	}
}

type answerRequest struct {
	Answer string `json:"answer"`
}

type answerJSON struct {
	IsCorrect     bool   `json:"is_correct"`
	CorrectAnswer string `json:"correct_answer"`
	Finished      bool   `json:"finished"`
	CorrectCount  int    `json:"correct_count"`
	Total         int    `json:"total"`
}

type QuizHandler struct {
	squ *usecase.StartQuizUsecase
	gqu *usecase.GetQuizUsecase
	au  *usecase.AnswerUsecase
	rqu *usecase.RestartQuizUsecase
}

// ボディが無い場合は空のJSONとして扱う
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func sessionIDFromPath(r *http.Request) (uuid.UUID, error) {
	sid, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, errors.New("Invalid quiz session id")
	}
	return sid, nil
}

func (qh *QuizHandler) Start(w http.ResponseWriter, r *http.Request) {
	var params fetchParams
	if err := decodeBody(w, r, &params); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	req, err := params.toFetchRequest()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	quiz, err := qh.squ.Execute(r.Context(), req)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusCreated, toQuizJSON(quiz))
}

func (qh *QuizHandler) Get(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	quiz, err := qh.gqu.Execute(sid)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, toQuizJSON(quiz))
}

func (qh *QuizHandler) Answer(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var body answerRequest
	if err := decodeBody(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res, err := qh.au.Execute(sid, body.Answer)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, answerJSON{
		IsCorrect:     res.IsCorrect,
		CorrectAnswer: res.CorrectAnswer,
		Finished:      res.Finished,
		CorrectCount:  res.CorrectCount,
		Total:         res.Total,
	})
}

func (qh *QuizHandler) Restart(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	quiz, err := qh.rqu.Execute(r.Context(), sid)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, toQuizJSON(quiz))
}

func NewQuizHandler(
	squ *usecase.StartQuizUsecase,
	gqu *usecase.GetQuizUsecase,
	au *usecase.AnswerUsecase,
	rqu *usecase.RestartQuizUsecase,
) *QuizHandler {
	return &QuizHandler{
		squ: squ,
		gqu: gqu,
		au:  au,
		rqu: rqu,
	}
}
