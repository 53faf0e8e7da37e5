package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/itsuabush1003/trivia/backend/golang/internal/model"
	"github.com/itsuabush1003/trivia/backend/golang/internal/repository"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrQuizFinished):
		return http.StatusConflict
	case errors.Is(err, model.ErrNoQuestions):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

type questionJSON struct {
	Category         string   `json:"category"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

func toQuestionJSON(questions []model.Question) []questionJSON {
	res := make([]questionJSON, 0, len(questions))
	for _, q := range questions {
		res = append(res, questionJSON{
			Category:         q.GetCategory(),
			Question:         q.GetQuestionText(),
			CorrectAnswer:    q.GetCorrectAnswer(),
			IncorrectAnswers: q.GetIncorrectAnswers(),
		})
	}
	return res
}

type fetchParams struct {
	Amount     int    `json:"amount"`
	Category   *int   `json:"category"`
	Difficulty string `json:"difficulty"`
}

func (fp fetchParams) toFetchRequest() (model.FetchRequest, error) {
	difficulty, err := model.ParseDifficulty(fp.Difficulty)
	if err != nil {
		return model.FetchRequest{}, err
	}
	return model.NewFetchRequest(fp.Amount, fp.Category, difficulty)
}

func fetchParamsFromQuery(r *http.Request) (fetchParams, error) {
	q := r.URL.Query()
	fp := fetchParams{Difficulty: q.Get("difficulty")}
	if v := q.Get("amount"); v != "" {
		amount, err := strconv.Atoi(v)
		if err != nil {
			return fetchParams{}, errors.New("amount must be an integer")
		}
		fp.Amount = amount
	}
	if v := q.Get("category"); v != "" {
		category, err := strconv.Atoi(v)
		if err != nil {
			return fetchParams{}, errors.New("category must be an integer")
		}
		fp.Category = &category
	}
	return fp, nil
}
