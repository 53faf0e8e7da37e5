package controller

import (
	"net/http"

	"github.com/itsuabush1003/trivia/backend/golang/internal/usecase"
)

type QuestionHandler struct {
	fqu *usecase.FetchQuestionsUsecase
}

// パラメータが正しければ常に200。取得に失敗した場合は空のリストになる
func (qh *QuestionHandler) Handle(w http.ResponseWriter, r *http.Request) {
	params, err := fetchParamsFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	req, err := params.toFetchRequest()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	questions := qh.fqu.Execute(r.Context(), req)
	writeJSON(w, http.StatusOK, map[string]any{
		"questions": toQuestionJSON(questions),
	})
}

func NewQuestionHandler(fqu *usecase.FetchQuestionsUsecase) *QuestionHandler {
	return &QuestionHandler{
		fqu: fqu,
	}
}
