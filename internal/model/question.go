package model

import "slices"

type Question struct {
	category         string
	questionText     string
	correctAnswer    string
	incorrectAnswers []string
}

func (q Question) GetCategory() string {
	return q.category
}

func (q Question) GetQuestionText() string {
	return q.questionText
}

func (q Question) GetCorrectAnswer() string {
	return q.correctAnswer
}

func (q Question) GetIncorrectAnswers() []string {
	return slices.Clone(q.incorrectAnswers)
}

// 正解、不正解の順に並べた選択肢。シャッフルはしない
func (q Question) Choices() []string {
	choices := make([]string, 0, len(q.incorrectAnswers)+1)
	choices = append(choices, q.correctAnswer)
	return append(choices, q.incorrectAnswers...)
}

func (q Question) IsCorrect(answer string) bool {
	return answer == q.correctAnswer
}

func NewQuestion(category string, questionText string, correctAnswer string, incorrectAnswers []string) Question {
	return Question{
		category:         category,
		questionText:     questionText,
		correctAnswer:    correctAnswer,
		incorrectAnswers: slices.Clone(incorrectAnswers),
	}
}
