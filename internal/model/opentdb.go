package model

// OpenTDBのレスポンス形式。encode=base64で取得するとAPIQuestionの文字列はbase64のまま届く

type APITokenResponse struct {
	ResponseCode int    `json:"response_code"`
	Message      string `json:"response_message"`
	Token        string `json:"token"`
}

type APIQuestion struct {
	Category         string   `json:"category"`
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

type APIQuestionsResponse struct {
	ResponseCode int           `json:"response_code"`
	Results      []APIQuestion `json:"results"`
}

type APICategoriesResponse struct {
	TriviaCategories []Category `json:"trivia_categories"`
}

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
