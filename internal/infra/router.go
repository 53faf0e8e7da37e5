package infra

import (
	"net/http"

	"github.com/go-pkgz/routegroup"

	"github.com/itsuabush1003/trivia/backend/golang/internal/controller/middleware"
	restcontroller "github.com/itsuabush1003/trivia/backend/golang/internal/controller/rest"
)

const APIPath string = "/api"

type Router struct {
	router  *routegroup.Bundle
	APIPath string
}

func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rt.router.ServeHTTP(w, r)
}

func NewRouter(
	questionHandler *restcontroller.QuestionHandler,
	categoryHandler *restcontroller.CategoryHandler,
	quizHandler *restcontroller.QuizHandler,
	requestLogMiddleware *middleware.RequestLogMiddleware,
	rateLimitMiddleware *middleware.RateLimitMiddleware,
	corsMiddleware *middleware.CorsMiddleware,
) *Router {
	router := routegroup.New(http.NewServeMux())
	apiGroup := router.Mount(APIPath)
	// 429もブラウザから読めるようにCORSはレート制限より先に通す
	apiGroup.Use(requestLogMiddleware.Handle, corsMiddleware.Handle, rateLimitMiddleware.Handle)
	// "OPTIONS /"だと/api/{$}にしかマッチしないので全パスを受ける。204はCORSミドルウェア側で返す
	apiGroup.HandleFunc("OPTIONS /{path...}", func(w http.ResponseWriter, r *http.Request) {})

	apiGroup.HandleFunc("GET /questions", questionHandler.Handle)
	apiGroup.HandleFunc("GET /categories", categoryHandler.Handle)

	apiGroup.HandleFunc("POST /quizzes", quizHandler.Start)
	apiGroup.HandleFunc("GET /quizzes/{id}", quizHandler.Get)
	apiGroup.HandleFunc("POST /quizzes/{id}/answers", quizHandler.Answer)
	apiGroup.HandleFunc("POST /quizzes/{id}/restart", quizHandler.Restart)

	return &Router{
		router:  router,
		APIPath: APIPath,
	}
}
