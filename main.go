package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/itsuabush1003/trivia/backend/golang/internal/config"
	"github.com/itsuabush1003/trivia/backend/golang/internal/controller/middleware"
	restcontroller "github.com/itsuabush1003/trivia/backend/golang/internal/controller/rest"
	"github.com/itsuabush1003/trivia/backend/golang/internal/core"
	"github.com/itsuabush1003/trivia/backend/golang/internal/infra"
	"github.com/itsuabush1003/trivia/backend/golang/internal/repository"
	"github.com/itsuabush1003/trivia/backend/golang/internal/usecase"
)

const ShutdownTimeout time.Duration = 5 * time.Second
const TempDirName string = "trivia_db"

var envFile string
var addr string
var env string

func init() {
	flag.StringVar(&envFile, "envfile", ".env", "読み込む.envファイル")
	flag.StringVar(&addr, "addr", "", "待ち受けアドレス (TRIVIA_ADDRより優先)")
	flag.StringVar(&env, "env", "", "local, dev, prod のいずれか (TRIVIA_ENVより優先)")
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case config.EnvLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case config.EnvDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case config.EnvProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}

func main() {
	flag.Parse()

	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		panic(err)
	}
	if addr != "" {
		cfg.Addr = addr
	}
	if env != "" {
		cfg.Env = env
	}

	logger := setupLogger(cfg.Env)
	if logger == nil {
		panic("unknown env: " + cfg.Env)
	}
	slog.SetDefault(logger)

	openTDBClient, err := infra.NewOpenTDBClient(
		cfg.OpenTDB.BaseURL,
		&http.Client{Timeout: cfg.OpenTDB.HTTPTimeout},
		infra.NewRequestLimiter(cfg.OpenTDB.RequestInterval),
		logger,
	)
	if err != nil {
		panic(err)
	}
	questionService := core.NewTriviaQuestionService(openTDBClient, nil, logger)

	// セッションはプロセスが生きている間だけ使うので一時ディレクトリに置く
	dbDirname, err := os.MkdirTemp("", TempDirName)
	if err != nil {
		panic(err)
	}
	database, err := infra.NewSQLiteDB(dbDirname)
	if err != nil {
		panic(err)
	}
	defer database.Close()

	// 初期化
	categoryCache := cache.New(cfg.CategoryTTL, 2*cfg.CategoryTTL)
	quizSessionRepository := repository.NewQuizSessionRepository(database, cfg.QuizTTL)
	categoryRepository := repository.NewCategoryRepository(categoryCache, cfg.CategoryTTL)
	fetchQuestionsUsecase := usecase.NewFetchQuestionsUsecase(questionService)
	listCategoriesUsecase := usecase.NewListCategoriesUsecase(openTDBClient, categoryRepository)
	startQuizUsecase := usecase.NewStartQuizUsecase(questionService, quizSessionRepository)
	getQuizUsecase := usecase.NewGetQuizUsecase(quizSessionRepository)
	answerUsecase := usecase.NewAnswerUsecase(quizSessionRepository)
	restartQuizUsecase := usecase.NewRestartQuizUsecase(questionService, quizSessionRepository)
	questionHandler := restcontroller.NewQuestionHandler(fetchQuestionsUsecase)
	categoryHandler := restcontroller.NewCategoryHandler(listCategoriesUsecase)
	quizHandler := restcontroller.NewQuizHandler(startQuizUsecase, getQuizUsecase, answerUsecase, restartQuizUsecase)
	requestLogMiddleware := middleware.NewRequestLogMiddleware(logger)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.InboundRPS, cfg.InboundBurst)
	corsMiddleware := middleware.NewCorsMiddleware()
	router := infra.NewRouter(questionHandler, categoryHandler, quizHandler, requestLogMiddleware, rateLimitMiddleware, corsMiddleware)

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("HTTP server is starting", "addr", cfg.Addr, "api", router.APIPath, "env", cfg.Env, "db_dir", dbDirname)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("ListenAndServe error", "err", err)
			stop <- syscall.SIGTERM
		}
	}()

	<-stop
	logger.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("HTTP server Shutdown", "err", err)
		return
	}
	logger.Info("HTTP server exited properly")
}
