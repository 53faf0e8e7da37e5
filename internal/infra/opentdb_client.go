package infra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/itsuabush1003/trivia/backend/golang/internal/model"
)

const (
	DefaultOpenTDBBaseURL string = "https://opentdb.com"

	// OpenTDBは同一IPから5秒に1回まで
	DefaultRequestInterval time.Duration = 5 * time.Second
)

const (
	tokenPath    string = "api_token.php"
	questionPath string = "api.php"
	categoryPath string = "api_category.php"
)

var (
	ErrTransport  = errors.New("OpenTDB request failed")
	ErrHTTPStatus = errors.New("OpenTDB returned unexpected status")
	ErrDecode     = errors.New("OpenTDB response could not be decoded")
)

type OpenTDBClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// interval毎に1回までに制限する。0以下なら制限しない
func NewRequestLimiter(interval time.Duration) *rate.Limiter {
	if interval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}

func (c *OpenTDBClient) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + path
	u.RawQuery = query.Encode()
	return u.String()
}

// outがnilならレスポンスボディは読み捨てる
func (c *OpenTDBClient) get(ctx context.Context, path string, query url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}

	endpoint := c.endpoint(path, query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}

	c.logger.Debug("opentdb request", "path", path, "command", query.Get("command"))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: HTTP %d", ErrHTTPStatus, resp.StatusCode)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return nil
}

func (c *OpenTDBClient) RequestToken(ctx context.Context) (model.APITokenResponse, error) {
	var res model.APITokenResponse
	if err := c.get(ctx, tokenPath, url.Values{"command": {"request"}}, &res); err != nil {
		return model.APITokenResponse{}, err
	}
	return res, nil
}

// トークンの出題履歴をリセットする。レスポンスの中身は見ない
func (c *OpenTDBClient) ResetToken(ctx context.Context, token string) error {
	return c.get(ctx, tokenPath, url.Values{
		"command": {"reset"},
		"token":   {token},
	}, nil)
}

func (c *OpenTDBClient) FetchQuestions(ctx context.Context, fr model.FetchRequest, token string) (model.APIQuestionsResponse, error) {
	query := url.Values{
		"amount": {strconv.Itoa(fr.Amount)},
		"type":   {"multiple"},
		"encode": {"base64"},
	}
	if fr.HasCategory() {
		query.Set("category", strconv.Itoa(*fr.Category))
	}
	if !fr.Difficulty.IsAny() {
		query.Set("difficulty", fr.Difficulty.String())
	}
	if token != "" {
		query.Set("token", token)
	}

	// どちらかのキーが欠けていたら壊れたレスポンスとして扱う
	var raw struct {
		ResponseCode *int                `json:"response_code"`
		Results      *[]model.APIQuestion `json:"results"`
	}
	if err := c.get(ctx, questionPath, query, &raw); err != nil {
		return model.APIQuestionsResponse{}, err
	}
	if raw.ResponseCode == nil {
		return model.APIQuestionsResponse{}, fmt.Errorf("%w: missing response_code", ErrDecode)
	}
	if raw.Results == nil {
		return model.APIQuestionsResponse{}, fmt.Errorf("%w: missing results", ErrDecode)
	}
	return model.APIQuestionsResponse{
		ResponseCode: *raw.ResponseCode,
		Results:      *raw.Results,
	}, nil
}

func (c *OpenTDBClient) FetchCategories(ctx context.Context) ([]model.Category, error) {
	var res model.APICategoriesResponse
	if err := c.get(ctx, categoryPath, url.Values{}, &res); err != nil {
		return nil, err
	}
	return res.TriviaCategories, nil
}

func NewOpenTDBClient(baseURL string, httpClient *http.Client, limiter *rate.Limiter, logger *slog.Logger) (*OpenTDBClient, error) {
	if baseURL == "" {
		baseURL = DefaultOpenTDBBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("Invalid OpenTDB base URL %q", baseURL)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if limiter == nil {
		limiter = NewRequestLimiter(DefaultRequestInterval)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &OpenTDBClient{
		baseURL:    u,
		httpClient: httpClient,
		limiter:    limiter,
		logger:     logger,
	}, nil
}
