// Package leaderboard 是远程排行榜服务的 JSON/HTTP 客户端。
package leaderboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gonewx/starfall/pkg/config"
)

// APIError 服务器返回的非 2xx 响应
type APIError struct {
	StatusCode int
	Message    string
}

// Error 实现 error 接口
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("leaderboard API error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("leaderboard API error (status %d): %s", e.StatusCode, e.Message)
}

// errorResponse 服务器错误响应体 {"error": "..."}
type errorResponse struct {
	Error string `json:"error"`
}

// Client 排行榜 HTTP 客户端
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient 创建排行榜客户端
//
// 参数:
//   - baseURL: 服务地址（如 "http://localhost:8080"），末尾的 "/" 会被去掉
//   - httpClient: 为 nil 时使用带超时的默认客户端
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.LeaderboardTimeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// BaseURL 返回服务地址
func (c *Client) BaseURL() string {
	return c.baseURL
}

// PostScore 提交一条分数
// 别名在发送请求前校验，不合法时直接返回 ErrAliasLength
func (c *Client) PostScore(ctx context.Context, body ScorePostBody) (ScoreCreated, error) {
	alias, err := ValidateAlias(body.Alias)
	if err != nil {
		return ScoreCreated{}, err
	}
	body.Alias = alias

	var created ScoreCreated
	if err := c.do(ctx, http.MethodPost, "/api/v1/scores", body, &created); err != nil {
		return ScoreCreated{}, err
	}
	return created, nil
}

// GetTop 获取前 limit 名（limit 限制在 1 到 100）
func (c *Client) GetTop(ctx context.Context, limit int) ([]ScoreTopItem, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(ClampLimit(limit)))

	var items []ScoreTopItem
	if err := c.do(ctx, http.MethodGet, "/api/v1/scores/top?"+q.Encode(), nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetByAlias 获取某个别名的历史分数
func (c *Client) GetByAlias(ctx context.Context, alias string) ([]ScoreByAliasItem, error) {
	a := NormalizeAlias(alias)
	if a == "" {
		return nil, fmt.Errorf("alias cannot be empty")
	}

	var items []ScoreByAliasItem
	if err := c.do(ctx, http.MethodGet, "/api/v1/scores/alias/"+url.PathEscape(a), nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// do 发送 JSON 请求并解码响应
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var reqBody io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var er errorResponse
		if json.Unmarshal(data, &er) == nil {
			apiErr.Message = er.Error
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// ErrorMessage 把错误转换成给玩家看的提示
// 服务器返回了错误信息时优先使用它
func ErrorMessage(err error, fallback string) string {
	if errors.Is(err, ErrAliasLength) {
		return "Alias must be 3-30 characters."
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
