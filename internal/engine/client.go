package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/trustcart/internal/models"
)

var (
	ErrConfigInvalid   = errors.New("engine config invalid")
	ErrRequestFailed   = errors.New("engine request failed")
	ErrResponseInvalid = errors.New("engine response invalid")
)

const defaultTimeout = 30 * time.Second

// Config 搜索引擎后端配置。
type Config struct {
	BaseURL   string
	TimeoutMS int
}

// Client 搜索引擎后端客户端。
// 自然语言解析、可信度评分与历史存储均由该后端承担，
// 本服务只通过请求/响应边界消费其结果。
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient 创建搜索引擎客户端
func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("%w: base_url is required", ErrConfigInvalid)
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("%w: base_url is invalid", ErrConfigInvalid)
	}
	timeout := defaultTimeout
	if cfg.TimeoutMS > 0 {
		timeout = time.Duration(cfg.TimeoutMS) * time.Millisecond
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// SearchInput 搜索输入
type SearchInput struct {
	Prompt    string   `json:"prompt"`
	Latitude  *float64 `json:"userLatitude,omitempty"`
	Longitude *float64 `json:"userLongitude,omitempty"`
}

type searchResponse struct {
	Success  bool             `json:"success"`
	Products []models.Product `json:"products"`
	Error    string           `json:"error"`
}

// Search 执行一次自然语言商品搜索
func (c *Client) Search(ctx context.Context, input SearchInput) ([]models.Product, error) {
	body, err := c.doJSON(ctx, http.MethodPost, "/search", input)
	if err != nil {
		return nil, err
	}
	var resp searchResponse
	if err := decode(body, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, responseError(resp.Error)
	}
	if resp.Products == nil {
		resp.Products = []models.Product{}
	}
	return resp.Products, nil
}

type historyResponse struct {
	Success bool                       `json:"success"`
	History []models.SearchHistoryItem `json:"history"`
	Error   string                     `json:"error"`
}

// FetchHistory 拉取搜索历史
func (c *Client) FetchHistory(ctx context.Context) ([]models.SearchHistoryItem, error) {
	body, err := c.doJSON(ctx, http.MethodGet, "/search-history", nil)
	if err != nil {
		return nil, err
	}
	var resp historyResponse
	if err := decode(body, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, responseError(resp.Error)
	}
	if resp.History == nil {
		resp.History = []models.SearchHistoryItem{}
	}
	return resp.History, nil
}

type saveSelectionRequest struct {
	SelectedIDs []int64 `json:"selectedIds"`
}

type saveSelectionResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// SaveSelection 持久化历史选中集合
func (c *Client) SaveSelection(ctx context.Context, selectedIDs []int64) error {
	if selectedIDs == nil {
		selectedIDs = []int64{}
	}
	body, err := c.doJSON(ctx, http.MethodPost, "/search-history", saveSelectionRequest{SelectedIDs: selectedIDs})
	if err != nil {
		return err
	}
	var resp saveSelectionResponse
	if err := decode(body, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return responseError(resp.Error)
	}
	return nil
}

type resolveProductsRequest struct {
	Prompts []string `json:"prompts"`
}

type resolveProductsResponse struct {
	Success  bool             `json:"success"`
	Products []models.Product `json:"products"`
	Error    string           `json:"error"`
}

// ResolveProducts 将选中历史提示词的并集解析为商品列表
func (c *Client) ResolveProducts(ctx context.Context, prompts []string) ([]models.Product, error) {
	body, err := c.doJSON(ctx, http.MethodPost, "/search-history/products", resolveProductsRequest{Prompts: prompts})
	if err != nil {
		return nil, err
	}
	var resp resolveProductsResponse
	if err := decode(body, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, responseError(resp.Error)
	}
	if resp.Products == nil {
		resp.Products = []models.Product{}
	}
	return resp.Products, nil
}

type checkoutSessionRequest struct {
	Items []models.CartEntry `json:"items"`
}

type checkoutSessionResponse struct {
	SessionID string `json:"sessionId"`
	Error     string `json:"error"`
}

// CreateCheckoutSession 以整车内容创建支付会话，返回会话标识
// 后端响应缺失 sessionId 时返回 ErrResponseInvalid（后端消息可用时随错误携带）。
func (c *Client) CreateCheckoutSession(ctx context.Context, items []models.CartEntry) (string, error) {
	body, err := c.doJSON(ctx, http.MethodPost, "/create-checkout-session", checkoutSessionRequest{Items: items})
	if err != nil {
		return "", err
	}
	var resp checkoutSessionResponse
	if err := decode(body, &resp); err != nil {
		return "", err
	}
	sessionID := strings.TrimSpace(resp.SessionID)
	if sessionID == "" {
		return "", responseError(resp.Error)
	}
	return sessionID, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: marshal request failed", ErrRequestFailed)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: build request failed", ErrRequestFailed)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response failed", ErrResponseInvalid)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// 错误状态下后端仍可能携带可展示的 error 消息
		if message := extractErrorMessage(body); message != "" {
			return nil, fmt.Errorf("%w: %s", ErrResponseInvalid, message)
		}
		return nil, fmt.Errorf("%w: status %d", ErrRequestFailed, resp.StatusCode)
	}
	return body, nil
}

func decode(body []byte, dest interface{}) error {
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("%w: decode response failed", ErrResponseInvalid)
	}
	return nil
}

func responseError(message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return ErrResponseInvalid
	}
	return fmt.Errorf("%w: %s", ErrResponseInvalid, message)
}

func extractErrorMessage(body []byte) string {
	var raw struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return ""
	}
	return strings.TrimSpace(raw.Error)
}
