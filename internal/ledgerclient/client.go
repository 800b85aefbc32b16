// Package ledgerclient talks to the ledger service over HTTP.
package ledgerclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

const DefaultTimeout = 10 * time.Second

// ErrUnavailable wraps transport failures: timeouts, refused connections.
var ErrUnavailable = errors.New("ledger service unavailable")

// APIError is a non-2xx answer from the service. Message is the server's
// error text and is meant to be shown as is.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

type errorBody struct {
	Error string `json:"error"`
}

type Account struct {
	APIKey  string `json:"api_key"`
	Credits int    `json:"credits"`
	Message string `json:"message"`
}

type Transaction struct {
	ID        uint      `json:"id"`
	Amount    int       `json:"amount"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

type History struct {
	Transactions []Transaction `json:"transactions"`
	Page         int           `json:"page"`
	PageSize     int           `json:"page_size"`
	Total        int64         `json:"total"`
	TotalPages   int           `json:"total_pages"`
}

type Client struct {
	http *resty.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(timeout)
	client.SetHeader("accept", "application/json")
	return &Client{http: client}
}

func (c *Client) request(ctx context.Context, apiKey string) *resty.Request {
	req := c.http.R().SetContext(ctx)
	if apiKey != "" {
		req.SetHeader("X-API-Key", apiKey)
	}
	return req
}

func (c *Client) do(req *resty.Request, method, path string, out any) error {
	var body errorBody
	req.SetError(&body)
	if out != nil {
		req.SetResult(out)
	}
	res, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if res.IsError() {
		msg := body.Error
		if msg == "" {
			msg = http.StatusText(res.StatusCode())
		}
		return &APIError{Status: res.StatusCode(), Message: msg}
	}
	return nil
}

func (c *Client) Signup(ctx context.Context, email, password string) (Account, error) {
	var out Account
	req := c.request(ctx, "").SetBody(map[string]string{"email": email, "password": password})
	err := c.do(req, http.MethodPost, "/signup", &out)
	return out, err
}

func (c *Client) Login(ctx context.Context, email, password string) (Account, error) {
	var out Account
	req := c.request(ctx, "").SetBody(map[string]string{"email": email, "password": password})
	err := c.do(req, http.MethodPost, "/login", &out)
	return out, err
}

func (c *Client) Balance(ctx context.Context, apiKey string) (int, error) {
	var out struct {
		Credits int `json:"credits"`
	}
	err := c.do(c.request(ctx, apiKey), http.MethodGet, "/balance", &out)
	return out.Credits, err
}

func (c *Client) Deduct(ctx context.Context, apiKey string, amount int, action string) (int, error) {
	var out struct {
		Credits int `json:"credits"`
	}
	req := c.request(ctx, apiKey).SetBody(map[string]any{"amount": amount, "action": action})
	err := c.do(req, http.MethodPost, "/deduct", &out)
	return out.Credits, err
}

func (c *Client) History(ctx context.Context, apiKey string, page, pageSize int) (History, error) {
	var out History
	req := c.request(ctx, apiKey).SetQueryParams(map[string]string{
		"page":      strconv.Itoa(page),
		"page_size": strconv.Itoa(pageSize),
	})
	err := c.do(req, http.MethodGet, "/transactions", &out)
	return out, err
}

func (c *Client) Health(ctx context.Context) error {
	return c.do(c.request(ctx, ""), http.MethodGet, "/health", nil)
}
