package todoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/kampus/tugasin/internal/domain"
)

// Envelope is the JSON body every endpoint answers with.
type Envelope struct {
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// AuthData is the payload of a successful register or login.
type AuthData struct {
	ID       string `json:"_id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Token    string `json:"token"`
}

// Client talks to the remote todo API. Every method issues exactly one
// request; there are no retries and no client-side timeout beyond ctx.
type Client interface {
	Register(ctx context.Context, email, fullName, password string) (*AuthData, error)
	Login(ctx context.Context, email, password string) (*AuthData, error)
	Logout(ctx context.Context, token, userID string) error
	GetTodos(ctx context.Context, token string) ([]domain.Todo, error)
	CreateTodo(ctx context.Context, token, text string) (*Envelope, error)
	UpdateTodo(ctx context.Context, token, id, text string, onCheckList bool) (*Envelope, error)
	DeleteTodo(ctx context.Context, token, id string) (*Envelope, error)
}

// Option customizes an httpClient.
type Option func(*httpClient)

// WithHTTPClient swaps the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// NewClient creates a Client for the API at cfg.BaseURL.
func NewClient(cfg Config, observer Observer, opts ...Option) Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	c := &httpClient{
		cfg:      cfg,
		http:     &http.Client{},
		observer: observer,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type registerRequest struct {
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type createTodoRequest struct {
	Text string `json:"text"`
}

type updateTodoRequest struct {
	Text        string `json:"text"`
	OnCheckList bool   `json:"onCheckList"`
}

func (c *httpClient) Register(ctx context.Context, email, fullName, password string) (*AuthData, error) {
	env, err := c.do(ctx, "register", http.MethodPost, "/auth/register", "",
		registerRequest{Email: email, FullName: fullName, Password: password})
	if err != nil {
		return nil, err
	}
	return decodeAuth(env)
}

func (c *httpClient) Login(ctx context.Context, email, password string) (*AuthData, error) {
	env, err := c.do(ctx, "login", http.MethodPost, "/auth/login", "",
		loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	return decodeAuth(env)
}

func (c *httpClient) Logout(ctx context.Context, token, userID string) error {
	_, err := c.do(ctx, "logout", http.MethodPost, "/auth/logout/"+url.PathEscape(userID), token, nil)
	return err
}

func (c *httpClient) GetTodos(ctx context.Context, token string) ([]domain.Todo, error) {
	env, err := c.do(ctx, "get_todos", http.MethodGet, "/todo/getAllTodos", token, nil)
	if err != nil {
		return nil, err
	}
	todos := []domain.Todo{}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return todos, nil
	}
	if err := json.Unmarshal(env.Data, &todos); err != nil {
		return nil, fmt.Errorf("%w: decoding todos: %v", ErrInvalidResponse, err)
	}
	return todos, nil
}

func (c *httpClient) CreateTodo(ctx context.Context, token, text string) (*Envelope, error) {
	return c.do(ctx, "create_todo", http.MethodPost, "/todo/createTodo", token, createTodoRequest{Text: text})
}

func (c *httpClient) UpdateTodo(ctx context.Context, token, id, text string, onCheckList bool) (*Envelope, error) {
	return c.do(ctx, "update_todo", http.MethodPut, "/todo/updateTodo/"+url.PathEscape(id), token,
		updateTodoRequest{Text: text, OnCheckList: onCheckList})
}

func (c *httpClient) DeleteTodo(ctx context.Context, token, id string) (*Envelope, error) {
	return c.do(ctx, "delete_todo", http.MethodDelete, "/todo/deleteTodo/"+url.PathEscape(id), token, nil)
}

func decodeAuth(env *Envelope) (*AuthData, error) {
	var data AuthData
	if len(env.Data) == 0 {
		return nil, fmt.Errorf("%w: missing auth data", ErrInvalidResponse)
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("%w: decoding auth data: %v", ErrInvalidResponse, err)
	}
	if data.Token == "" || data.ID == "" {
		return nil, fmt.Errorf("%w: auth data without token or id", ErrInvalidResponse)
	}
	return &data, nil
}

// do sends one request and decodes the envelope. A nil body sends no
// payload and no Content-Type; an empty token sends no Authorization.
func (c *httpClient) do(ctx context.Context, op, method, path, token string, body any) (*Envelope, error) {
	start := time.Now()
	status, env, err := c.roundTrip(ctx, method, path, token, body)

	event := CallEvent{
		Op:         op,
		Method:     method,
		Path:       path,
		StatusCode: status,
		LatencyMs:  time.Since(start).Milliseconds(),
		Success:    err == nil,
	}
	if err != nil {
		event.ErrorCode = errorCode(err)
	}
	c.observer.OnCallComplete(event)

	return env, err
}

func (c *httpClient) roundTrip(ctx context.Context, method, path, token string, body any) (int, *Envelope, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("reading response: %w", err)
	}

	var env Envelope
	decodeErr := decodeEnvelope(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: env.Message}
		if decodeErr != nil {
			apiErr.Message = string(bytes.TrimSpace(raw))
		}
		return resp.StatusCode, nil, apiErr
	}
	if decodeErr != nil {
		return resp.StatusCode, nil, decodeErr
	}
	return resp.StatusCode, &env, nil
}

// decodeEnvelope accepts an empty body as an empty envelope.
func decodeEnvelope(raw []byte, env *Envelope) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, env); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

func errorCode(err error) string {
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		return fmt.Sprintf("http_%d", apiErr.StatusCode)
	case errors.Is(err, ErrInvalidResponse):
		return "invalid_response"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "deadline"
	case IsConnectionError(err):
		return "unavailable"
	default:
		return "unknown"
	}
}

// IsConnectionError reports whether err comes from the network layer rather
// than from an answer of the API.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}
