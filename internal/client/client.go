package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/geocoder89/fintrack/internal/domain/transaction"
)

// Client talks to the fintrack API the same way the web dashboard does:
// JSON bodies, bearer token in the Authorization header, errors decoded
// from the {"message"} envelope.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// SetToken installs the bearer token for subsequent calls.
func (c *Client) SetToken(token string) {
	c.token = token
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (c *Client) Register(ctx context.Context, email, password string) (string, error) {
	var out tokenResponse

	err := c.do(ctx, http.MethodPost, "/api/auth/register", credentials{Email: email, Password: password}, &out)

	if err != nil {
		return "", err
	}

	c.token = out.Token

	return out.Token, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out tokenResponse

	err := c.do(ctx, http.MethodPost, "/api/auth/login", credentials{Email: email, Password: password}, &out)

	if err != nil {
		return "", err
	}

	c.token = out.Token

	return out.Token, nil
}

func (c *Client) Transactions(ctx context.Context) ([]transaction.Transaction, error) {
	var out []transaction.Transaction

	err := c.do(ctx, http.MethodGet, "/api/transactions", nil, &out)

	if err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Client) CreateTransaction(ctx context.Context, req transaction.CreateTransactionRequest) (transaction.Transaction, error) {
	var out transaction.Transaction

	err := c.do(ctx, http.MethodPost, "/api/transactions", req, &out)

	if err != nil {
		return transaction.Transaction{}, err
	}

	return out, nil
}

func (c *Client) UpdateTransaction(ctx context.Context, id string, req transaction.UpdateTransactionRequest) (transaction.Transaction, error) {
	var out transaction.Transaction

	err := c.do(ctx, http.MethodPut, "/api/transactions/"+id, req, &out)

	if err != nil {
		return transaction.Transaction{}, err
	}

	return out, nil
}

func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/transactions/"+id, nil, nil)
}

func (c *Client) Summary(ctx context.Context) (transaction.Summary, error) {
	var out transaction.Summary

	err := c.do(ctx, http.MethodGet, "/api/transactions/summary", nil, &out)

	if err != nil {
		return transaction.Summary{}, err
	}

	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader

	if body != nil {
		raw, err := json.Marshal(body)

		if err != nil {
			return err
		}

		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)

	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.http.Do(req)

	if err != nil {
		return err
	}

	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		var msg messageResponse

		if decodeErr := json.NewDecoder(res.Body).Decode(&msg); decodeErr == nil && msg.Message != "" {
			return errors.New(msg.Message)
		}

		return fmt.Errorf("request failed with status %d", res.StatusCode)
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(res.Body).Decode(out)
}
