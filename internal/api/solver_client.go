package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SolverClient talks to the mesh microservice: a form POST with a "name"
// field against the service root.
type SolverClient struct {
	BaseURL string
	HTTP    *http.Client
}

// NewSolverClient builds a client with a request timeout.
func NewSolverClient(baseURL string) *SolverClient {
	return &SolverClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

type numbersReply struct {
	Numbers []int  `json:"numbers"`
	Method  string `json:"method"`
}

// Numbers posts name=numbers to the solver and returns the number list.
// A JSON null reply (the solver's answer to unknown names) comes back as a
// nil slice with no error.
func (c *SolverClient) Numbers(ctx context.Context) ([]int, error) {
	form := url.Values{"name": {"numbers"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("solver request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("solver returned status %d", resp.StatusCode)
	}

	var reply *numbersReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return nil, fmt.Errorf("solver reply: %w", err)
	}
	if reply == nil {
		return nil, nil
	}
	return reply.Numbers, nil
}
