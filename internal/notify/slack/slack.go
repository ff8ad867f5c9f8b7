package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// Notifier delivers alerts as a Slack DM. The Web API has no "message a
// person by email" call, so delivery is three steps: resolve the user ID
// from the workspace email, open (or reuse) the DM conversation, then post.
type Notifier struct {
	client   *http.Client
	endpoint string // API root, e.g. https://slack.com/api
	token    string
	email    string
}

// Option configures a slack Notifier.
type Option func(*Notifier)

// WithTimeout sets the HTTP client timeout. Default: 10s.
func WithTimeout(d time.Duration) Option {
	return func(n *Notifier) { n.client.Timeout = d }
}

// New creates a Slack notifier posting to the DM of the user registered
// under the given workspace email.
func New(endpoint, token, email string, opts ...Option) *Notifier {
	n := &Notifier{
		client:   &http.Client{Timeout: defaultTimeout},
		endpoint: strings.TrimRight(endpoint, "/"),
		token:    token,
		email:    email,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// API response envelopes (unexported).

type userLookupResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
	User  struct {
		ID string `json:"id"`
	} `json:"user"`
}

type conversationResponse struct {
	OK      bool   `json:"ok"`
	Error   string `json:"error"`
	Channel struct {
		ID string `json:"id"`
	} `json:"channel"`
}

type postMessageResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

func (n *Notifier) Send(ctx context.Context, _ string, lines []string) error {
	var lookup userLookupResponse
	q := url.Values{"email": {n.email}}
	if err := n.get(ctx, "/users.lookupByEmail", q, &lookup); err != nil {
		return fmt.Errorf("slack notifier: lookup user: %w", err)
	}
	if !lookup.OK {
		return fmt.Errorf("slack notifier: lookup user: %s", lookup.Error)
	}

	var conv conversationResponse
	if err := n.post(ctx, "/conversations.open", map[string]string{"users": lookup.User.ID}, &conv); err != nil {
		return fmt.Errorf("slack notifier: open conversation: %w", err)
	}
	if !conv.OK {
		return fmt.Errorf("slack notifier: open conversation: %s", conv.Error)
	}

	var posted postMessageResponse
	payload := map[string]string{
		"channel": conv.Channel.ID,
		"text":    strings.Join(lines, "\n"),
	}
	if err := n.post(ctx, "/chat.postMessage", payload, &posted); err != nil {
		return fmt.Errorf("slack notifier: post message: %w", err)
	}
	if !posted.OK {
		return fmt.Errorf("slack notifier: post message: %s", posted.Error)
	}
	return nil
}

func (n *Notifier) Close() error {
	return nil
}

func (n *Notifier) get(ctx context.Context, path string, q url.Values, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.endpoint+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	return n.do(req, dest)
}

func (n *Notifier) post(ctx context.Context, path string, payload any, dest any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	return n.do(req, dest)
}

func (n *Notifier) do(req *http.Request, dest any) error {
	req.Header.Set("Authorization", "Bearer "+n.token)

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return json.Unmarshal(body, dest)
}
