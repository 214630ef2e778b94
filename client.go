package flashclass

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// Client is the single chokepoint for calls to the FlashClass backend. Every
// request flows through the Transport interceptor, carries the configured
// timeout, and resolves non-2xx responses to structured errors.
type Client struct {
	cfg       Config
	store     CredentialStore
	transport *Transport
	http      *http.Client
	logger    Logger
}

func NewClient(cfg Config, store CredentialStore) *Client {
	transport := NewTransport(store, cfg)
	return &Client{
		cfg:       cfg,
		store:     store,
		transport: transport,
		http: &http.Client{
			Timeout:   cfg.GetTimeout(),
			Transport: transport,
		},
		logger: defLogger{},
	}
}

func (c *Client) WithLogger(logger Logger) *Client {
	if logger != nil {
		c.logger = logger
		c.transport.WithLogger(logger)
	}
	return c
}

func (c *Client) WithNotifier(notifier Notifier) *Client {
	c.transport.WithNotifier(notifier)
	return c
}

// WithBaseTransport overrides the transport under the interceptor.
func (c *Client) WithBaseTransport(base http.RoundTripper) *Client {
	c.transport.WithBase(base)
	return c
}

// Store exposes the credential store shared with the session manager.
func (c *Client) Store() CredentialStore {
	return c.store
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out, msgGenericFailure)
}

func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPost, path, in, out, msgGenericFailure)
}

func (c *Client) Put(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPut, path, in, out, msgGenericFailure)
}

func (c *Client) Patch(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPatch, path, in, out, msgGenericFailure)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out, msgGenericFailure)
}

// do dispatches one JSON request. fallback is the user-facing message when
// the error body yields none.
func (c *Client) do(ctx context.Context, method, path string, in, out any, fallback string) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "unable to encode request payload")
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "unable to build request")
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("%s %s failed: %v", method, path, err)
		return goerrors.Wrap(err, goerrors.CategoryOperation, msgGenericFailure).
			WithTextCode(textCodeRequestFailed)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "unable to read response")
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return apiError(res.StatusCode, data, fallback)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "unable to decode response")
		}
	}
	return nil
}

func (c *Client) url(path string) string {
	base := strings.TrimRight(c.cfg.GetBaseURL(), "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}
