// Package restclient is a small JSON client for the remote resource API.
// Each Client is bound to one resource path and fires every request once:
// there is no retry and no backoff.
package restclient

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

	"github.com/rs/zerolog"

	"github.com/schoolhub/admin-dashboard/internal/core/domain"
)

// HTTPDoer is satisfied by *http.Client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Observer is told about every finished request. status is 0 when no
// response arrived.
type Observer func(resource, method string, status int, elapsed time.Duration, err error)

type options struct {
	doer    HTTPDoer
	timeout time.Duration
	observe Observer
	log     zerolog.Logger
}

// Option configures a Client.
type Option func(*options)

// WithHTTPClient replaces http.DefaultClient as the transport.
func WithHTTPClient(d HTTPDoer) Option { return func(o *options) { o.doer = d } }

// WithTimeout bounds each request. Zero leaves only the caller's context.
func WithTimeout(d time.Duration) Option { return func(o *options) { o.timeout = d } }

// WithObserver reports every completed request to fn.
func WithObserver(fn Observer) Option { return func(o *options) { o.observe = fn } }

// WithLogger logs every request at debug level. The default discards.
func WithLogger(log zerolog.Logger) Option { return func(o *options) { o.log = log } }

// Client performs CRUD calls against {base}/{endpoint}.
type Client[T any] struct {
	base     string
	endpoint string
	opts     options
}

// New returns a client for the resource at endpoint ("ads", "Teacher", ...).
func New[T any](baseURL, endpoint string, opts ...Option) *Client[T] {
	o := options{doer: http.DefaultClient, log: zerolog.Nop()}
	for _, fn := range opts {
		fn(&o)
	}
	return &Client[T]{
		base:     strings.TrimRight(baseURL, "/"),
		endpoint: strings.Trim(endpoint, "/"),
		opts:     o,
	}
}

// Endpoint returns the resource path the client is bound to.
func (c *Client[T]) Endpoint() string { return c.endpoint }

func (c *Client[T]) resourceURL(id string) string {
	u := c.base + "/" + c.endpoint
	if id != "" {
		u += "/" + url.PathEscape(id)
	}
	return u
}

// Get lists the resource. query is appended as-is, e.g. "?search=abc".
func (c *Client[T]) Get(ctx context.Context, query string) ([]T, error) {
	var out []T
	if err := c.sendRequest(ctx, c.resourceURL("")+query, http.MethodGet, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client[T]) GetDetail(ctx context.Context, id string) (T, error) {
	var out T
	err := c.sendRequest(ctx, c.resourceURL(id), http.MethodGet, nil, &out)
	return out, err
}

func (c *Client[T]) Post(ctx context.Context, data T) (T, error) {
	var out T
	err := c.sendRequest(ctx, c.resourceURL(""), http.MethodPost, data, &out)
	return out, err
}

func (c *Client[T]) Put(ctx context.Context, id string, data T) (T, error) {
	var out T
	err := c.sendRequest(ctx, c.resourceURL(id), http.MethodPut, data, &out)
	return out, err
}

func (c *Client[T]) Delete(ctx context.Context, id string) error {
	return c.sendRequest(ctx, c.resourceURL(id), http.MethodDelete, nil, nil)
}

// sendRequest issues one JSON request. Any non-2xx status becomes
// domain.ErrRequestFailed; the error body is never read. A 2xx body is
// decoded into out when out is non-nil and the body is not empty.
func (c *Client[T]) sendRequest(ctx context.Context, rawURL, method string, body any, out any) (err error) {
	if c.opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		buf, mErr := json.Marshal(body)
		if mErr != nil {
			return fmt.Errorf("encode %s body: %w", c.endpoint, mErr)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, rawURL, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	status := 0
	defer func() {
		elapsed := time.Since(start)
		if c.opts.observe != nil {
			c.opts.observe(c.endpoint, method, status, elapsed, err)
		}
		c.opts.log.Debug().
			Str("method", method).
			Str("url", rawURL).
			Int("status", status).
			Dur("elapsed", elapsed).
			Err(err).
			Msg("upstream request")
	}()

	resp, err := c.opts.doer.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", domain.ErrRequestFailed, method, rawURL, err)
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %s %s: status %d: %w", domain.ErrRequestFailed, method, rawURL, resp.StatusCode, domain.ErrNotFound)
		}
		return fmt.Errorf("%w: %s %s: status %d", domain.ErrRequestFailed, method, rawURL, resp.StatusCode)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode %s %s: %w", method, rawURL, err)
	}
	return nil
}
