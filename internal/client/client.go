package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/MrJinPro/SVOD/internal/auth"
)

const (
	// APIPort is the fixed port the API listens on next to the command center.
	APIPort = "8000"
	// APIRoot is the versioned namespace of every endpoint.
	APIRoot = "/api/v1"

	requestIDHeader = "X-Request-ID"
)

type SvodClient struct {
	HTTP    *resty.Client
	Config  ClientConfig
	BaseURL string

	tokens auth.TokenStore
	log    logrus.FieldLogger
}

type ClientConfig struct {
	BaseURL       string          // explicit override, wins over everything
	Origin        string          // address of the command center, used to derive the API host
	FallbackToken string          // sent when the token store is empty
	Timeout       time.Duration   // per ordinary call, 0 = none; sync and downloads are exempt
	Tokens        auth.TokenStore // read on every request
}

// ResolveBaseURL picks the API base address. An explicit override wins;
// otherwise the API is assumed on the same host as origin at APIPort. With no
// origin the machine's own hostname is used, so the client also works when
// the API runs elsewhere on the network.
func ResolveBaseURL(override, origin string) string {
	if o := strings.TrimRight(strings.TrimSpace(override), "/"); o != "" {
		return o
	}

	scheme, host := "http", ""
	if origin = strings.TrimSpace(origin); origin != "" {
		if !strings.Contains(origin, "://") {
			origin = "http://" + origin
		}
		if u, err := url.Parse(origin); err == nil && u.Hostname() != "" {
			host = u.Hostname()
			if u.Scheme == "https" {
				scheme = "https"
			}
		}
	}
	if host == "" {
		if h, err := os.Hostname(); err == nil && h != "" {
			host = h
		} else {
			host = "localhost"
		}
	}

	return fmt.Sprintf("%s://%s%s", scheme, net.JoinHostPort(host, APIPort), APIRoot)
}

func New(cfg ClientConfig) *SvodClient {
	base := ResolveBaseURL(cfg.BaseURL, cfg.Origin)
	log := logrus.WithField("component", "api-client")

	r := resty.New()
	r.SetBaseURL(base)
	r.SetLogger(log)
	r.SetHeader("Content-Type", "application/json")
	r.SetHeader("Accept", "application/json")

	c := &SvodClient{
		HTTP:    r,
		Config:  cfg,
		BaseURL: base,
		tokens:  cfg.Tokens,
		log:     log,
	}

	// The credential is read at send time so login/logout apply to the next request.
	r.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if tok, ok := c.token(); ok {
			req.SetHeader("Authorization", "Bearer "+tok)
		}
		req.SetHeader(requestIDHeader, uuid.NewString())
		return nil
	})

	r.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		c.log.WithFields(logrus.Fields{
			"method":     resp.Request.Method,
			"url":        resp.Request.URL,
			"status":     resp.StatusCode(),
			"request_id": resp.Request.Header.Get(requestIDHeader),
			"elapsed":    resp.Time(),
		}).Debug("api call")
		return nil
	})

	return c
}

func (c *SvodClient) token() (string, bool) {
	if c.tokens != nil {
		if tok, ok := c.tokens.Get(); ok {
			return tok, true
		}
	}
	if c.Config.FallbackToken != "" {
		return c.Config.FallbackToken, true
	}
	return "", false
}

// Get fetches path and decodes the JSON response into out.
func (c *SvodClient) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post sends body (nil = no body) and decodes the response into out.
func (c *SvodClient) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *SvodClient) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

// Delete tolerates an empty or non-JSON success body and leaves out as an empty object.
func (c *SvodClient) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

func (c *SvodClient) do(ctx context.Context, method, path string, body, out any) error {
	if c.Config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Config.Timeout)
		defer cancel()
	}
	return c.send(ctx, method, path, body, out)
}

// postLong is Post without the configured timeout, for calls that run an
// import inside the request.
func (c *SvodClient) postLong(ctx context.Context, path string, body, out any) error {
	return c.send(ctx, http.MethodPost, path, body, out)
}

func (c *SvodClient) send(ctx context.Context, method, path string, body, out any) error {
	req := c.HTTP.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	if !resp.IsSuccess() {
		return newAPIError(resp.StatusCode(), resp.Status(), resp.Body())
	}

	if out == nil {
		return nil
	}

	raw := bytes.TrimSpace(resp.Body())
	if method == http.MethodDelete {
		if len(raw) == 0 || json.Unmarshal(raw, out) != nil {
			_ = json.Unmarshal([]byte("{}"), out)
		}
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response of %s %s: %w", method, path, err)
	}
	return nil
}

// ExportURL is the absolute address of a download endpoint.
func (c *SvodClient) ExportURL(path string) string {
	return c.BaseURL + path
}

// Download streams a file endpoint (CSV exports) into w. The body is not JSON
// and the configured timeout does not apply.
func (c *SvodClient) Download(ctx context.Context, path string, w io.Writer) (int64, error) {
	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(path)
	if err != nil {
		return 0, fmt.Errorf("GET %s: %w", path, err)
	}

	body := resp.RawBody()
	defer func() { _ = body.Close() }()

	if !resp.IsSuccess() {
		b, _ := io.ReadAll(body)
		return 0, newAPIError(resp.StatusCode(), resp.Status(), b)
	}

	n, err := io.Copy(w, body)
	if err != nil {
		return n, fmt.Errorf("failed to write download: %w", err)
	}
	return n, nil
}
