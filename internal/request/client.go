package request

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

	"github.com/BerryBytes/consolectl/internal/tokenstore"
	"github.com/BerryBytes/consolectl/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

const requestIDHeader = "X-Request-Id"

type Request struct {
	Method string
	URL    string
	Params url.Values
	Data   any
	Header http.Header
	Extras RequestExtras
}

// Response is a received backend response together with the extras the
// call ran with.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Extras     RequestExtras
}

// Code is the envelope business code, string or number.
func (r *Response) Code() gjson.Result {
	return gjson.GetBytes(r.Body, "code")
}

func (r *Response) Msg() string {
	return gjson.GetBytes(r.Body, "msg").String()
}

type Options struct {
	BaseURL      string
	Timeout      time.Duration
	HTTPClient   *http.Client
	Tokens       tokenstore.TokenStore
	Users        tokenstore.UserInfoStore
	Notifier     Notifier
	Navigator    Navigator
	RedirectPath string
	// Extras override the process-wide defaults for every call of the client.
	Extras  RequestExtras
	Logger  logrus.FieldLogger
	Metrics *Metrics
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  tokenstore.TokenStore
	extras  RequestExtras
	logger  logrus.FieldLogger
	metrics *Metrics
}

func New(opts Options) (*Client, error) {
	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", opts.BaseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: scheme and host are required", opts.BaseURL)
	}

	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	// 3xx responses are rejected, never followed.
	noRedirect := *httpClient
	noRedirect.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	defaults := DefaultExtras.Merge(RequestExtras{
		HandleNoAuth:         NewHandleNoAuth(opts.Tokens, opts.Users, opts.Navigator, opts.RedirectPath, logger),
		HandleAPIError:       NewHandleAPIError(opts.Notifier),
		HandleTransportError: NewHandleTransportError(opts.Notifier),
	})

	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    &noRedirect,
		tokens:  opts.Tokens,
		extras:  defaults.Merge(opts.Extras),
		logger:  logger,
		metrics: opts.Metrics,
	}, nil
}

// Extras returns the effective extras of a call configured with over.
func (c *Client) Extras(over RequestExtras) RequestExtras {
	return c.extras.Merge(over)
}

// Do sends req through the pipeline. The returned error is ErrNoAuth
// (wrapped), *APIError or *TransportError when the call failed; the matching
// handler has already run by then.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	extras := c.Extras(req.Extras)
	start := time.Now()

	httpReq, err := c.newHTTPRequest(ctx, req, extras)
	if err != nil {
		return nil, err
	}

	log := c.logger.WithFields(logrus.Fields{
		"request_id": httpReq.Header.Get(requestIDHeader),
		"method":     httpReq.Method,
		"url":        httpReq.URL.Path,
	})

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, c.transportFailure(ctx, log, httpReq.Method, start, &TransportError{
			Message: err.Error(),
			Err:     err,
			Extras:  extras,
		})
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, c.transportFailure(ctx, log, httpReq.Method, start, &TransportError{
			StatusCode: httpResp.StatusCode,
			Message:    err.Error(),
			Err:        err,
			Extras:     extras,
		})
	}

	if httpResp.StatusCode >= 300 && httpResp.StatusCode < 400 {
		return nil, c.transportFailure(ctx, log, httpReq.Method, start, &TransportError{
			StatusCode: httpResp.StatusCode,
			Message:    fmt.Sprintf("Request failed with status code %d", httpResp.StatusCode),
			Extras:     extras,
		})
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       body,
		Extras:     extras,
	}
	log = log.WithField("status", resp.StatusCode)

	if extras.IsNoAuthFunction(resp) {
		log.WithField("outcome", OutcomeNoAuth).Warn("backend rejected credentials")
		c.metrics.observe(httpReq.Method, OutcomeNoAuth, time.Since(start).Seconds())
		if extras.HandleNoAuth != nil {
			extras.HandleNoAuth(ctx, resp)
		}
		return resp, fmt.Errorf("%w: HTTP %d", ErrNoAuth, resp.StatusCode)
	}

	if !extras.IsSuccessFunction(resp) {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Code:       resp.Code().String(),
			Message:    extras.GetAPIErrorMessage(resp),
		}
		log.WithFields(logrus.Fields{"outcome": OutcomeAPIError, "code": apiErr.Code}).Warn("backend call failed")
		c.metrics.observe(httpReq.Method, OutcomeAPIError, time.Since(start).Seconds())
		if extras.HandleAPIError != nil {
			extras.HandleAPIError(ctx, resp)
		}
		return resp, apiErr
	}

	log.WithField("outcome", OutcomeSuccess).Debug("backend call succeeded")
	c.metrics.observe(httpReq.Method, OutcomeSuccess, time.Since(start).Seconds())
	return resp, nil
}

func (c *Client) newHTTPRequest(ctx context.Context, req Request, extras RequestExtras) (*http.Request, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	target, err := c.resolve(req.URL, req.Params)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if req.Data != nil {
		payload, err := json.Marshal(req.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	for key, values := range req.Header {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}
	if req.Data != nil && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if httpReq.Header.Get(requestIDHeader) == "" {
		httpReq.Header.Set(requestIDHeader, uuid.NewString())
	}

	if extras.WithToken() && httpReq.Header.Get("Authorization") == "" {
		if authorization := c.authorization(ctx); authorization != "" {
			httpReq.Header.Set("Authorization", authorization)
		}
	}

	return httpReq, nil
}

func (c *Client) authorization(ctx context.Context) string {
	if c.tokens == nil {
		return ""
	}
	info, err := c.tokens.Get(ctx)
	if err != nil {
		c.logger.WithError(err).Warn("failed to read token info")
		return ""
	}
	if info == nil || strings.TrimSpace(info.AccessToken) == "" {
		return ""
	}
	return info.TokenType + " " + info.AccessToken
}

func (c *Client) resolve(path string, params url.Values) (string, error) {
	target := path
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		target = c.baseURL + "/" + strings.TrimLeft(path, "/")
	}
	u, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("invalid request URL %q: %w", target, err)
	}
	if len(params) > 0 {
		query := u.Query()
		for key, values := range params {
			for _, value := range values {
				query.Add(key, value)
			}
		}
		u.RawQuery = query.Encode()
	}
	return u.String(), nil
}

func (c *Client) transportFailure(ctx context.Context, log logrus.FieldLogger, method string, start time.Time, err *TransportError) error {
	log.WithFields(logrus.Fields{"outcome": OutcomeTransport, "status": err.StatusCode}).WithError(err.Err).Warn("backend call failed in transport")
	c.metrics.observe(method, OutcomeTransport, time.Since(start).Seconds())
	if err.Extras.HandleTransportError != nil {
		err.Extras.HandleTransportError(ctx, err)
	}
	return err
}

// Call runs req and decodes the envelope data into T.
func Call[T any](ctx context.Context, c *Client, req Request) (*models.Envelope[T], error) {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	var envelope models.Envelope[T]
	if len(bytes.TrimSpace(resp.Body)) == 0 {
		return &envelope, nil
	}
	if err := json.Unmarshal(resp.Body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode response envelope: %w", err)
	}
	return &envelope, nil
}
