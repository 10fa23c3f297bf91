package request_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/BerryBytes/consolectl/internal/request"
	"github.com/BerryBytes/consolectl/internal/tokenstore"
	"github.com/BerryBytes/consolectl/models"
	mock_consolectl "github.com/BerryBytes/consolectl/tests/mock"
	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	client    *request.Client
	tokens    *tokenstore.Record[models.TokenInfo]
	users     *tokenstore.Record[models.UserInfo]
	notifier  *mock_consolectl.MockNotifier
	navigator *mock_consolectl.MockNavigator
	metrics   *request.Metrics
}

func newFixture(t *testing.T, ctrl *gomock.Controller, baseURL string) *fixture {
	t.Helper()
	kv := tokenstore.NewMemoryKV()
	f := &fixture{
		tokens:    tokenstore.NewTokenStore(kv),
		users:     tokenstore.NewUserInfoStore(kv),
		notifier:  mock_consolectl.NewMockNotifier(ctrl),
		navigator: mock_consolectl.NewMockNavigator(ctrl),
		metrics:   request.NewMetrics(prometheus.NewRegistry()),
	}
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	client, err := request.New(request.Options{
		BaseURL:      baseURL,
		Tokens:       f.tokens,
		Users:        f.users,
		Notifier:     f.notifier,
		Navigator:    f.navigator,
		RedirectPath: "/",
		Logger:       logger,
		Metrics:      f.metrics,
	})
	require.NoError(t, err)
	f.client = client
	return f
}

func envelopeHandler(status int, body string, seen *http.Header) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			*seen = r.Header.Clone()
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

func TestNew_InvalidBaseURL(t *testing.T) {
	_, err := request.New(request.Options{BaseURL: "not a url"})
	assert.Error(t, err)

	_, err = request.New(request.Options{BaseURL: "/relative"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "scheme and host are required")
}

func TestDo_AuthorizationHeader(t *testing.T) {
	tests := []struct {
		name           string
		token          *models.TokenInfo
		extras         request.RequestExtras
		header         http.Header
		expectedHeader string
	}{
		{
			name:           "token attached by default",
			token:          &models.TokenInfo{AccessToken: "abc", TokenType: "Bearer"},
			expectedHeader: "Bearer abc",
		},
		{
			name:           "token type is used verbatim",
			token:          &models.TokenInfo{AccessToken: "abc", TokenType: "bearer"},
			expectedHeader: "bearer abc",
		},
		{
			name:   "isWithToken false never injects",
			token:  &models.TokenInfo{AccessToken: "abc", TokenType: "Bearer"},
			extras: request.WithoutToken(),
		},
		{
			name: "no stored token",
		},
		{
			name:  "blank access token",
			token: &models.TokenInfo{AccessToken: "   ", TokenType: "Bearer"},
		},
		{
			name:           "caller header wins",
			token:          &models.TokenInfo{AccessToken: "abc", TokenType: "Bearer"},
			header:         http.Header{"Authorization": []string{"Basic xyz"}},
			expectedHeader: "Basic xyz",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			var seen http.Header
			server := httptest.NewServer(envelopeHandler(http.StatusOK, `{"code":"io.tkeel.SUCCESS"}`, &seen))
			defer server.Close()

			f := newFixture(t, ctrl, server.URL)
			if tt.token != nil {
				require.NoError(t, f.tokens.Set(context.Background(), *tt.token))
			}

			_, err := f.client.Do(context.Background(), request.Request{URL: "/ping", Header: tt.header, Extras: tt.extras})
			require.NoError(t, err)
			assert.Equal(t, tt.expectedHeader, seen.Get("Authorization"))
			assert.NotEmpty(t, seen.Get("X-Request-Id"))
		})
	}
}

func TestDo_NoAuth(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			server := httptest.NewServer(envelopeHandler(status, `{"code":"io.tkeel.UNAUTHORIZED","msg":"expired"}`, nil))
			defer server.Close()

			f := newFixture(t, ctrl, server.URL)
			ctx := context.Background()
			require.NoError(t, f.tokens.Set(ctx, models.TokenInfo{AccessToken: "abc", TokenType: "Bearer"}))
			require.NoError(t, f.users.Set(ctx, models.UserInfo{TenantID: "t1", Username: "admin"}))

			f.navigator.EXPECT().Navigate(gomock.Any(), "/", true).Times(1)

			resp, err := f.client.Do(ctx, request.Request{URL: "/security/v1/oauth/my/tenant"})
			require.Error(t, err)
			assert.ErrorIs(t, err, request.ErrNoAuth)
			require.NotNil(t, resp)
			assert.Equal(t, status, resp.StatusCode)

			token, err := f.tokens.Get(ctx)
			require.NoError(t, err)
			assert.Nil(t, token)
			user, err := f.users.Get(ctx)
			require.NoError(t, err)
			assert.Nil(t, user)

			assert.Equal(t, 1.0, testutil.ToFloat64(metricCounter(t, f, http.MethodGet, request.OutcomeNoAuth)))
		})
	}
}

func TestDo_NoAuthCustomRedirect(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server := httptest.NewServer(envelopeHandler(http.StatusUnauthorized, `{}`, nil))
	defer server.Close()

	navigator := mock_consolectl.NewMockNavigator(ctrl)
	navigator.EXPECT().Navigate(gomock.Any(), "/auth/login", true).Times(1)

	client, err := request.New(request.Options{
		BaseURL:      server.URL,
		Tokens:       tokenstore.NewTokenStore(tokenstore.NewMemoryKV()),
		Navigator:    navigator,
		RedirectPath: "/auth/login",
	})
	require.NoError(t, err)

	_, err = client.Do(context.Background(), request.Request{URL: "/x"})
	assert.ErrorIs(t, err, request.ErrNoAuth)
}

func TestDo_NoAuthHandlerOverride(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server := httptest.NewServer(envelopeHandler(http.StatusForbidden, `{}`, nil))
	defer server.Close()

	f := newFixture(t, ctrl, server.URL)
	ctx := context.Background()
	require.NoError(t, f.tokens.Set(ctx, models.TokenInfo{AccessToken: "abc", TokenType: "Bearer"}))

	calls := 0
	_, err := f.client.Do(ctx, request.Request{
		URL: "/x",
		Extras: request.RequestExtras{
			HandleNoAuth: func(context.Context, *request.Response) { calls++ },
		},
	})
	assert.ErrorIs(t, err, request.ErrNoAuth)
	assert.Equal(t, 1, calls)

	token, err := f.tokens.Get(ctx)
	require.NoError(t, err)
	assert.NotNil(t, token, "overridden handler leaves the store alone")
}

func TestDo_APIError(t *testing.T) {
	tests := []struct {
		name            string
		status          int
		body            string
		customMessage   string
		expectedMessage string
	}{
		{
			name:            "server message",
			status:          http.StatusOK,
			body:            `{"code":"io.tkeel.INTERNAL","msg":"plugin not found"}`,
			expectedMessage: "plugin not found",
		},
		{
			name:            "custom message wins",
			status:          http.StatusOK,
			body:            `{"code":"io.tkeel.INTERNAL","msg":"plugin not found"}`,
			customMessage:   "failed to delete plugin",
			expectedMessage: "failed to delete plugin",
		},
		{
			name:            "no message at all",
			status:          http.StatusInternalServerError,
			body:            `{"code":500}`,
			expectedMessage: "",
		},
		{
			name:            "string 200 is not the numeric sentinel",
			status:          http.StatusOK,
			body:            `{"code":"200","msg":"odd"}`,
			expectedMessage: "odd",
		},
		{
			name:            "non json body",
			status:          http.StatusBadGateway,
			body:            `bad gateway`,
			expectedMessage: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			server := httptest.NewServer(envelopeHandler(tt.status, tt.body, nil))
			defer server.Close()

			f := newFixture(t, ctrl, server.URL)
			f.notifier.EXPECT().
				Notify(gomock.Any(), request.Notification{Title: tt.expectedMessage, Status: request.StatusError}).
				Times(1)

			_, err := f.client.Do(context.Background(), request.Request{
				URL:    "/rudder/v1/plugins/p1",
				Method: http.MethodDelete,
				Extras: request.RequestExtras{CustomAPIErrorMessage: tt.customMessage},
			})

			var apiErr *request.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.expectedMessage, apiErr.Message)
			assert.Equal(t, 1.0, testutil.ToFloat64(metricCounter(t, f, http.MethodDelete, request.OutcomeAPIError)))
		})
	}
}

func TestDo_SuccessCodes(t *testing.T) {
	for _, body := range []string{`{"code":"io.tkeel.SUCCESS"}`, `{"code":200}`} {
		t.Run(body, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			server := httptest.NewServer(envelopeHandler(http.StatusOK, body, nil))
			defer server.Close()

			f := newFixture(t, ctrl, server.URL)
			resp, err := f.client.Do(context.Background(), request.Request{URL: "/x"})
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
		})
	}
}

func TestDo_CustomSuccessFunction(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server := httptest.NewServer(envelopeHandler(http.StatusOK, `{"code":0}`, nil))
	defer server.Close()

	f := newFixture(t, ctrl, server.URL)
	_, err := f.client.Do(context.Background(), request.Request{
		URL:    "/x",
		Extras: request.RequestExtras{IsSuccessFunction: request.SuccessCodes(0)},
	})
	assert.NoError(t, err)
}

func TestDo_TransportError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server := httptest.NewServer(envelopeHandler(http.StatusOK, `{}`, nil))
	f := newFixture(t, ctrl, server.URL)
	server.Close()

	f.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Do(func(_ context.Context, n request.Notification) {
		assert.Equal(t, request.StatusError, n.Status)
		assert.NotEmpty(t, n.Title)
	}).Times(1)

	resp, err := f.client.Do(context.Background(), request.Request{URL: "/x"})
	assert.Nil(t, resp)

	var transportErr *request.TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, 0, transportErr.StatusCode)
	assert.Equal(t, 1.0, testutil.ToFloat64(metricCounter(t, f, http.MethodGet, request.OutcomeTransport)))
}

func TestDo_TransportErrorCustomMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server := httptest.NewServer(envelopeHandler(http.StatusOK, `{}`, nil))
	f := newFixture(t, ctrl, server.URL)
	server.Close()

	f.notifier.EXPECT().
		Notify(gomock.Any(), request.Notification{Title: "backend unreachable", Status: request.StatusError}).
		Times(1)

	_, err := f.client.Do(context.Background(), request.Request{
		URL:    "/x",
		Extras: request.RequestExtras{CustomTransportErrorMessage: "backend unreachable"},
	})
	assert.Error(t, err)
}

func TestDo_RedirectIsTransportError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/elsewhere", http.StatusFound)
	}))
	defer server.Close()

	f := newFixture(t, ctrl, server.URL)
	f.notifier.EXPECT().
		Notify(gomock.Any(), request.Notification{Title: "Request failed with status code 302", Status: request.StatusError}).
		Times(1)

	_, err := f.client.Do(context.Background(), request.Request{URL: "/x"})

	var transportErr *request.TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, http.StatusFound, transportErr.StatusCode)
}

func TestDo_RequestShape(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var (
		method string
		path   string
		query  string
		body   map[string]any
		ctype  string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path, query = r.Method, r.URL.Path, r.URL.RawQuery
		ctype = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&body)
		_, _ = io.WriteString(w, `{"code":"io.tkeel.SUCCESS"}`)
	}))
	defer server.Close()

	f := newFixture(t, ctrl, server.URL+"/apis/")
	_, err := f.client.Do(context.Background(), request.Request{
		Method: http.MethodPost,
		URL:    "tkeel-device/v1/devices/delete",
		Params: map[string][]string{"force": {"true"}},
		Data:   models.DeleteDevicesRequest{IDs: []string{"d1", "d2"}},
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "/apis/tkeel-device/v1/devices/delete", path)
	assert.Equal(t, "force=true", query)
	assert.Equal(t, "application/json", ctype)
	assert.Equal(t, []any{"d1", "d2"}, body["ids"])
}

func TestCall_DecodesEnvelope(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server := httptest.NewServer(envelopeHandler(http.StatusOK,
		`{"code":"io.tkeel.SUCCESS","msg":"ok","data":{"@type":"t","tenant_id":"t1","revoked":true}}`, nil))
	defer server.Close()

	f := newFixture(t, ctrl, server.URL)
	envelope, err := request.Call[models.RevokeTokenData](context.Background(), f.client, request.Request{URL: "/x"})
	require.NoError(t, err)
	assert.Equal(t, "io.tkeel.SUCCESS", envelope.Code)
	assert.Equal(t, "ok", envelope.Msg)
	assert.Equal(t, models.RevokeTokenData{Type: "t", TenantID: "t1", Revoked: true}, envelope.Data)
}

func TestCall_PropagatesFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server := httptest.NewServer(envelopeHandler(http.StatusOK, `{"code":"io.tkeel.FAIL","msg":"nope"}`, nil))
	defer server.Close()

	f := newFixture(t, ctrl, server.URL)
	f.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Times(1)

	envelope, err := request.Call[models.RevokeTokenData](context.Background(), f.client, request.Request{URL: "/x"})
	assert.Nil(t, envelope)
	var apiErr *request.APIError
	assert.True(t, errors.As(err, &apiErr))
}

func metricCounter(t *testing.T, f *fixture, method, outcome string) prometheus.Collector {
	t.Helper()
	return f.metrics.Requests(method, outcome)
}
