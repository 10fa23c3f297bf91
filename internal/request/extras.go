package request

import (
	"context"
	"net/http"

	"github.com/BerryBytes/consolectl/internal/tokenstore"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// RequestExtras is the per-call configuration of the pipeline. Every field
// is optional; unset fields fall back to the client defaults, which fall
// back to DefaultExtras.
type RequestExtras struct {
	IsWithToken *bool

	IsSuccessFunction  func(resp *Response) bool
	IsNoAuthFunction   func(resp *Response) bool
	HandleNoAuth       func(ctx context.Context, resp *Response)
	HandleAPIError     func(ctx context.Context, resp *Response)
	GetAPIErrorMessage func(resp *Response) string

	HandleTransportError func(ctx context.Context, err *TransportError)

	CustomAPIErrorMessage       string
	CustomTransportErrorMessage string
}

// WithToken reports whether the Authorization header should be attached.
func (e RequestExtras) WithToken() bool {
	return e.IsWithToken == nil || *e.IsWithToken
}

// Merge returns e with every field set in over replacing its counterpart.
func (e RequestExtras) Merge(over RequestExtras) RequestExtras {
	merged := e
	if over.IsWithToken != nil {
		merged.IsWithToken = over.IsWithToken
	}
	if over.IsSuccessFunction != nil {
		merged.IsSuccessFunction = over.IsSuccessFunction
	}
	if over.IsNoAuthFunction != nil {
		merged.IsNoAuthFunction = over.IsNoAuthFunction
	}
	if over.HandleNoAuth != nil {
		merged.HandleNoAuth = over.HandleNoAuth
	}
	if over.HandleAPIError != nil {
		merged.HandleAPIError = over.HandleAPIError
	}
	if over.GetAPIErrorMessage != nil {
		merged.GetAPIErrorMessage = over.GetAPIErrorMessage
	}
	if over.HandleTransportError != nil {
		merged.HandleTransportError = over.HandleTransportError
	}
	if over.CustomAPIErrorMessage != "" {
		merged.CustomAPIErrorMessage = over.CustomAPIErrorMessage
	}
	if over.CustomTransportErrorMessage != "" {
		merged.CustomTransportErrorMessage = over.CustomTransportErrorMessage
	}
	return merged
}

func Bool(v bool) *bool { return &v }

// WithoutToken is shorthand for extras that skip the Authorization header.
func WithoutToken() RequestExtras {
	return RequestExtras{IsWithToken: Bool(false)}
}

// DefaultSuccessCodes mirror the backend success sentinels.
var DefaultSuccessCodes = []any{"io.tkeel.SUCCESS", 200}

// DefaultExtras holds the side-effect free defaults. The handlers that need
// a notifier, navigator or store are installed by New.
var DefaultExtras = RequestExtras{
	IsWithToken:        Bool(true),
	IsSuccessFunction:  SuccessCodes(DefaultSuccessCodes...),
	IsNoAuthFunction:   IsNoAuthStatus,
	GetAPIErrorMessage: APIErrorMessage,
}

// SuccessCodes accepts responses whose envelope code equals one of codes.
// String codes only match string envelope codes and numeric codes only
// match numeric ones.
func SuccessCodes(codes ...any) func(resp *Response) bool {
	return func(resp *Response) bool {
		if resp == nil {
			return false
		}
		code := resp.Code()
		for _, accepted := range codes {
			if codeMatches(code, accepted) {
				return true
			}
		}
		return false
	}
}

func codeMatches(code gjson.Result, accepted any) bool {
	switch v := accepted.(type) {
	case string:
		return code.Type == gjson.String && code.Str == v
	case int:
		return code.Type == gjson.Number && code.Num == float64(v)
	case int64:
		return code.Type == gjson.Number && code.Num == float64(v)
	case float64:
		return code.Type == gjson.Number && code.Num == v
	default:
		return false
	}
}

func IsNoAuthStatus(resp *Response) bool {
	return resp != nil && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden)
}

// APIErrorMessage picks the custom message of the call, else the envelope
// msg, else "".
func APIErrorMessage(resp *Response) string {
	if resp == nil {
		return ""
	}
	if resp.Extras.CustomAPIErrorMessage != "" {
		return resp.Extras.CustomAPIErrorMessage
	}
	return resp.Msg()
}

func TransportErrorMessage(err *TransportError) string {
	if err.Extras.CustomTransportErrorMessage != "" {
		return err.Extras.CustomTransportErrorMessage
	}
	return err.Message
}

// NewHandleNoAuth clears the stored credentials and navigates to
// redirectPath, replacing the current location.
func NewHandleNoAuth(tokens tokenstore.TokenStore, users tokenstore.UserInfoStore, navigator Navigator, redirectPath string, logger logrus.FieldLogger) func(ctx context.Context, resp *Response) {
	if redirectPath == "" {
		redirectPath = "/"
	}
	return func(ctx context.Context, resp *Response) {
		if tokens != nil {
			if err := tokens.Remove(ctx); err != nil {
				logger.WithError(err).Warn("failed to remove token info")
			}
		}
		if users != nil {
			if err := users.Remove(ctx); err != nil {
				logger.WithError(err).Warn("failed to remove user info")
			}
		}
		if navigator != nil {
			navigator.Navigate(ctx, redirectPath, true)
		}
	}
}

func NewHandleAPIError(notifier Notifier) func(ctx context.Context, resp *Response) {
	return func(ctx context.Context, resp *Response) {
		if notifier == nil {
			return
		}
		message := resp.Extras.GetAPIErrorMessage
		if message == nil {
			message = APIErrorMessage
		}
		notifier.Notify(ctx, Notification{Title: message(resp), Status: StatusError})
	}
}

func NewHandleTransportError(notifier Notifier) func(ctx context.Context, err *TransportError) {
	return func(ctx context.Context, err *TransportError) {
		if notifier == nil {
			return
		}
		notifier.Notify(ctx, Notification{Title: TransportErrorMessage(err), Status: StatusError})
	}
}
