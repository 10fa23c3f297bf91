package console

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/BerryBytes/consolectl/internal/menu"
	"github.com/BerryBytes/consolectl/internal/request"
	"github.com/BerryBytes/consolectl/internal/tokenstore"
	"github.com/BerryBytes/consolectl/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

const (
	TokenPath         = "/security/v1/oauth/token"
	RevokeTokenPath   = "/security/v1/oauth/token/revoke"
	PluginsPath       = "/rudder/v1/plugins"
	ReposPath         = "/rudder/v1/repos"
	DeleteDevicesPath = "/tkeel-device/v1/devices/delete"
)

var (
	ErrNotLoggedIn    = errors.New("not logged in")
	ErrMissingInput   = errors.New("missing required input")
	ErrNoRefreshToken = errors.New("stored token has no refresh token")
)

// Console is the set of backend operations the CLI and the shell run.
type Console interface {
	Login(ctx context.Context, input LoginInput) (*models.UserInfo, error)
	Logout(ctx context.Context) error
	RevokeToken(ctx context.Context, opts RevokeOptions) (*models.RevokeTokenData, error)
	DeletePlugin(ctx context.Context, id string) (*models.DeletePluginData, error)
	ListRepoInstallers(ctx context.Context, repos []string) []models.RepoInstallers
	DeleteDevices(ctx context.Context, ids []string) error
	Entries(ctx context.Context) ([]models.MenuEntry, error)
	Status(ctx context.Context) (*Session, error)
}

type LoginInput struct {
	Username string
	Password string
	Tenant   string
}

type RevokeOptions struct {
	// IsRemoveLocalTokenInfo defaults to true.
	IsRemoveLocalTokenInfo *bool
	OnSuccess              func(data models.RevokeTokenData)
}

// Session is the locally stored login state.
type Session struct {
	Token     *models.TokenInfo
	User      *models.UserInfo
	ExpiresAt *time.Time
	Subject   string
}

func (s *Session) LoggedIn() bool {
	return s != nil && s.Token != nil && strings.TrimSpace(s.Token.AccessToken) != ""
}

type Service struct {
	client   *request.Client
	tokens   tokenstore.TokenStore
	users    tokenstore.UserInfoStore
	menu     *menu.Query
	notifier request.Notifier
	logger   logrus.FieldLogger
}

func NewService(client *request.Client, tokens tokenstore.TokenStore, users tokenstore.UserInfoStore, query *menu.Query, notifier request.Notifier, logger logrus.FieldLogger) *Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if query == nil {
		query = menu.NewQuery(client, tokens, users, logger)
	}
	return &Service{
		client:   client,
		tokens:   tokens,
		users:    users,
		menu:     query,
		notifier: notifier,
		logger:   logger,
	}
}

// Login runs the password grant without a token. Rejected credentials are
// reported but do not trigger the session-expired redirect.
func (s *Service) Login(ctx context.Context, input LoginInput) (*models.UserInfo, error) {
	if input.Username == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: username and password", ErrMissingInput)
	}

	params := url.Values{}
	params.Set("grant_type", "password")
	params.Set("username", input.Username)
	params.Set("password", input.Password)
	if input.Tenant != "" {
		params.Set("tenant_id", input.Tenant)
	}

	extras := request.WithoutToken()
	extras.HandleNoAuth = func(ctx context.Context, resp *request.Response) {
		s.notify(ctx, request.Notification{Title: loginFailedMessage(resp), Status: request.StatusError})
	}

	envelope, err := request.Call[models.TokenInfo](ctx, s.client, request.Request{
		Method: http.MethodGet,
		URL:    TokenPath,
		Params: params,
		Extras: extras,
	})
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(envelope.Data.AccessToken) == "" {
		return nil, fmt.Errorf("login response carried no access token")
	}

	if err := s.tokens.Set(ctx, envelope.Data); err != nil {
		return nil, fmt.Errorf("failed to store token info: %w", err)
	}
	user := models.UserInfo{TenantID: input.Tenant, Username: input.Username}
	if err := s.users.Set(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to store user info: %w", err)
	}

	s.logger.WithFields(logrus.Fields{"username": input.Username, "tenant": input.Tenant}).Info("logged in")
	return &user, nil
}

func loginFailedMessage(resp *request.Response) string {
	if msg := resp.Msg(); msg != "" {
		return msg
	}
	return "invalid username or password"
}

// Logout revokes the token and clears the local session. The local session
// is cleared even when the revoke call fails.
func (s *Service) Logout(ctx context.Context) error {
	_, revokeErr := s.RevokeToken(ctx, RevokeOptions{})
	if errors.Is(revokeErr, ErrNotLoggedIn) || errors.Is(revokeErr, ErrNoRefreshToken) {
		revokeErr = nil
	}

	if err := s.tokens.Remove(ctx); err != nil {
		return fmt.Errorf("failed to remove token info: %w", err)
	}
	if err := s.users.Remove(ctx); err != nil {
		return fmt.Errorf("failed to remove user info: %w", err)
	}
	s.menu.Invalidate()

	if revokeErr != nil {
		return fmt.Errorf("failed to revoke token: %w", revokeErr)
	}
	return nil
}

func (s *Service) RevokeToken(ctx context.Context, opts RevokeOptions) (*models.RevokeTokenData, error) {
	info, err := s.tokens.Get(ctx)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, ErrNotLoggedIn
	}
	if info.RefreshToken == "" {
		return nil, ErrNoRefreshToken
	}

	envelope, err := request.Call[models.RevokeTokenData](ctx, s.client, request.Request{
		Method: http.MethodPost,
		URL:    RevokeTokenPath,
		Data:   models.RevokeTokenRequest{RefreshToken: info.RefreshToken},
	})
	if err != nil {
		return nil, err
	}

	if opts.IsRemoveLocalTokenInfo == nil || *opts.IsRemoveLocalTokenInfo {
		if err := s.tokens.Remove(ctx); err != nil {
			return nil, fmt.Errorf("failed to remove token info: %w", err)
		}
	}
	if opts.OnSuccess != nil {
		opts.OnSuccess(envelope.Data)
	}
	return &envelope.Data, nil
}

func (s *Service) DeletePlugin(ctx context.Context, id string) (*models.DeletePluginData, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: plugin id", ErrMissingInput)
	}
	envelope, err := request.Call[models.DeletePluginData](ctx, s.client, request.Request{
		Method: http.MethodDelete,
		URL:    PluginsPath + "/" + url.PathEscape(id),
	})
	if err != nil {
		return nil, err
	}
	s.notify(ctx, request.Notification{Title: fmt.Sprintf("plugin %s deleted", id), Status: request.StatusSuccess})
	return &envelope.Data, nil
}

// ListRepoInstallers queries every repo concurrently. The result keeps the
// order of repos; a failed repo has no installers and its error set.
func (s *Service) ListRepoInstallers(ctx context.Context, repos []string) []models.RepoInstallers {
	results := make([]models.RepoInstallers, len(repos))

	var wg sync.WaitGroup
	for i, repo := range repos {
		wg.Add(1)
		go func(i int, repo string) {
			defer wg.Done()
			result := models.RepoInstallers{Repo: repo, Installers: []models.BriefInstallerInfo{}}

			envelope, err := request.Call[models.RepoInstallersData](ctx, s.client, request.Request{
				URL: ReposPath + "/" + url.PathEscape(repo) + "/installers",
			})
			switch {
			case err != nil:
				result.Err = err
				s.logger.WithError(err).WithField("repo", repo).Warn("failed to list repo installers")
			case envelope.Data.BriefInstallers != nil:
				result.Installers = envelope.Data.BriefInstallers
			}
			results[i] = result
		}(i, repo)
	}
	wg.Wait()

	return results
}

func (s *Service) DeleteDevices(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: device ids", ErrMissingInput)
	}
	_, err := request.Call[models.DeleteDevicesData](ctx, s.client, request.Request{
		Method: http.MethodPost,
		URL:    DeleteDevicesPath,
		Data:   models.DeleteDevicesRequest{IDs: ids},
	})
	if err != nil {
		return err
	}
	s.notify(ctx, request.Notification{Title: fmt.Sprintf("%d device(s) deleted", len(ids)), Status: request.StatusSuccess})
	return nil
}

func (s *Service) Entries(ctx context.Context) ([]models.MenuEntry, error) {
	return s.menu.Entries(ctx)
}

func (s *Service) Status(ctx context.Context) (*Session, error) {
	token, err := s.tokens.Get(ctx)
	if err != nil {
		return nil, err
	}
	user, err := s.users.Get(ctx)
	if err != nil {
		return nil, err
	}

	session := &Session{Token: token, User: user}
	if token != nil {
		session.ExpiresAt, session.Subject = tokenClaims(token.AccessToken)
	}
	return session, nil
}

// tokenClaims reads exp and sub from a JWT access token without verifying
// it. Opaque tokens yield nothing.
func tokenClaims(accessToken string) (*time.Time, string) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, &claims); err != nil {
		return nil, ""
	}
	var expiresAt *time.Time
	if claims.ExpiresAt != nil {
		t := claims.ExpiresAt.Time
		expiresAt = &t
	}
	return expiresAt, claims.Subject
}

func (s *Service) notify(ctx context.Context, n request.Notification) {
	if s.notifier != nil {
		s.notifier.Notify(ctx, n)
	}
}
