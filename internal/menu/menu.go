package menu

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"

	"github.com/BerryBytes/consolectl/internal/request"
	"github.com/BerryBytes/consolectl/internal/tokenstore"
	"github.com/BerryBytes/consolectl/models"
	"github.com/sirupsen/logrus"
)

const EntriesPath = "/rudder/v1/entries"

// Query fetches the authorized menu tree and keeps it for the lifetime of
// the current session.
type Query struct {
	client *request.Client
	tokens tokenstore.TokenStore
	users  tokenstore.UserInfoStore
	logger logrus.FieldLogger

	mu      sync.Mutex
	key     string
	cached  bool
	entries []models.MenuEntry
}

func NewQuery(client *request.Client, tokens tokenstore.TokenStore, users tokenstore.UserInfoStore, logger logrus.FieldLogger) *Query {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Query{client: client, tokens: tokens, users: users, logger: logger}
}

// Entries returns the menu tree of the current session. A session key that
// differs from the cached one triggers a fetch, made without holding the
// cache lock. Failed fetches are not cached.
func (q *Query) Entries(ctx context.Context) ([]models.MenuEntry, error) {
	key, err := SessionKey(ctx, q.tokens, q.users)
	if err != nil {
		return nil, err
	}

	q.mu.Lock()
	if q.cached && q.key == key {
		entries := q.entries
		q.mu.Unlock()
		return entries, nil
	}
	q.mu.Unlock()

	envelope, err := request.Call[models.EntriesData](ctx, q.client, request.Request{URL: EntriesPath})
	if err != nil {
		return nil, err
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	q.key = key
	q.cached = true
	q.entries = envelope.Data.Entries
	q.logger.WithField("entries", len(q.entries)).Debug("menu tree fetched")
	return q.entries, nil
}

// Invalidate drops the cached tree so the next Entries call fetches again.
func (q *Query) Invalidate() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.cached = false
	q.key = ""
	q.entries = nil
}

// SessionKey identifies the session by the stored access token and tenant.
// It is empty when no token is stored.
func SessionKey(ctx context.Context, tokens tokenstore.TokenStore, users tokenstore.UserInfoStore) (string, error) {
	if tokens == nil {
		return "", nil
	}
	info, err := tokens.Get(ctx)
	if err != nil {
		return "", err
	}
	if info == nil || strings.TrimSpace(info.AccessToken) == "" {
		return "", nil
	}

	tenant := ""
	if users != nil {
		user, err := users.Get(ctx)
		if err != nil {
			return "", err
		}
		if user != nil {
			tenant = user.TenantID
		}
	}

	sum := sha256.Sum256([]byte(info.AccessToken + "\x00" + tenant))
	return hex.EncodeToString(sum[:]), nil
}

// ToDescriptors maps the menu tree to sub-application descriptors. Every
// top-level entry with a bundle becomes a descriptor; a group without a
// bundle contributes its direct children instead.
func ToDescriptors(entries []models.MenuEntry) []models.SubApplicationDescriptor {
	var descriptors []models.SubApplicationDescriptor
	for _, entry := range entries {
		if entry.Entry != "" {
			descriptors = append(descriptors, descriptor(entry))
			continue
		}
		for _, child := range entry.Children {
			if child.Entry != "" {
				descriptors = append(descriptors, descriptor(child))
			}
		}
	}
	return descriptors
}

func descriptor(entry models.MenuEntry) models.SubApplicationDescriptor {
	name := entry.ID
	if name == "" {
		name = entry.Name
	}
	return models.SubApplicationDescriptor{
		Name:       name,
		Entry:      entry.Entry,
		Container:  "#" + name,
		ActiveRule: entry.Path,
	}
}
