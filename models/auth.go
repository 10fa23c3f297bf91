package models

// TokenInfo is the token record persisted after a successful login.
type TokenInfo struct {
	AccessToken  string `json:"access_token" yaml:"access_token"`
	RefreshToken string `json:"refresh_token" yaml:"refresh_token"`
	TokenType    string `json:"token_type" yaml:"token_type"`
	ExpiresIn    int64  `json:"expires_in,omitempty" yaml:"expires_in,omitempty"`
}

// UserInfo is the user record persisted next to the token.
type UserInfo struct {
	TenantID string `json:"tenant_id" yaml:"tenant_id"`
	Username string `json:"username" yaml:"username"`
	UserID   string `json:"user_id,omitempty" yaml:"user_id,omitempty"`
}

type RevokeTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RevokeTokenData struct {
	Type     string `json:"@type"`
	TenantID string `json:"tenant_id"`
	Revoked  bool   `json:"revoked"`
}
