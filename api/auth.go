package api

import (
	"context"

	"github.com/ashidadhich33-source/MY-erp-sub000/transport"
)

var (
	bindingAuthLogin       = Binding{Name: "auth.login", Method: "POST", Path: "/auth/login"}
	bindingAuthRegister    = Binding{Name: "auth.register", Method: "POST", Path: "/auth/register"}
	bindingAuthLogout      = Binding{Name: "auth.logout", Method: "POST", Path: "/auth/logout"}
	bindingAuthCurrentUser = Binding{Name: "auth.current_user", Method: "GET", Path: "/auth/me"}
	bindingAuthRefresh     = Binding{Name: "auth.refresh", Method: "POST", Path: "/auth/refresh"}
)

var authBindings = []Binding{
	bindingAuthLogin,
	bindingAuthRegister,
	bindingAuthLogout,
	bindingAuthCurrentUser,
	bindingAuthRefresh,
}

// AuthGroup covers the /auth endpoints.
type AuthGroup struct {
	t *transport.Client
}

// User is the platform's user profile.
type User struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role"` // One of "admin", "customer", "affiliate"
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at,omitempty"`
}

// TokenPair is the credential pair returned by login and refresh.
type TokenPair struct {
	// AccessToken is the short-lived bearer credential.
	AccessToken string `json:"access_token"`

	// RefreshToken is the long-lived credential for the refresh endpoint.
	// The server rotates it on refresh; a server that does not rotate may
	// omit it, in which case the previous one stays valid.
	RefreshToken string `json:"refresh_token,omitempty"`

	// TokenType is always "bearer".
	TokenType string `json:"token_type,omitempty"`
}

// LoginResponse is the login payload. User is optional on the wire; some
// deployments return it inline and others expect a follow-up /auth/me, so the
// session controller always confirms the profile with CurrentUser.
type LoginResponse struct {
	TokenPair
	User *User `json:"user,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest creates a new user account.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"` // Defaults to "customer" server-side
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Login exchanges credentials for a token pair.
func (g *AuthGroup) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	return call[LoginResponse](ctx, g.t, bindingAuthLogin, nil, nil, loginRequest{Email: email, Password: password})
}

// Register creates an account. It does not authenticate; callers log in
// afterwards.
func (g *AuthGroup) Register(ctx context.Context, req RegisterRequest) (User, error) {
	return call[User](ctx, g.t, bindingAuthRegister, nil, nil, req)
}

// Logout tells the server to invalidate the current tokens. Best-effort:
// the controller clears locally whatever this returns.
func (g *AuthGroup) Logout(ctx context.Context) error {
	_, err := call[struct{}](ctx, g.t, bindingAuthLogout, nil, nil, nil)
	return err
}

// CurrentUser fetches the profile for the bearer token on the wire.
func (g *AuthGroup) CurrentUser(ctx context.Context) (User, error) {
	return call[User](ctx, g.t, bindingAuthCurrentUser, nil, nil, nil)
}

// Refresh trades the refresh token for a new pair.
func (g *AuthGroup) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	return call[TokenPair](ctx, g.t, bindingAuthRefresh, nil, nil, refreshRequest{RefreshToken: refreshToken})
}
