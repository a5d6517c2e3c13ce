package session

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"

	"github.com/ashidadhich33-source/MY-erp-sub000/tokenstore"
)

// TokenSource adapts the live session to the standard oauth2.TokenSource
// contract, so libraries that draw bearer tokens that way share this
// session's store and single-flight refresh. The returned source reads the
// store at every Token call; it never caches a pair past an invalidation.
func (c *Controller) TokenSource(ctx context.Context) oauth2.TokenSource {
	return &tokenSource{ctx: ctx, c: c}
}

type tokenSource struct {
	ctx context.Context
	c   *Controller
}

func (ts *tokenSource) Token() (*oauth2.Token, error) {
	creds, ok := ts.c.store.Read()
	if !ok {
		return nil, ErrNoSession
	}

	tok := oauthToken(creds)
	if tok.Valid() {
		return tok, nil
	}

	if err := ts.c.Refresh(ts.ctx); err != nil {
		return nil, err
	}

	creds, ok = ts.c.store.Read()
	if !ok {
		return nil, ErrNoSession
	}
	return oauthToken(creds), nil
}

func oauthToken(creds tokenstore.Credentials) *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  creds.AccessToken,
		RefreshToken: creds.RefreshToken,
		TokenType:    "Bearer",
		Expiry:       accessTokenExpiry(creds.AccessToken),
	}
}

// accessTokenExpiry reads the exp claim without verifying the signature.
// Validation is the server's job; the client only wants a refresh hint.
// A token that is not JWT-shaped gets a zero expiry, which oauth2 treats
// as never expiring.
func accessTokenExpiry(raw string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
