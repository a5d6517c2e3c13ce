package tokenstore

// Credentials is the access/refresh token pair issued by the platform API.
// Both tokens are opaque to the client; the access token happens to be a JWT
// but the client never validates it (that is the server's job).
type Credentials struct {
	// AccessToken is the short-lived credential carried on every
	// authenticated request as "Authorization: Bearer <token>".
	AccessToken string `json:"access_token"`

	// RefreshToken is the longer-lived credential used only against the
	// token refresh endpoint. Rotates when the server decides to rotate it.
	RefreshToken string `json:"refresh_token"`
}

// Present reports whether the pair can authenticate a request. The refresh
// token may legitimately be empty (a server that does not rotate may withhold
// it); the access token may not.
func (c Credentials) Present() bool {
	return c.AccessToken != ""
}

// Store is the single source of truth for "am I authenticated". Only the
// session controller and the 401 response path are allowed to write it;
// everything else reads.
//
// Implementations must treat an unavailable backing medium as "no
// credentials": Read returns false and the caller behaves as unauthenticated.
// Implementations must never log token contents.
type Store interface {
	// Read returns the stored pair and whether a usable pair is present.
	Read() (Credentials, bool)

	// Write replaces the stored pair.
	Write(Credentials) error

	// Clear removes the stored pair. Clearing an empty store is not an error.
	Clear() error
}
