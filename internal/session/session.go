// Package session manages authentication state: login, registration,
// logout, and the persisted credentials mirror.
package session

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/paulkamani9/overtune/internal/storage"
)

// Profile describes the authenticated user as reported by the backend.
type Profile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Credentials pair a backend token with the profile it belongs to. The two
// travel together: both present or both absent, never one without the
// other.
type Credentials struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}

// Valid reports whether the credentials carry both a token and a profile.
func (c Credentials) Valid() bool {
	return strings.TrimSpace(c.Token) != "" && strings.TrimSpace(c.User.Email) != ""
}

// RegisterInput is the profile data submitted on registration.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Gateway is the backend authentication surface.
type Gateway interface {
	Login(ctx context.Context, email, password string) (Credentials, error)
	Register(ctx context.Context, input RegisterInput) (Credentials, error)
}

// Store persists credentials between visits. Save and Delete cover the
// token and user slots as a unit.
type Store interface {
	SaveCredentials(ctx context.Context, creds Credentials) error
	LoadCredentials(ctx context.Context) (Credentials, error)
	DeleteCredentials(ctx context.Context) error
}

// Controller owns the session state machine: anonymous or authenticated.
// Not safe for concurrent use; callers serialize access.
type Controller struct {
	gateway Gateway
	store   Store
	creds   Credentials
	authErr string
	clock   func() time.Time
}

// NewController creates a session controller in the anonymous state.
func NewController(gateway Gateway, store Store) *Controller {
	return &Controller{gateway: gateway, store: store, clock: time.Now}
}

// Authenticated reports whether a session is active.
func (c *Controller) Authenticated() bool {
	return c.creds.Valid()
}

// Token returns the active session token, empty when anonymous.
func (c *Controller) Token() string {
	return c.creds.Token
}

// User returns the active profile, zero when anonymous.
func (c *Controller) User() Profile {
	return c.creds.User
}

// Error returns the current human-readable auth error, empty when the last
// attempt succeeded or none was made.
func (c *Controller) Error() string {
	return c.authErr
}

// Login attempts to authenticate. Success stores the credentials in memory
// and durable storage and clears any prior auth error; failure leaves the
// controller anonymous with the failure message recorded.
func (c *Controller) Login(ctx context.Context, email, password string) error {
	c.authErr = ""
	creds, err := c.gateway.Login(ctx, email, password)
	if err != nil {
		c.authErr = err.Error()
		return err
	}
	c.adopt(ctx, creds)
	return nil
}

// Register attempts to create an account. Semantics mirror Login.
func (c *Controller) Register(ctx context.Context, input RegisterInput) error {
	c.authErr = ""
	creds, err := c.gateway.Register(ctx, input)
	if err != nil {
		c.authErr = err.Error()
		return err
	}
	c.adopt(ctx, creds)
	return nil
}

// Logout unconditionally returns to the anonymous state and deletes the
// persisted credential slots.
func (c *Controller) Logout(ctx context.Context) {
	c.creds = Credentials{}
	c.authErr = ""
	if c.store == nil {
		return
	}
	if err := c.store.DeleteCredentials(ctx); err != nil {
		log.Printf("delete credentials: %v", err)
	}
}

// Restore loads persisted credentials. Absent, unreadable, or unpaired
// records restore the anonymous state. A token that parses as a JWT with an
// elapsed expiry is discarded, slots included, so the engine never starts
// with a dead session; tokens that are not JWTs are trusted as-is.
func (c *Controller) Restore(ctx context.Context) {
	c.creds = Credentials{}
	if c.store == nil {
		return
	}
	loaded, err := c.store.LoadCredentials(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("restore credentials: %v", err)
		}
		return
	}
	if !loaded.Valid() {
		return
	}
	if c.tokenExpired(loaded.Token) {
		if err := c.store.DeleteCredentials(ctx); err != nil {
			log.Printf("delete expired credentials: %v", err)
		}
		return
	}
	c.creds = loaded
}

func (c *Controller) tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	expiry, err := claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return false
	}
	return expiry.Before(c.clock())
}

func (c *Controller) adopt(ctx context.Context, creds Credentials) {
	c.creds = creds
	if c.store == nil {
		return
	}
	if err := c.store.SaveCredentials(ctx, creds); err != nil {
		log.Printf("save credentials: %v", err)
	}
}
