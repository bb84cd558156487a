package client

import (
	"context"
	"errors"

	"netflix-clone-backend/localstore"
)

// Auth holds the client's view of who is logged in. Successful logins
// persist the session to the local store; Load restores it at startup.
type Auth struct {
	api     *AuthAPI
	session *localstore.Session

	token string
	user  *localstore.StoredUser
}

func NewAuth(api *AuthAPI, session *localstore.Session) *Auth {
	return &Auth{api: api, session: session}
}

// Load restores a previously persisted session, if any.
func (a *Auth) Load() {
	a.token, a.user = a.session.Load()
}

// Login authenticates with email/password and persists the session.
func (a *Auth) Login(ctx context.Context, email, password string) error {
	resp, err := a.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if !resp.Success {
		return errors.New(resp.Message)
	}

	a.token = resp.Token
	a.user = resp.User
	return a.session.Persist(resp.Token, resp.User)
}

// Signup registers a new account. The signup response carries no
// token, so the caller still has to log in afterwards.
func (a *Auth) Signup(ctx context.Context, name, email, password string) (*localstore.StoredUser, error) {
	resp, err := a.api.Signup(ctx, name, email, password, "Visitor")
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, errors.New(resp.Message)
	}
	return resp.Data, nil
}

// GoogleLogin bridges a federated identity and persists the session,
// picture included.
func (a *Auth) GoogleLogin(ctx context.Context, email, name, picture, googleID string) error {
	resp, err := a.api.GoogleLogin(ctx, email, name, picture, googleID)
	if err != nil {
		return err
	}
	if !resp.Success {
		return errors.New(resp.Message)
	}

	user := resp.User
	if user != nil && user.Picture == "" {
		user.Picture = picture
	}

	a.token = resp.Token
	a.user = user
	return a.session.Persist(resp.Token, user)
}

// Logout forgets the session locally. The token stays valid until it
// expires; there is no server-side revocation.
func (a *Auth) Logout() {
	a.session.Clear()
	a.token = ""
	a.user = nil
}

func (a *Auth) IsAuthenticated() bool { return a.token != "" }

func (a *Auth) Token() string { return a.token }

func (a *Auth) User() *localstore.StoredUser { return a.user }
