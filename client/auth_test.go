package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netflix-clone-backend/localstore"
)

// stubAuthServer fakes the auth service endpoints with one known
// account, ann@x.com / secret1.
func stubAuthServer(t *testing.T) *httptest.Server {
	t.Helper()

	annUser := map[string]any{
		"_id":   "64f000000000000000000001",
		"name":  "Ann",
		"email": "ann@x.com",
		"role":  "Student",
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/login", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		if req["email"] != "ann@x.com" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "User does not exist"})
			return
		}
		if req["password"] != "secret1" {
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "Password does not match"})
			return
		}

		http.SetCookie(w, &http.Cookie{Name: "token", Value: "tok-ann", HttpOnly: true})
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"token":   "tok-ann",
			"user":    annUser,
			"message": "User logged in successfully",
		})
	})

	mux.HandleFunc("/api/v1/signup", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"message": "User Created Successfully",
			"data":    map[string]any{"_id": "64f000000000000000000002", "name": req["name"], "email": req["email"], "role": req["role"]},
		})
	})

	mux.HandleFunc("/api/v1/check-user", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		exists := req["email"] == "ann@x.com"
		json.NewEncoder(w).Encode(map[string]any{"success": true, "exists": exists, "message": "checked"})
	})

	mux.HandleFunc("/api/v1/verify-token", func(w http.ResponseWriter, r *http.Request) {
		token := ""
		if c, err := r.Cookie("token"); err == nil {
			token = c.Value
		} else if auth := r.Header.Get("Authorization"); len(auth) > 7 {
			token = auth[7:]
		}

		if token != "tok-ann" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{"success": false, "valid": false, "message": "Invalid token"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"valid":   true,
			"user":    annUser,
			"token":   token,
			"message": "Token is valid",
		})
	})

	mux.HandleFunc("/api/v1/google-login", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		http.SetCookie(w, &http.Cookie{Name: "token", Value: "tok-google", HttpOnly: true})
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"token":   "tok-google",
			"user":    map[string]any{"_id": "64f000000000000000000003", "name": req["name"], "email": req["email"], "role": "Visitor", "picture": req["picture"]},
			"message": "Google login successful",
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestAuth(t *testing.T, baseURL string) (*Auth, *localstore.Store) {
	t.Helper()
	store, err := localstore.Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return NewAuth(NewAuthAPI(baseURL), localstore.NewSession(store)), store
}

func TestAuth_LoginPersistsSession(t *testing.T) {
	server := stubAuthServer(t)
	auth, store := newTestAuth(t, server.URL+"/api/v1")

	require.NoError(t, auth.Login(context.Background(), "ann@x.com", "secret1"))
	assert.True(t, auth.IsAuthenticated())
	assert.Equal(t, "tok-ann", auth.Token())
	require.NotNil(t, auth.User())
	assert.Equal(t, "Ann", auth.User().Name)

	token, _ := store.Get(localstore.KeyToken)
	assert.Equal(t, "tok-ann", token)
	email, _ := store.Get(localstore.KeyUserEmail)
	assert.Equal(t, "ann@x.com", email)
}

func TestAuth_LoginFailureSurfacesServerMessage(t *testing.T) {
	server := stubAuthServer(t)
	auth, store := newTestAuth(t, server.URL+"/api/v1")

	err := auth.Login(context.Background(), "ann@x.com", "wrong00")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.Equal(t, "Password does not match", apiErr.Message)

	assert.False(t, auth.IsAuthenticated())
	_, ok := store.Get(localstore.KeyToken)
	assert.False(t, ok)
}

func TestAuth_LoadRestoresSession(t *testing.T) {
	server := stubAuthServer(t)
	auth, store := newTestAuth(t, server.URL+"/api/v1")

	require.NoError(t, auth.Login(context.Background(), "ann@x.com", "secret1"))

	// A fresh Auth over the same store picks the session back up.
	restored := NewAuth(NewAuthAPI(server.URL+"/api/v1"), localstore.NewSession(store))
	restored.Load()
	assert.True(t, restored.IsAuthenticated())
	assert.Equal(t, "tok-ann", restored.Token())
	require.NotNil(t, restored.User())
	assert.Equal(t, "ann@x.com", restored.User().Email)
}

func TestAuth_LogoutClearsSession(t *testing.T) {
	server := stubAuthServer(t)
	auth, store := newTestAuth(t, server.URL+"/api/v1")

	require.NoError(t, auth.Login(context.Background(), "ann@x.com", "secret1"))
	auth.Logout()

	assert.False(t, auth.IsAuthenticated())
	assert.Nil(t, auth.User())
	_, ok := store.Get(localstore.KeyToken)
	assert.False(t, ok)
}

func TestAuth_GoogleLoginPersistsPicture(t *testing.T) {
	server := stubAuthServer(t)
	auth, store := newTestAuth(t, server.URL+"/api/v1")

	require.NoError(t, auth.GoogleLogin(context.Background(), "g@x.com", "G", "https://pic/g.png", "gid-1"))
	assert.True(t, auth.IsAuthenticated())

	picture, _ := store.Get(localstore.KeyUserPicture)
	assert.Equal(t, "https://pic/g.png", picture)
}

func TestAuth_SignupReturnsUserWithoutSession(t *testing.T) {
	server := stubAuthServer(t)
	auth, store := newTestAuth(t, server.URL+"/api/v1")

	user, err := auth.Signup(context.Background(), "Bob", "bob@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "bob@x.com", user.Email)

	// Signup carries no token, so nothing is persisted.
	assert.False(t, auth.IsAuthenticated())
	_, ok := store.Get(localstore.KeyToken)
	assert.False(t, ok)
}

func TestAuthAPI_CookieJarCarriesSession(t *testing.T) {
	server := stubAuthServer(t)
	api := NewAuthAPI(server.URL + "/api/v1")
	ctx := context.Background()

	_, err := api.Login(ctx, "ann@x.com", "secret1")
	require.NoError(t, err)

	// No bearer passed: the jar's cookie authenticates the call.
	resp, err := api.VerifyToken(ctx, "")
	require.NoError(t, err)
	assert.True(t, resp.Valid)
	assert.Equal(t, "ann@x.com", resp.User.Email)
}

func TestAuthAPI_CheckUser(t *testing.T) {
	server := stubAuthServer(t)
	api := NewAuthAPI(server.URL + "/api/v1")

	resp, err := api.CheckUser(context.Background(), "ann@x.com")
	require.NoError(t, err)
	assert.True(t, resp.Exists)

	resp, err = api.CheckUser(context.Background(), "ghost@x.com")
	require.NoError(t, err)
	assert.False(t, resp.Exists)
}
