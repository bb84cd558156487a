package localstore

import "encoding/json"

// StoredUser is the projection of the signed-in user the client keeps
// around between restarts.
type StoredUser struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role,omitempty"`
	Picture string `json:"picture,omitempty"`
}

// Session persists who is logged in. Loading never fails the caller:
// the worst case is an unauthenticated state.
type Session struct {
	store *Store
}

func NewSession(store *Store) *Session {
	return &Session{store: store}
}

// Load restores the saved token and user. If either is missing, or the
// stored user blob does not parse, the session keys are cleared and an
// unauthenticated state is returned.
func (s *Session) Load() (string, *StoredUser) {
	token, haveToken := s.store.Get(KeyToken)
	raw, haveUser := s.store.Get(KeyUser)

	if !haveToken || token == "" || !haveUser {
		s.Clear()
		return "", nil
	}

	var user StoredUser
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.Clear()
		return "", nil
	}

	return token, &user
}

// Persist writes the token, the user blob and the individual display
// projections. A missing token or user makes this a no-op.
func (s *Session) Persist(token string, user *StoredUser) error {
	if token == "" || user == nil {
		return nil
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}

	if err := s.store.Set(KeyToken, token); err != nil {
		return err
	}
	if err := s.store.Set(KeyUser, string(raw)); err != nil {
		return err
	}
	if err := s.store.Set(KeyUserName, user.Name); err != nil {
		return err
	}
	if err := s.store.Set(KeyUserPicture, user.Picture); err != nil {
		return err
	}
	return s.store.Set(KeyUserEmail, user.Email)
}

// Clear removes every session key. Idempotent; the my-list collection
// survives logout.
func (s *Session) Clear() {
	for _, key := range []string{KeyToken, KeyUser, KeyUserName, KeyUserPicture, KeyUserEmail} {
		_ = s.store.Delete(key)
	}
}
