package auth

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/chris/jot/config"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNoSession          = errors.New("no such session")
	ErrSessionExpired     = errors.New("session expired")
)

// hashCost is lowered in tests.
var hashCost = bcrypt.DefaultCost

// Session is an authenticated login. It is passed explicitly to whatever
// needs to know who is acting; nothing reads it from ambient state.
type Session struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

type account struct {
	name string
	hash []byte
}

// Directory holds the known users with bcrypt-hashed passwords.
type Directory struct {
	accounts map[string]account
}

func NewDirectory(users []config.User) (*Directory, error) {
	d := &Directory{accounts: make(map[string]account, len(users))}
	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), hashCost)
		if err != nil {
			return nil, fmt.Errorf("hashing password for %s: %w", u.Username, err)
		}
		name := u.Name
		if name == "" {
			name = u.Username
		}
		d.accounts[strings.ToLower(u.Username)] = account{name: name, hash: hash}
	}
	return d, nil
}

// Verify returns the display name for a valid username/password pair.
func (d *Directory) Verify(username, password string) (string, error) {
	acct, ok := d.accounts[strings.ToLower(strings.TrimSpace(username))]
	if !ok {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acct.hash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return acct.name, nil
}

// SessionStore keeps live sessions in memory. Sessions do not survive a restart.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]Session
	ttl      time.Duration
	now      func() time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *SessionStore) Create(username, name string) Session {
	sess := Session{
		Token:     uuid.NewString(),
		Username:  username,
		Name:      name,
		ExpiresAt: s.now().Add(s.ttl),
	}
	s.mu.Lock()
	s.sessions[sess.Token] = sess
	s.mu.Unlock()
	return sess
}

// Get returns the session for token. Expired sessions are removed.
func (s *SessionStore) Get(token string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return Session{}, ErrNoSession
	}
	if sess.Expired(s.now()) {
		delete(s.sessions, token)
		return Session{}, ErrSessionExpired
	}
	return sess, nil
}

func (s *SessionStore) Delete(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// Authenticator ties the user directory to the session store.
type Authenticator struct {
	dir   *Directory
	store *SessionStore
	log   *zap.Logger
}

// New builds an Authenticator for users whose sessions last sessionDays.
func New(users []config.User, sessionDays int, log *zap.Logger) (*Authenticator, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if sessionDays <= 0 {
		sessionDays = 30
	}
	dir, err := NewDirectory(users)
	if err != nil {
		return nil, err
	}
	return &Authenticator{
		dir:   dir,
		store: NewSessionStore(time.Duration(sessionDays) * 24 * time.Hour),
		log:   log.With(zap.String("component", "auth")),
	}, nil
}

func (a *Authenticator) Login(username, password string) (Session, error) {
	name, err := a.dir.Verify(username, password)
	if err != nil {
		a.log.Warn("login failed", zap.String("username", username))
		return Session{}, err
	}
	sess := a.store.Create(strings.ToLower(strings.TrimSpace(username)), name)
	a.log.Info("login", zap.String("username", sess.Username))
	return sess, nil
}

func (a *Authenticator) Session(token string) (Session, error) {
	return a.store.Get(token)
}

func (a *Authenticator) Logout(token string) {
	a.store.Delete(token)
}
