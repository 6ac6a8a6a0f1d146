package auth

import (
	"fmt"
	"net/mail"
	"strings"
	"sync"

	"github.com/ezerfernandes/codetabs/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Store keys, shared with earlier browser builds of the site.
const (
	keyCurrentUser = "mockUser"
	keyUsers       = "mockUsers"
)

// account is a stored user with its password hash.
type account struct {
	User
	PasswordHash string `json:"passwordHash,omitempty"`
}

// providers holds the identities handed out by SignInWithProvider.
var providers = map[string]User{
	"google": {Email: "user@gmail.com", Username: "googleuser", FullName: "Google User"},
	"apple":  {Email: "user@icloud.com", Username: "appleuser", FullName: "Apple User"},
}

// Mock is a Service backed by a key-value store. Passwords are kept as bcrypt
// hashes; there is no remote identity provider.
type Mock struct {
	mu     sync.Mutex
	store  store.Store
	cost   int
	logger *zap.Logger
}

// NewMock returns a Mock over s. A cost of zero uses bcrypt.DefaultCost.
func NewMock(s store.Store, cost int, logger *zap.Logger) *Mock {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	return &Mock{store: s, cost: cost, logger: logger}
}

func (m *Mock) CurrentUser() (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.current()
}

func (m *Mock) SignUp(email, password, username, fullName string) (*User, error) {
	email = strings.TrimSpace(email)

	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: email %q", ErrInvalidInput, email)
	}

	if len(password) == 0 {
		return nil, fmt.Errorf("%w: empty password", ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), m.cost)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	accounts, err := m.accounts()
	if err != nil {
		return nil, err
	}

	if findByEmail(accounts, email) >= 0 {
		return nil, ErrUserExists
	}

	acc := account{
		User: User{
			ID:       uuid.NewString(),
			Email:    email,
			Username: strings.TrimSpace(username),
			FullName: strings.TrimSpace(fullName),
		},
		PasswordHash: string(hash),
	}

	if err := store.SetJSON(m.store, keyUsers, append(accounts, acc)); err != nil {
		return nil, err
	}

	m.logger.Info("User signed up", zap.String("id", acc.ID), zap.String("email", email))

	return m.setCurrent(acc.User)
}

func (m *Mock) SignIn(email, password string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	accounts, err := m.accounts()
	if err != nil {
		return nil, err
	}

	idx := findByEmail(accounts, strings.TrimSpace(email))
	if idx < 0 {
		return nil, ErrInvalidCredentials
	}

	acc := accounts[idx]
	if bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)) != nil {
		m.logger.Debug("Password mismatch", zap.String("email", acc.Email))

		return nil, ErrInvalidCredentials
	}

	return m.setCurrent(acc.User)
}

func (m *Mock) SignInWithProvider(provider string) (*User, error) {
	canned, ok := providers[strings.ToLower(provider)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, provider)
	}

	canned.ID = uuid.NewString()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Info("User signed in with provider", zap.String("provider", provider))

	return m.setCurrent(canned)
}

func (m *Mock) SignOut() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.store.Remove(keyCurrentUser)
}

func (m *Mock) UpdateProfile(fullName, username string) (*User, error) {
	return m.update(func(u *User) {
		u.FullName = strings.TrimSpace(fullName)
		u.Username = strings.TrimSpace(username)
	})
}

func (m *Mock) UpdateProfilePicture(imageData string) (*User, error) {
	return m.update(func(u *User) {
		u.ProfilePicture = imageData
	})
}

// update applies fn to the current user and to its entry in the users list.
func (m *Mock) update(fn func(*User)) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, err := m.current()
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, ErrNotSignedIn
	}

	fn(user)

	accounts, err := m.accounts()
	if err != nil {
		return nil, err
	}

	for i := range accounts {
		if accounts[i].ID == user.ID {
			accounts[i].User = *user

			if err := store.SetJSON(m.store, keyUsers, accounts); err != nil {
				return nil, err
			}

			break
		}
	}

	return m.setCurrent(*user)
}

func (m *Mock) current() (*User, error) {
	var user User

	ok, err := store.GetJSON(m.store, keyCurrentUser, &user)
	if err != nil || !ok {
		return nil, err
	}

	return &user, nil
}

func (m *Mock) setCurrent(user User) (*User, error) {
	if err := store.SetJSON(m.store, keyCurrentUser, user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (m *Mock) accounts() ([]account, error) {
	var accounts []account

	if _, err := store.GetJSON(m.store, keyUsers, &accounts); err != nil {
		return nil, err
	}

	return accounts, nil
}

func findByEmail(accounts []account, email string) int {
	for i, acc := range accounts {
		if strings.EqualFold(acc.Email, email) {
			return i
		}
	}

	return -1
}
