package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/luthfir/posts-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	name     string
	email    string
	password string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		name:     fmt.Sprintf("testuser_%s", suffix),
		email:    fmt.Sprintf("testuser_%s@example.com", suffix),
		password: "testpassword123",
	}
}

// WithName sets the display name
func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.name = name
	return b
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Name:         b.name,
		Email:        b.email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// RegisterResponse matches the POST /register response body
type RegisterResponse struct {
	User struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Token   string `json:"token"`
}

// LoginResponse matches the POST /login response body
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
	Message   string `json:"message"`
	Status    int    `json:"status"`
}

// BuildAndRegister creates a user through POST /register and returns
// the user along with the registration token.
func (b *UserBuilder) BuildAndRegister(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	reqBody := map[string]string{
		"name":                  b.name,
		"email":                 b.email,
		"password":              b.password,
		"password_confirmation": b.password,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.URL("/register"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var regResp RegisterResponse
	if err := json.NewDecoder(resp.Body).Decode(&regResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	userID, _ := uuid.Parse(regResp.User.ID)
	user := &domain.User{
		ID:    userID,
		Name:  regResp.User.Name,
		Email: regResp.User.Email,
	}

	return user, regResp.Token
}

// Login performs POST /login for the builder's credentials and returns
// the decoded body. The raw response status is returned alongside so
// callers can assert limit and credential failures. A non-empty ip is
// sent as X-Forwarded-For, which the router's RealIP middleware trusts,
// so tests can exercise per-IP behavior from one loopback client.
func (b *UserBuilder) Login(t *testing.T, ts *TestServer, password, ip string) (*LoginResponse, int) {
	t.Helper()

	body, _ := json.Marshal(map[string]string{
		"email":    b.email,
		"password": password,
	})

	req, err := http.NewRequest(http.MethodPost, ts.URL("/login"), bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to build login request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if ip != "" {
		req.Header.Set("X-Forwarded-For", ip)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("failed to login: %v", err)
	}
	defer resp.Body.Close()

	var loginResp LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}

	return &loginResp, resp.StatusCode
}

// Email returns the builder's email.
func (b *UserBuilder) Email() string {
	return b.email
}

// Password returns the builder's raw password.
func (b *UserBuilder) Password() string {
	return b.password
}

// CreatePost persists a post owned by user directly in the database.
func CreatePost(t *testing.T, db *gorm.DB, user *domain.User, title, body string) *domain.Post {
	t.Helper()

	post := &domain.Post{
		ID:        uuid.New(),
		UserID:    user.ID,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := db.Create(post).Error; err != nil {
		t.Fatalf("failed to create post: %v", err)
	}

	return post
}

// AuthenticatedRequest builds a request carrying a bearer token.
func AuthenticatedRequest(t *testing.T, method, url string, body []byte, token string) *http.Request {
	t.Helper()

	req, err := http.NewRequest(method, url, bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}
