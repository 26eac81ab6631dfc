package usecase

import (
	"context"
	"sync"

	"petcare_backend/internal/feature/auth/domain"
	"petcare_backend/internal/feature/auth/domain/entity"
)

// mockUserRepository はUserRepositoryのモック実装です。
// 未設定のメソッドはユーザー未検出として振る舞います。
type mockUserRepository struct {
	CreateFunc         func(user *entity.User) error
	FindByEmailFunc    func(email string) (*entity.User, error)
	FindByIDFunc       func(id uint) (*entity.User, error)
	UpdatePasswordFunc func(id uint, hash string) error
	UpdateProfileFunc  func(id uint, update entity.ProfileUpdate) (*entity.User, error)
	DeleteFunc         func(id uint) error
}

func (m *mockUserRepository) Create(_ context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(user)
	}
	return nil
}

func (m *mockUserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(email)
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepository) FindByID(_ context.Context, id uint) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(id)
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepository) UpdatePassword(_ context.Context, id uint, hash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(id, hash)
	}
	return nil
}

func (m *mockUserRepository) UpdateProfile(_ context.Context, id uint, update entity.ProfileUpdate) (*entity.User, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(id, update)
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepository) Delete(_ context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(id)
	}
	return nil
}

// mockJWTGenerator はJWTGeneratorのモック実装です。
type mockJWTGenerator struct {
	GenerateTokenFunc func(userID uint, email string) (string, error)
}

func (m *mockJWTGenerator) GenerateToken(userID uint, email string) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(userID, email)
	}
	return "mock-jwt-token", nil
}

// mockResetCodec はResetTokenCodecのモック実装です。
type mockResetCodec struct {
	IssueResetFunc    func(email string) (string, error)
	ValidateResetFunc func(token string) (string, error)
}

func (m *mockResetCodec) IssueReset(email string) (string, error) {
	if m.IssueResetFunc != nil {
		return m.IssueResetFunc(email)
	}
	return "reset-token-for-" + email, nil
}

func (m *mockResetCodec) ValidateReset(token string) (string, error) {
	if m.ValidateResetFunc != nil {
		return m.ValidateResetFunc(token)
	}
	return "", domain.ErrTokenInvalid
}

// mockMailer はResetMailerのモック実装で、送信内容を記録します。
type mockMailer struct {
	SendFunc func(to, token string) error

	mu   sync.Mutex
	sent []sentMail
}

type sentMail struct {
	to    string
	token string
}

func (m *mockMailer) SendPasswordReset(_ context.Context, to, token string) error {
	if m.SendFunc != nil {
		if err := m.SendFunc(to, token); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{to: to, token: token})
	return nil
}

func (m *mockMailer) Sent() []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMail(nil), m.sent...)
}

// mockLimiter はRateLimiterのモック実装です。
type mockLimiter struct {
	AllowFunc func(key string) (bool, error)
}

func (m *mockLimiter) Allow(_ context.Context, key string) (bool, error) {
	return m.AllowFunc(key)
}

// mockMetrics は記録されたラベルを保持します。
type mockMetrics struct {
	logins []string
	resets []string
}

func (m *mockMetrics) LoginAttempt(result string)           { m.logins = append(m.logins, result) }
func (m *mockMetrics) PasswordResetRequested(result string) { m.resets = append(m.resets, result) }

// memoryUserRepository はエンドツーエンドのテスト用のインメモリ実装です。
type memoryUserRepository struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*entity.User
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{nextID: 1, users: map[uint]*entity.User{}}
}

func (r *memoryUserRepository) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyRegistered
		}
	}
	user.ID = r.nextID
	r.nextID++
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *memoryUserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			found := *u
			return &found, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memoryUserRepository) FindByID(_ context.Context, id uint) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	found := *u
	return &found, nil
}

func (r *memoryUserRepository) UpdatePassword(_ context.Context, id uint, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Password = hash
	return nil
}

func (r *memoryUserRepository) UpdateProfile(_ context.Context, id uint, update entity.ProfileUpdate) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.AvatarURL != nil {
		u.AvatarURL = *update.AvatarURL
	}
	found := *u
	return &found, nil
}

func (r *memoryUserRepository) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

var _ UserRepository = (*memoryUserRepository)(nil)
