package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"junglepets/models"
	"junglepets/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrEmailTaken is returned by Register when the email already exists in
// the collection (exact, case-sensitive match).
var ErrEmailTaken = errors.New("email already registered")

// RegisterInput carries the fields accepted at registration time.
type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	Phone      string
	TaxID      string
	PetName    string
	Newsletter bool
}

// UserUpdate is a partial update applied to the record matching ID.
// Nil fields are left untouched.
type UserUpdate struct {
	ID         string
	Name       *string
	Email      *string
	Phone      *string
	TaxID      *string
	PetName    *string
	Newsletter *bool
}

// UserStore owns the user collection and the current-session slot. The
// whole collection is rewritten on every mutation; the mutex serializes
// those read-modify-write cycles.
type UserStore struct {
	mu      sync.Mutex
	backend storage.Backend
	codec   PasswordCodec
	now     func() time.Time
}

func NewUserStore(backend storage.Backend, codec PasswordCodec) *UserStore {
	return &UserStore{
		backend: backend,
		codec:   codec,
		now:     time.Now,
	}
}

// Init ensures the users slot exists. Idempotent.
func (s *UserStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.backend.Get(ctx, storage.SlotUsers); err == nil {
		return nil
	}
	return s.saveUsers(ctx, []models.User{})
}

// List returns all user records. A missing or corrupt slot yields an empty
// slice, never an error.
func (s *UserStore) List(ctx context.Context) []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadUsers(ctx)
}

// Register validates email uniqueness, encodes the password and appends
// the new record. Returns ErrEmailTaken when the email is already present.
func (s *UserStore) Register(ctx context.Context, input RegisterInput) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.loadUsers(ctx)
	for _, u := range users {
		if u.Email == input.Email {
			return models.User{}, ErrEmailTaken
		}
	}

	digest, err := s.codec.Encode(input.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("encode password: %w", err)
	}

	user := models.User{
		ID:             uuid.NewString(),
		Name:           input.Name,
		Email:          input.Email,
		PasswordDigest: digest,
		Phone:          input.Phone,
		TaxID:          input.TaxID,
		PetName:        input.PetName,
		Newsletter:     input.Newsletter,
		CreatedAt:      s.now(),
		LastLoginAt:    nil,
	}

	users = append(users, user)
	if err := s.saveUsers(ctx, users); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Authenticate looks up the record by email and password. A failed match
// returns (nil, nil) and changes nothing. A successful match stamps
// LastLoginAt, persists the record in place and establishes the session.
func (s *UserStore) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.loadUsers(ctx)
	for i := range users {
		if users[i].Email != email || !s.codec.Matches(password, users[i].PasswordDigest) {
			continue
		}

		now := s.now()
		users[i].LastLoginAt = &now
		if err := s.saveUsers(ctx, users); err != nil {
			return nil, err
		}
		if err := s.setSession(ctx, users[i]); err != nil {
			return nil, err
		}

		user := users[i]
		return &user, nil
	}
	return nil, nil
}

// Update shallow-merges the non-nil fields of update into the record with
// the matching ID. Returns false when no record has that ID.
func (s *UserStore) Update(ctx context.Context, update UserUpdate) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.loadUsers(ctx)
	for i := range users {
		if users[i].ID != update.ID {
			continue
		}

		if update.Name != nil {
			users[i].Name = *update.Name
		}
		if update.Email != nil {
			users[i].Email = *update.Email
		}
		if update.Phone != nil {
			users[i].Phone = *update.Phone
		}
		if update.TaxID != nil {
			users[i].TaxID = *update.TaxID
		}
		if update.PetName != nil {
			users[i].PetName = *update.PetName
		}
		if update.Newsletter != nil {
			users[i].Newsletter = *update.Newsletter
		}

		if err := s.saveUsers(ctx, users); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// GetByEmail returns the record with the exact email, or nil.
func (s *UserStore) GetByEmail(ctx context.Context, email string) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.loadUsers(ctx) {
		if u.Email == email {
			user := u
			return &user
		}
	}
	return nil
}

// CurrentSession returns the active session, or nil when nobody is logged
// in or the slot is corrupt.
func (s *UserStore) CurrentSession(ctx context.Context) *models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.backend.Get(ctx, storage.SlotSession)
	if err != nil {
		return nil
	}

	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		zap.L().Warn("Corrupt session slot, treating as logged out", zap.Error(err))
		return nil
	}
	return &session
}

// Logout clears the session slot. The user collection is untouched.
func (s *UserStore) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backend.Remove(ctx, storage.SlotSession)
}

// ResetAll clears both slots and re-initializes an empty collection.
func (s *UserStore) ResetAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Remove(ctx, storage.SlotUsers); err != nil {
		return err
	}
	if err := s.backend.Remove(ctx, storage.SlotSession); err != nil {
		return err
	}
	return s.saveUsers(ctx, []models.User{})
}

// Export returns a diagnostic dump of the store.
func (s *UserStore) Export(ctx context.Context) models.Snapshot {
	s.mu.Lock()
	users := s.loadUsers(ctx)
	s.mu.Unlock()

	return models.Snapshot{
		Users:          users,
		CurrentSession: s.CurrentSession(ctx),
		ExportedAt:     s.now(),
	}
}

// Stats aggregates counts over the collection. "Last week" means a
// CreatedAt within 7 days of now.
func (s *UserStore) Stats(ctx context.Context) models.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.loadUsers(ctx)
	weekAgo := s.now().AddDate(0, 0, -7)

	stats := models.Stats{TotalUsers: len(users)}
	for _, u := range users {
		if u.PetName != "" {
			stats.UsersWithPet++
		}
		if u.Newsletter {
			stats.NewsletterSubscribers++
		}
		if u.CreatedAt.After(weekAgo) {
			stats.UsersCreatedInLastWeek++
		}
	}
	return stats
}

// loadUsers reads the users slot, degrading to an empty collection on a
// missing or unparseable slot. Caller holds s.mu.
func (s *UserStore) loadUsers(ctx context.Context) []models.User {
	data, err := s.backend.Get(ctx, storage.SlotUsers)
	if err != nil {
		return []models.User{}
	}

	var users []models.User
	if err := json.Unmarshal(data, &users); err != nil {
		zap.L().Warn("Corrupt users slot, treating as empty", zap.Error(err))
		return []models.User{}
	}
	if users == nil {
		users = []models.User{}
	}
	return users
}

// saveUsers rewrites the whole collection. Caller holds s.mu.
func (s *UserStore) saveUsers(ctx context.Context, users []models.User) error {
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}
	return s.backend.Set(ctx, storage.SlotUsers, data)
}

// setSession stores the public projection of user. Caller holds s.mu.
func (s *UserStore) setSession(ctx context.Context, user models.User) error {
	data, err := json.Marshal(user.Session())
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.backend.Set(ctx, storage.SlotSession, data)
}
