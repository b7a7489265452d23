package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/tasktrack/internal/platform/id"
	"github.com/louisbranch/tasktrack/internal/services/tracker/storage"
)

const tracerName = "github.com/louisbranch/tasktrack/internal/services/tracker/user"

// Store persists users.
type Store interface {
	PutUser(ctx context.Context, u User) error
	GetUser(ctx context.Context, userID string) (User, error)
	GetUserByUsername(ctx context.Context, username string) (User, error)
	ListUsers(ctx context.Context) ([]User, error)
}

// Directory is the user directory service.
type Directory struct {
	store  Store
	hasher Hasher
	now    func() time.Time
	newID  func() (string, error)
	tracer trace.Tracer

	dummyOnce sync.Once
	dummyHash string
}

// Option configures a Directory.
type Option func(*Directory)

// WithHasher overrides the bcrypt hasher.
func WithHasher(hasher Hasher) Option {
	return func(d *Directory) {
		if hasher != nil {
			d.hasher = hasher
		}
	}
}

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(d *Directory) {
		if now != nil {
			d.now = now
		}
	}
}

// WithIDGenerator overrides user id generation.
func WithIDGenerator(newID func() (string, error)) Option {
	return func(d *Directory) {
		if newID != nil {
			d.newID = newID
		}
	}
}

// NewDirectory builds a directory over store.
func NewDirectory(store Store, opts ...Option) *Directory {
	d := &Directory{
		store:  store,
		hasher: BcryptHasher{Cost: DefaultBcryptCost},
		now:    time.Now,
		newID:  id.NewID,
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Create registers a user and returns its id. A duplicate username surfaces as
// ErrUsernameTaken from the storage uniqueness constraint.
func (d *Directory) Create(ctx context.Context, reg Registration) (_ string, err error) {
	ctx, span := d.start(ctx, "user.Create")
	defer func() { endSpan(span, err) }()

	if err := d.ready(); err != nil {
		return "", err
	}
	reg, err = reg.normalize()
	if err != nil {
		return "", err
	}
	hash, err := d.hasher.Hash(reg.Password)
	if err != nil {
		return "", err
	}
	userID, err := d.newID()
	if err != nil {
		return "", fmt.Errorf("generate user id: %w", err)
	}

	record := User{
		ID:           userID,
		Username:     reg.Username,
		Email:        reg.Email,
		PasswordHash: hash,
		CreatedAt:    d.now().UTC(),
	}
	if err := d.store.PutUser(ctx, record); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return "", ErrUsernameTaken
		}
		return "", fmt.Errorf("put user: %w", err)
	}
	span.SetAttributes(attribute.String("user.id", userID))
	return userID, nil
}

// Authenticate verifies credentials. Unknown usernames and wrong passwords
// both return ErrInvalidCredentials.
func (d *Directory) Authenticate(ctx context.Context, username, rawPassword string) (_ PublicUser, err error) {
	ctx, span := d.start(ctx, "user.Authenticate")
	defer func() { endSpan(span, err) }()

	if err := d.ready(); err != nil {
		return PublicUser{}, err
	}
	username = strings.TrimSpace(username)
	if username == "" || rawPassword == "" {
		return PublicUser{}, ErrInvalidCredentials
	}

	record, err := d.store.GetUserByUsername(ctx, username)
	if errors.Is(err, storage.ErrNotFound) {
		// Burn one comparison so a missing account costs the same as a bad password.
		_ = d.hasher.Compare(d.dummy(), rawPassword)
		return PublicUser{}, ErrInvalidCredentials
	}
	if err != nil {
		return PublicUser{}, fmt.Errorf("get user by username: %w", err)
	}

	if err := d.hasher.Compare(record.PasswordHash, rawPassword); err != nil {
		if errors.Is(err, errPasswordMismatch) {
			return PublicUser{}, ErrInvalidCredentials
		}
		return PublicUser{}, err
	}
	return record.Public(), nil
}

// FindByUsername returns the stored user, including the password hash.
func (d *Directory) FindByUsername(ctx context.Context, username string) (User, error) {
	if err := d.ready(); err != nil {
		return User{}, err
	}
	record, err := d.store.GetUserByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, storage.ErrNotFound) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("get user by username: %w", err)
	}
	return record, nil
}

// FindByID returns the public view of a user.
func (d *Directory) FindByID(ctx context.Context, userID string) (PublicUser, error) {
	if err := d.ready(); err != nil {
		return PublicUser{}, err
	}
	record, err := d.store.GetUser(ctx, strings.TrimSpace(userID))
	if errors.Is(err, storage.ErrNotFound) {
		return PublicUser{}, ErrNotFound
	}
	if err != nil {
		return PublicUser{}, fmt.Errorf("get user: %w", err)
	}
	return record.Public(), nil
}

// ListAll returns every user ordered by username.
func (d *Directory) ListAll(ctx context.Context) ([]PublicUser, error) {
	if err := d.ready(); err != nil {
		return nil, err
	}
	records, err := d.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	users := make([]PublicUser, 0, len(records))
	for _, record := range records {
		users = append(users, record.Public())
	}
	return users, nil
}

func (d *Directory) ready() error {
	if d == nil || d.store == nil {
		return errors.New("user directory is not configured")
	}
	return nil
}

// dummy lazily hashes a throwaway password with the configured hasher so
// the comparison cost matches real accounts.
func (d *Directory) dummy() string {
	d.dummyOnce.Do(func() {
		hash, err := d.hasher.Hash("tasktrack-dummy-password")
		if err == nil {
			d.dummyHash = hash
		}
	})
	return d.dummyHash
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (d *Directory) start(ctx context.Context, name string) (context.Context, trace.Span) {
	tracer := otel.Tracer(tracerName)
	if d != nil && d.tracer != nil {
		tracer = d.tracer
	}
	return tracer.Start(ctx, name)
}
