package project

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/tasktrack/internal/platform/id"
	"github.com/louisbranch/tasktrack/internal/services/tracker/storage"
)

const tracerName = "github.com/louisbranch/tasktrack/internal/services/tracker/project"

// Store persists projects. List results are ordered newest first and carry
// CreatorName.
type Store interface {
	PutProject(ctx context.Context, p Project) error
	UpdateProject(ctx context.Context, p Project) (bool, error)
	DeleteProject(ctx context.Context, projectID string) (bool, error)
	GetProject(ctx context.Context, projectID string) (Project, error)
	ListProjects(ctx context.Context) ([]Project, error)
	SearchProjects(ctx context.Context, term string) ([]Project, error)
}

// Registry validates and persists projects.
type Registry struct {
	store  Store
	now    func() time.Time
	newID  func() (string, error)
	tracer trace.Tracer
}

// Option configures a Registry.
type Option func(*Registry)

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// WithIDGenerator overrides project id generation.
func WithIDGenerator(newID func() (string, error)) Option {
	return func(r *Registry) {
		if newID != nil {
			r.newID = newID
		}
	}
}

// NewRegistry builds a registry over store.
func NewRegistry(store Store, opts ...Option) *Registry {
	r := &Registry{
		store:  store,
		now:    time.Now,
		newID:  id.NewID,
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// ListAll returns every project, newest first.
func (r *Registry) ListAll(ctx context.Context) (_ []Project, err error) {
	ctx, span := r.start(ctx, "project.ListAll")
	defer func() { endSpan(span, err) }()

	if err := r.ready(); err != nil {
		return nil, err
	}
	projects, err := r.store.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// Search matches term case-insensitively against name and description. A
// blank term lists everything.
func (r *Registry) Search(ctx context.Context, term string) (_ []Project, err error) {
	ctx, span := r.start(ctx, "project.Search")
	defer func() { endSpan(span, err) }()

	if err := r.ready(); err != nil {
		return nil, err
	}
	projects, err := r.store.SearchProjects(ctx, strings.TrimSpace(term))
	if err != nil {
		return nil, fmt.Errorf("search projects: %w", err)
	}
	return projects, nil
}

// Get returns one project or ErrNotFound.
func (r *Registry) Get(ctx context.Context, projectID string) (_ Project, err error) {
	ctx, span := r.start(ctx, "project.Get", attribute.String("project.id", projectID))
	defer func() { endSpan(span, err) }()

	if err := r.ready(); err != nil {
		return Project{}, err
	}
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return Project{}, ErrNotFound
	}
	p, err := r.store.GetProject(ctx, projectID)
	if errors.Is(err, storage.ErrNotFound) {
		return Project{}, ErrNotFound
	}
	if err != nil {
		return Project{}, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

// Create validates input and stores a project owned by createdBy.
func (r *Registry) Create(ctx context.Context, createdBy string, input Input) (_ Project, err error) {
	ctx, span := r.start(ctx, "project.Create")
	defer func() { endSpan(span, err) }()

	if err := r.ready(); err != nil {
		return Project{}, err
	}
	createdBy = strings.TrimSpace(createdBy)
	if createdBy == "" {
		return Project{}, errors.New("creator is required")
	}
	f, err := input.normalize()
	if err != nil {
		return Project{}, err
	}
	projectID, err := r.newID()
	if err != nil {
		return Project{}, fmt.Errorf("generate project id: %w", err)
	}
	p := f.apply(Project{
		ID:        projectID,
		CreatedBy: createdBy,
		CreatedAt: r.now().UTC(),
	})
	if err := r.store.PutProject(ctx, p); err != nil {
		return Project{}, fmt.Errorf("put project: %w", err)
	}
	span.SetAttributes(attribute.String("project.id", projectID))
	return p, nil
}

// Update replaces the editable fields. It reports false when no project has
// projectID.
func (r *Registry) Update(ctx context.Context, projectID string, input Input) (_ bool, err error) {
	ctx, span := r.start(ctx, "project.Update", attribute.String("project.id", projectID))
	defer func() { endSpan(span, err) }()

	if err := r.ready(); err != nil {
		return false, err
	}
	f, err := input.normalize()
	if err != nil {
		return false, err
	}
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return false, nil
	}
	updated, err := r.store.UpdateProject(ctx, f.apply(Project{ID: projectID}))
	if err != nil {
		return false, fmt.Errorf("update project: %w", err)
	}
	return updated, nil
}

// Delete removes a project and, through the storage cascade, its tasks. It
// reports false when nothing was deleted.
func (r *Registry) Delete(ctx context.Context, projectID string) (_ bool, err error) {
	ctx, span := r.start(ctx, "project.Delete", attribute.String("project.id", projectID))
	defer func() { endSpan(span, err) }()

	if err := r.ready(); err != nil {
		return false, err
	}
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return false, nil
	}
	deleted, err := r.store.DeleteProject(ctx, projectID)
	if err != nil {
		return false, fmt.Errorf("delete project: %w", err)
	}
	return deleted, nil
}

func (r *Registry) ready() error {
	if r == nil || r.store == nil {
		return errors.New("project registry is not configured")
	}
	return nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (r *Registry) start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := otel.Tracer(tracerName)
	if r != nil && r.tracer != nil {
		tracer = r.tracer
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}
