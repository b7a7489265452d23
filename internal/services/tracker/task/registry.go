package task

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

const tracerName = "github.com/louisbranch/tasktrack/internal/services/tracker/task"

// Store persists tasks. Listings are ordered by due date ascending with
// undated tasks last, then by creation time.
type Store interface {
	PutTask(ctx context.Context, t Task) error
	UpdateTask(ctx context.Context, t Task) (bool, error)
	DeleteTask(ctx context.Context, taskID string) (bool, error)
	GetTask(ctx context.Context, taskID string) (Task, error)
	ListTasks(ctx context.Context) ([]Task, error)
	ListTasksByProject(ctx context.Context, projectID string) ([]Task, error)
	SearchTasks(ctx context.Context, term string) ([]Task, error)
}

// References answers existence checks for the records a task points at.
type References interface {
	ProjectExists(ctx context.Context, projectID string) (bool, error)
	UserExists(ctx context.Context, userID string) (bool, error)
}

// Registry validates and persists tasks.
type Registry struct {
	store  Store
	refs   References
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

// WithIDGenerator overrides task id generation.
func WithIDGenerator(newID func() (string, error)) Option {
	return func(r *Registry) {
		if newID != nil {
			r.newID = newID
		}
	}
}

// NewRegistry builds a registry over store, checking references through refs.
func NewRegistry(store Store, refs References, opts ...Option) *Registry {
	r := &Registry{
		store:  store,
		refs:   refs,
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

// ListAll returns every task.
func (r *Registry) ListAll(ctx context.Context) (_ []Task, err error) {
	ctx, span := r.start(ctx, "task.ListAll")
	defer func() { endSpan(span, err) }()

	if err := r.ready(); err != nil {
		return nil, err
	}
	tasks, err := r.store.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// ListByProject returns the tasks of one project.
func (r *Registry) ListByProject(ctx context.Context, projectID string) (_ []Task, err error) {
	ctx, span := r.start(ctx, "task.ListByProject", attribute.String("project.id", projectID))
	defer func() { endSpan(span, err) }()

	if err := r.ready(); err != nil {
		return nil, err
	}
	tasks, err := r.store.ListTasksByProject(ctx, strings.TrimSpace(projectID))
	if err != nil {
		return nil, fmt.Errorf("list tasks by project: %w", err)
	}
	return tasks, nil
}

// Search matches term case-insensitively against title and description.
func (r *Registry) Search(ctx context.Context, term string) (_ []Task, err error) {
	ctx, span := r.start(ctx, "task.Search")
	defer func() { endSpan(span, err) }()

	if err := r.ready(); err != nil {
		return nil, err
	}
	tasks, err := r.store.SearchTasks(ctx, strings.TrimSpace(term))
	if err != nil {
		return nil, fmt.Errorf("search tasks: %w", err)
	}
	return tasks, nil
}

// Get returns one task or ErrNotFound.
func (r *Registry) Get(ctx context.Context, taskID string) (_ Task, err error) {
	ctx, span := r.start(ctx, "task.Get", attribute.String("task.id", taskID))
	defer func() { endSpan(span, err) }()

	if err := r.ready(); err != nil {
		return Task{}, err
	}
	taskID = strings.TrimSpace(taskID)
	if taskID == "" {
		return Task{}, ErrNotFound
	}
	t, err := r.store.GetTask(ctx, taskID)
	if errors.Is(err, storage.ErrNotFound) {
		return Task{}, ErrNotFound
	}
	if err != nil {
		return Task{}, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// Create validates input, checks references and stores a task.
func (r *Registry) Create(ctx context.Context, input Input) (_ Task, err error) {
	ctx, span := r.start(ctx, "task.Create")
	defer func() { endSpan(span, err) }()

	if err := r.ready(); err != nil {
		return Task{}, err
	}
	f, err := input.normalize()
	if err != nil {
		return Task{}, err
	}
	if err := r.checkReferences(ctx, f); err != nil {
		return Task{}, err
	}
	taskID, err := r.newID()
	if err != nil {
		return Task{}, fmt.Errorf("generate task id: %w", err)
	}
	t := f.apply(Task{ID: taskID, CreatedAt: r.now().UTC()})
	if err := r.store.PutTask(ctx, t); err != nil {
		if errors.Is(err, storage.ErrReferenceMissing) {
			// Project deleted between the check and the insert.
			return Task{}, ErrProjectMissing
		}
		return Task{}, fmt.Errorf("put task: %w", err)
	}
	span.SetAttributes(attribute.String("task.id", taskID))
	return t, nil
}

// Update replaces the editable fields. It reports false when no task has taskID.
func (r *Registry) Update(ctx context.Context, taskID string, input Input) (_ bool, err error) {
	ctx, span := r.start(ctx, "task.Update", attribute.String("task.id", taskID))
	defer func() { endSpan(span, err) }()

	if err := r.ready(); err != nil {
		return false, err
	}
	f, err := input.normalize()
	if err != nil {
		return false, err
	}
	if err := r.checkReferences(ctx, f); err != nil {
		return false, err
	}
	taskID = strings.TrimSpace(taskID)
	if taskID == "" {
		return false, nil
	}
	updated, err := r.store.UpdateTask(ctx, f.apply(Task{ID: taskID}))
	if errors.Is(err, storage.ErrReferenceMissing) {
		return false, ErrProjectMissing
	}
	if err != nil {
		return false, fmt.Errorf("update task: %w", err)
	}
	return updated, nil
}

// Delete removes a task. It reports false when nothing was deleted.
func (r *Registry) Delete(ctx context.Context, taskID string) (_ bool, err error) {
	ctx, span := r.start(ctx, "task.Delete", attribute.String("task.id", taskID))
	defer func() { endSpan(span, err) }()

	if err := r.ready(); err != nil {
		return false, err
	}
	taskID = strings.TrimSpace(taskID)
	if taskID == "" {
		return false, nil
	}
	deleted, err := r.store.DeleteTask(ctx, taskID)
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	return deleted, nil
}

func (r *Registry) checkReferences(ctx context.Context, f fields) error {
	exists, err := r.refs.ProjectExists(ctx, f.projectID)
	if err != nil {
		return fmt.Errorf("check project: %w", err)
	}
	if !exists {
		return ErrProjectMissing
	}
	if f.assignedTo == "" {
		return nil
	}
	exists, err = r.refs.UserExists(ctx, f.assignedTo)
	if err != nil {
		return fmt.Errorf("check assignee: %w", err)
	}
	if !exists {
		return ErrAssigneeMissing
	}
	return nil
}

func (r *Registry) ready() error {
	if r == nil || r.store == nil || r.refs == nil {
		return errors.New("task registry is not configured")
	}
	return nil
}

func (r *Registry) start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := otel.Tracer(tracerName)
	if r != nil && r.tracer != nil {
		tracer = r.tracer
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
