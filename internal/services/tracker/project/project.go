// Package project implements the project registry.
package project

import (
	"strings"
	"time"

	apperrors "github.com/louisbranch/tasktrack/internal/platform/errors"
	"github.com/louisbranch/tasktrack/internal/services/tracker/dates"
)

// Status is the lifecycle state of a project.
type Status string

const (
	StatusNotStarted Status = "Not Started"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

// DefaultStatus applies when a project is saved without a status.
const DefaultStatus = StatusNotStarted

// Statuses lists every status in display order.
func Statuses() []Status {
	return []Status{StatusNotStarted, StatusInProgress, StatusCompleted}
}

var (
	// ErrNotFound indicates a missing project.
	ErrNotFound = apperrors.EK(apperrors.KindNotFound, "project.not_found", "project not found")
	// ErrNameRequired indicates a blank project name.
	ErrNameRequired = apperrors.EK(apperrors.KindInvalidInput, "project.name_required", "project name is required")
	// ErrInvalidStatus indicates a status outside the closed set.
	ErrInvalidStatus = apperrors.EK(apperrors.KindInvalidInput, "project.invalid_status", "invalid project status")
	// ErrInvalidDate indicates an unparseable start or end date.
	ErrInvalidDate = apperrors.EK(apperrors.KindInvalidInput, "project.invalid_date", "invalid project date")
	// ErrDateRange indicates an end date before the start date.
	ErrDateRange = apperrors.EK(apperrors.KindInvalidInput, "project.date_range", "end date is before start date")
)

// ParseStatus maps raw form input onto Status. Blank input yields DefaultStatus.
func ParseStatus(raw string) (Status, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultStatus, nil
	}
	for _, status := range Statuses() {
		if strings.EqualFold(raw, string(status)) {
			return status, nil
		}
	}
	return "", ErrInvalidStatus
}

// Project is a stored project. CreatorName is read-only, joined from users.
type Project struct {
	ID          string
	Name        string
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
	Status      Status
	CreatedBy   string
	CreatorName string
	CreatedAt   time.Time
}

// Input is the raw, form-shaped payload for create and update.
type Input struct {
	Name        string
	Description string
	StartDate   string
	EndDate     string
	Status      string
}

// fields is Input after validation.
type fields struct {
	name        string
	description string
	startDate   *time.Time
	endDate     *time.Time
	status      Status
}

func (in Input) normalize() (fields, error) {
	out := fields{
		name:        strings.TrimSpace(in.Name),
		description: strings.TrimSpace(in.Description),
	}
	if out.name == "" {
		return fields{}, ErrNameRequired
	}
	var err error
	if out.startDate, err = dates.Parse(in.StartDate); err != nil {
		return fields{}, apperrors.Wrap(apperrors.KindInvalidInput, ErrInvalidDate.Key, "invalid start date", err)
	}
	if out.endDate, err = dates.Parse(in.EndDate); err != nil {
		return fields{}, apperrors.Wrap(apperrors.KindInvalidInput, ErrInvalidDate.Key, "invalid end date", err)
	}
	if dates.Before(out.endDate, out.startDate) {
		return fields{}, ErrDateRange
	}
	if out.status, err = ParseStatus(in.Status); err != nil {
		return fields{}, err
	}
	return out, nil
}

func (f fields) apply(p Project) Project {
	p.Name = f.name
	p.Description = f.description
	p.StartDate = f.startDate
	p.EndDate = f.endDate
	p.Status = f.status
	return p
}
