package services

import (
	"context"
	"errors"
	"time"

	"github.com/rpupo63/student-projects-backend/errs"
	"github.com/rpupo63/student-projects-backend/models"
	"gorm.io/gorm"
)

const (
	msgApplicationExists   = "Application already exists"
	msgWrongAction         = "Wrong action"
	msgApplicationNotFound = "Application not found"
	msgNotProjectOwner     = "You are not project owner"
	msgProjectDoesNotExist = "Project does not exist"
)

type ApplyInput struct {
	ProjectID uint   `json:"projectId" validate:"required"`
	Message   string `json:"message" validate:"max=2000"`
}

type ProcessInput struct {
	ApplicationID uint                     `json:"applicationId"`
	Action        models.ApplicationStatus `json:"action"`
}

// ApplicantProfile is the public part of a user shown to project owners.
type ApplicantProfile struct {
	ID          uint   `json:"id"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Bio         string `json:"bio"`
	Description string `json:"description"`
}

type ApplicationView struct {
	ID          uint                     `json:"id"`
	ApplicantID uint                     `json:"applicantId"`
	ProjectID   uint                     `json:"projectId"`
	Message     string                   `json:"message"`
	Status      models.ApplicationStatus `json:"status"`
	CreatedAt   time.Time                `json:"createdDate"`
	UpdatedAt   time.Time                `json:"updatedDate"`
	Project     *ProjectView             `json:"project,omitempty"`
	Applicant   *ApplicantProfile        `json:"applicant,omitempty"`
}

func newApplicationView(a models.Application) ApplicationView {
	view := ApplicationView{
		ID:          a.ID,
		ApplicantID: a.ApplicantID,
		ProjectID:   a.ProjectID,
		Message:     a.Message,
		Status:      a.Status,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
	if a.Project != nil {
		p := newProjectView(*a.Project)
		view.Project = &p
	}
	if a.Applicant != nil {
		view.Applicant = &ApplicantProfile{
			ID:          a.Applicant.ID,
			FullName:    a.Applicant.FullName,
			Email:       a.Applicant.Email,
			Bio:         a.Applicant.Bio,
			Description: a.Applicant.Description,
		}
	}
	return view
}

// ApplicationService runs the application lifecycle: pending, then accepted
// or rejected by the project owner.
type ApplicationService struct {
	store    Store
	notifier Notifier
}

func NewApplicationService(store Store, notifier Notifier) *ApplicationService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &ApplicationService{store: store, notifier: notifier}
}

// Create files a pending application. One application per applicant and
// project is allowed, whatever its status.
func (s *ApplicationService) Create(ctx context.Context, applicantID uint, in ApplyInput) (*models.Application, error) {
	exists, err := s.store.Applications().Exists(ctx, applicantID, in.ProjectID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "application", err)
	}
	if exists {
		return nil, errs.NewConflictError(msgApplicationExists)
	}

	project, err := s.store.Projects().FindByID(ctx, in.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewBadRequestError(msgProjectDoesNotExist)
		}
		return nil, errs.NewDatabaseError("find", "project", err)
	}

	application := &models.Application{
		ApplicantID: applicantID,
		ProjectID:   project.ID,
		Message:     in.Message,
		Status:      models.StatusPending,
	}
	if err := s.store.Applications().Add(ctx, application); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errs.NewConflictError(msgApplicationExists)
		}
		return nil, errs.NewDatabaseError("create", "application", err)
	}

	event := ApplicationEvent{
		ApplicationID: application.ID,
		ProjectID:     project.ID,
		ProjectName:   project.Name,
		ApplicantID:   applicantID,
		OwnerID:       project.CreatorUserID,
		Status:        application.Status,
		Message:       application.Message,
	}
	if project.User != nil {
		event.OwnerEmail = project.User.Email
	}
	s.notifier.ApplicationCreated(ctx, event)

	return application, nil
}

// Process sets the status of an application to the owner's decision. The
// current status is not checked, so a decision can be overwritten.
func (s *ApplicationService) Process(ctx context.Context, ownerID uint, in ProcessInput) error {
	if !in.Action.IsDecision() {
		return errs.NewBadRequestErrorWithField(msgWrongAction, "action", "action must be 2 (accept) or 3 (reject)")
	}

	application, err := s.store.Applications().FindByID(ctx, in.ApplicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewNotFoundError(msgApplicationNotFound)
		}
		return errs.NewDatabaseError("find", "application", err)
	}
	if application.Project == nil || application.Project.CreatorUserID != ownerID {
		return errs.NewForbiddenError(msgNotProjectOwner)
	}

	if err := s.store.Applications().UpdateStatus(ctx, application.ID, in.Action); err != nil {
		return errs.NewDatabaseError("update", "application", err)
	}

	event := ApplicationEvent{
		ApplicationID: application.ID,
		ProjectID:     application.ProjectID,
		ProjectName:   application.Project.Name,
		ApplicantID:   application.ApplicantID,
		OwnerID:       ownerID,
		Status:        in.Action,
	}
	if application.Applicant != nil {
		event.ApplicantEmail = application.Applicant.Email
	}
	s.notifier.ApplicationProcessed(ctx, event)

	return nil
}

// Sent lists the applications the user filed, newest first.
func (s *ApplicationService) Sent(ctx context.Context, applicantID uint) ([]ApplicationView, error) {
	applications, err := s.store.Applications().FindByApplicant(ctx, applicantID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "applications", err)
	}
	return applicationViews(applications), nil
}

// Incoming lists the applications to projects the user created, newest first.
func (s *ApplicationService) Incoming(ctx context.Context, ownerID uint) ([]ApplicationView, error) {
	applications, err := s.store.Applications().FindIncoming(ctx, ownerID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "applications", err)
	}
	return applicationViews(applications), nil
}

func applicationViews(applications []models.Application) []ApplicationView {
	views := make([]ApplicationView, 0, len(applications))
	for _, a := range applications {
		views = append(views, newApplicationView(a))
	}
	return views
}
