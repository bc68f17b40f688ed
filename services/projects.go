package services

import (
	"context"
	"errors"
	"time"

	"github.com/rpupo63/student-projects-backend/database"
	"github.com/rpupo63/student-projects-backend/errs"
	"github.com/rpupo63/student-projects-backend/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	msgNotProjectCreator = "You are not project creator"
	msgProjectNotFound   = "Project not found"

	// recommendationFallbackLimit caps the category-overlap fallback list.
	recommendationFallbackLimit = 20
)

// ProjectView is a project as shown to users: the creator id is replaced by
// the creator's name.
type ProjectView struct {
	ID                uint              `json:"id"`
	Name              string            `json:"name"`
	Description       string            `json:"description"`
	Contacts          string            `json:"contacts"`
	StartDate         *time.Time        `json:"startDate,omitempty"`
	EndDate           *time.Time        `json:"endDate,omitempty"`
	Deadline          *time.Time        `json:"deadline,omitempty"`
	EmploymentType    string            `json:"employmentType"`
	Territory         string            `json:"territory"`
	Skills            []string          `json:"skills"`
	Campus            string            `json:"campus"`
	ParticipantsCount int               `json:"participantsCount"`
	ProjectType       string            `json:"projectType"`
	WeeklyHours       int               `json:"weeklyHours"`
	IsClosed          bool              `json:"isClosed"`
	CreatedAt         time.Time         `json:"createdDate"`
	UpdatedAt         time.Time         `json:"updatedDate"`
	Categories        []models.Category `json:"categories"`
	UserFullName      string            `json:"userFullName"`
	IsOwner           *bool             `json:"isOwner,omitempty"`
}

func newProjectView(p models.Project) ProjectView {
	view := ProjectView{
		ID:                p.ID,
		Name:              p.Name,
		Description:       p.Description,
		Contacts:          p.Contacts,
		StartDate:         p.StartDate,
		EndDate:           p.EndDate,
		Deadline:          p.Deadline,
		EmploymentType:    p.EmploymentType,
		Territory:         p.Territory,
		Skills:            []string(p.Skills),
		Campus:            p.Campus,
		ParticipantsCount: p.ParticipantsCount,
		ProjectType:       p.ProjectType,
		WeeklyHours:       p.WeeklyHours,
		IsClosed:          p.IsClosed,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
		Categories:        p.Categories,
	}
	if view.Skills == nil {
		view.Skills = []string{}
	}
	if view.Categories == nil {
		view.Categories = []models.Category{}
	}
	if p.User != nil {
		view.UserFullName = p.User.FullName
	}
	return view
}

func projectViews(projects []models.Project) []ProjectView {
	views := make([]ProjectView, 0, len(projects))
	for _, p := range projects {
		views = append(views, newProjectView(p))
	}
	return views
}

// ProjectPage is one page of a listing plus the number of matches overall.
type ProjectPage struct {
	Projects []ProjectView `json:"projects"`
	Count    int64         `json:"count"`
}

// ListParams pages a listing. Zero Skip or Take leaves that bound off.
type ListParams struct {
	Search string
	Skip   int
	Take   int
}

type ProjectInput struct {
	Name              string     `json:"name" validate:"required,max=200"`
	Description       string     `json:"description" validate:"required"`
	Contacts          string     `json:"contacts" validate:"max=500"`
	StartDate         *time.Time `json:"startDate"`
	EndDate           *time.Time `json:"endDate"`
	Deadline          *time.Time `json:"deadline"`
	EmploymentType    string     `json:"employmentType"`
	Territory         string     `json:"territory"`
	Skills            []string   `json:"skills" validate:"omitempty,dive,required,max=100"`
	Campus            string     `json:"campus"`
	ParticipantsCount int        `json:"participantsCount" validate:"gte=0"`
	ProjectType       string     `json:"projectType"`
	WeeklyHours       int        `json:"weeklyHours" validate:"gte=0,lte=168"`
	CategorySelection
}

// ProjectPatch edits a project. Nil fields are left as they are; categories
// are replaced only when either category list is present.
type ProjectPatch struct {
	ProjectID         uint       `json:"projectId" validate:"required"`
	Name              *string    `json:"name" validate:"omitempty,min=1,max=200"`
	Description       *string    `json:"description" validate:"omitempty,min=1"`
	Contacts          *string    `json:"contacts" validate:"omitempty,max=500"`
	StartDate         *time.Time `json:"startDate"`
	EndDate           *time.Time `json:"endDate"`
	Deadline          *time.Time `json:"deadline"`
	EmploymentType    *string    `json:"employmentType"`
	Territory         *string    `json:"territory"`
	Skills            []string   `json:"skills" validate:"omitempty,dive,required,max=100"`
	Campus            *string    `json:"campus"`
	ParticipantsCount *int       `json:"participantsCount" validate:"omitempty,gte=0"`
	ProjectType       *string    `json:"projectType"`
	WeeklyHours       *int       `json:"weeklyHours" validate:"omitempty,gte=0,lte=168"`
	IsClosed          *bool      `json:"isClosed"`
	CategorySelection
}

func (p ProjectPatch) apply(project *models.Project) {
	setIf(&project.Name, p.Name)
	setIf(&project.Description, p.Description)
	setIf(&project.Contacts, p.Contacts)
	setIf(&project.EmploymentType, p.EmploymentType)
	setIf(&project.Territory, p.Territory)
	setIf(&project.Campus, p.Campus)
	setIf(&project.ProjectType, p.ProjectType)
	setIf(&project.ParticipantsCount, p.ParticipantsCount)
	setIf(&project.WeeklyHours, p.WeeklyHours)
	setIf(&project.IsClosed, p.IsClosed)
	if p.StartDate != nil {
		project.StartDate = p.StartDate
	}
	if p.EndDate != nil {
		project.EndDate = p.EndDate
	}
	if p.Deadline != nil {
		project.Deadline = p.Deadline
	}
	if p.Skills != nil {
		project.Skills = datatypes.JSONSlice[string](p.Skills)
	}
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

type ProjectService struct {
	store     Store
	reference *ReferenceCache
	choices   models.ProjectChoices
}

func NewProjectService(store Store, reference *ReferenceCache) *ProjectService {
	return &ProjectService{
		store:     store,
		reference: reference,
		choices:   models.DefaultProjectChoices,
	}
}

// List returns open projects created by other users matching the search term.
func (s *ProjectService) List(ctx context.Context, viewerID uint, params ListParams) (*ProjectPage, error) {
	projects, count, err := s.store.Projects().FindOpen(ctx, database.ProjectQuery{
		ViewerID: viewerID,
		Search:   params.Search,
		Skip:     params.Skip,
		Take:     params.Take,
	})
	if err != nil {
		return nil, errs.NewDatabaseError("find", "projects", err)
	}
	return &ProjectPage{Projects: projectViews(projects), Count: count}, nil
}

// Mine returns the projects the user created, closed ones included.
func (s *ProjectService) Mine(ctx context.Context, userID uint, params ListParams) (*ProjectPage, error) {
	projects, count, err := s.store.Projects().FindByCreator(ctx, userID, params.Skip, params.Take)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "projects", err)
	}
	return &ProjectPage{Projects: projectViews(projects), Count: count}, nil
}

// ByTag returns every project carrying a category labelled tag.
func (s *ProjectService) ByTag(ctx context.Context, tag string) ([]ProjectView, error) {
	projects, err := s.store.Projects().FindAll(ctx)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "projects", err)
	}

	var tagged []models.Project
	for _, p := range projects {
		if p.HasCategoryLabel(tag) {
			tagged = append(tagged, p)
		}
	}
	return projectViews(tagged), nil
}

func (s *ProjectService) Get(ctx context.Context, viewerID, projectID uint) (*ProjectView, error) {
	project, err := s.store.Projects().FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFoundError(msgProjectNotFound)
		}
		return nil, errs.NewDatabaseError("find", "project", err)
	}

	view := newProjectView(*project)
	isOwner := project.CreatorUserID == viewerID
	view.IsOwner = &isOwner
	return &view, nil
}

// Recommendations returns the open projects recommended to the user. Without
// stored recommendations it falls back to open projects of other users that
// share a category with the user.
func (s *ProjectService) Recommendations(ctx context.Context, userID uint) ([]ProjectView, error) {
	projects, err := s.store.Recommendations().FindOpenProjects(ctx, userID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "recommendations", err)
	}
	if len(projects) > 0 {
		return projectViews(projects), nil
	}

	user, err := s.store.Users().FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []ProjectView{}, nil
		}
		return nil, errs.NewDatabaseError("find", "user", err)
	}

	categoryIDs := make([]uint, 0, len(user.Categories))
	for _, c := range user.Categories {
		categoryIDs = append(categoryIDs, c.ID)
	}
	projects, err = s.store.Projects().FindOpenSharingCategories(ctx, userID, categoryIDs, recommendationFallbackLimit)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "projects", err)
	}
	return projectViews(projects), nil
}

// Create stores a new open project owned by creatorID. Category creation and
// the project insert share a transaction.
func (s *ProjectService) Create(ctx context.Context, creatorID uint, in ProjectInput) (*models.Project, error) {
	project := &models.Project{
		CreatorUserID:     creatorID,
		Name:              in.Name,
		Description:       in.Description,
		Contacts:          in.Contacts,
		StartDate:         in.StartDate,
		EndDate:           in.EndDate,
		Deadline:          in.Deadline,
		EmploymentType:    in.EmploymentType,
		Territory:         in.Territory,
		Skills:            datatypes.JSONSlice[string](in.Skills),
		Campus:            in.Campus,
		ParticipantsCount: in.ParticipantsCount,
		ProjectType:       in.ProjectType,
		WeeklyHours:       in.WeeklyHours,
		IsClosed:          false,
	}
	if project.Skills == nil {
		project.Skills = datatypes.JSONSlice[string]{}
	}

	err := s.store.Transaction(ctx, func(tx Store) error {
		categories, err := ReconcileCategories(ctx, tx.Categories(), in.CategorySelection)
		if err != nil {
			return err
		}
		project.Categories = categories

		if err := tx.Projects().Add(ctx, project); err != nil {
			return errs.NewDatabaseError("create", "project", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

// Edit applies a patch to a project the editor created.
func (s *ProjectService) Edit(ctx context.Context, editorID uint, patch ProjectPatch) error {
	return s.store.Transaction(ctx, func(tx Store) error {
		project, err := tx.Projects().FindByID(ctx, patch.ProjectID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewBadRequestError(msgProjectDoesNotExist)
			}
			return errs.NewDatabaseError("find", "project", err)
		}
		if project.CreatorUserID != editorID {
			return errs.NewForbiddenError(msgNotProjectCreator)
		}

		patch.apply(project)
		if err := tx.Projects().Update(ctx, project); err != nil {
			return errs.NewDatabaseError("update", "project", err)
		}

		if !patch.CategorySelection.Supplied() {
			return nil
		}
		categories, err := ReconcileCategories(ctx, tx.Categories(), patch.CategorySelection)
		if err != nil {
			return err
		}
		if err := tx.Projects().ReplaceCategories(ctx, project.ID, categories); err != nil {
			return errs.NewDatabaseError("update", "project categories", err)
		}
		return nil
	})
}

func (s *ProjectService) Choices() models.ProjectChoices {
	return s.choices
}

// Categories returns the reference (non-custom) categories.
func (s *ProjectService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.reference.ReferenceCategories(ctx)
}
