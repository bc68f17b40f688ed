package services

import (
	"context"

	"github.com/rpupo63/student-projects-backend/errs"
	"github.com/rpupo63/student-projects-backend/models"
)

// CategorySelection is the category part of a request: reference category ids
// plus free-text labels.
type CategorySelection struct {
	Categories       []uint   `json:"categories"`
	CustomCategories []string `json:"customCategories" validate:"omitempty,dive,required,max=100"`
}

// Supplied reports whether the request carried either list.
func (s CategorySelection) Supplied() bool {
	return s.Categories != nil || s.CustomCategories != nil
}

// ReconcileCategories resolves a selection into the categories to attach.
// Labels with no existing custom category are created as custom categories,
// once per distinct label. The result lists the categories found by id, then
// the existing custom categories, then the created ones. A label that matches
// a category also selected by id is still attached twice.
func ReconcileCategories(ctx context.Context, repo CategoryRepo, sel CategorySelection) ([]models.Category, error) {
	byID, err := repo.FindByIDs(ctx, sel.Categories)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "categories", err)
	}

	labels := uniqueLabels(sel.CustomCategories)
	existing, err := repo.FindCustomByLabels(ctx, labels)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "custom categories", err)
	}

	known := make(map[string]bool, len(existing))
	for _, c := range existing {
		known[c.Label] = true
	}

	var missing []models.Category
	for _, label := range labels {
		if !known[label] {
			missing = append(missing, models.Category{Label: label, IsCustom: true})
		}
	}

	created, err := repo.AddAll(ctx, missing)
	if err != nil {
		return nil, errs.NewDatabaseError("create", "custom categories", err)
	}

	result := make([]models.Category, 0, len(byID)+len(existing)+len(created))
	result = append(result, byID...)
	result = append(result, existing...)
	result = append(result, created...)
	return result, nil
}

// uniqueLabels drops empty and repeated labels, keeping first-seen order.
func uniqueLabels(labels []string) []string {
	seen := make(map[string]bool, len(labels))
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}
