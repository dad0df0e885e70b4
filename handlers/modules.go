package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/andrewpaige1/learning-tracker/access"
	"github.com/andrewpaige1/learning-tracker/models"
	"github.com/andrewpaige1/learning-tracker/utils"
	"github.com/andrewpaige1/learning-tracker/validation"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const recentStudySessions = 10

type courseSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Color string `json:"color"`
}

func summarizeCourse(c *models.Course) *courseSummary {
	if c == nil {
		return nil
	}
	return &courseSummary{ID: c.ID, Title: c.Title, Color: c.Color}
}

type moduleListItem struct {
	models.Module
	Course *courseSummary `json:"course"`
	Count  *moduleCounts  `json:"_count"`
}

type moduleDetail struct {
	models.Module
	Course        *courseSummary        `json:"course"`
	Flashcards    []models.Flashcard    `json:"flashcards"`
	StudySessions []models.StudySession `json:"studySessions"`
}

func selectCourseSummary(tx *gorm.DB) *gorm.DB {
	return tx.Select("id", "title", "color")
}

// GET /api/modules?courseId=&status=
func (db *DBHandler) ListModules(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	q := db.WithContext(r.Context()).
		Joins("JOIN courses ON courses.id = modules.course_id").
		Where("courses.user_id = ?", userID)

	if courseID := r.URL.Query().Get("courseId"); courseID != "" {
		q = q.Where("modules.course_id = ?", courseID)
	}
	if status := r.URL.Query().Get("status"); status != "" {
		switch models.ModuleStatus(status) {
		case models.StatusPlanned, models.StatusInProgress, models.StatusCompleted:
			q = q.Where("modules.status = ?", status)
		default:
			fail(w, r, "ListModules", access.KindModule, validation.Errors{{
				Field:   "status",
				Message: "status must be one of: PLANNED, IN_PROGRESS, COMPLETED",
			}})
			return
		}
	}

	var modules []models.Module
	err := q.Preload("Course", selectCourseSummary).
		Order("modules.created_at DESC").
		Find(&modules).Error
	if err != nil {
		fail(w, r, "ListModules", access.KindModule, err)
		return
	}

	ids := make([]string, len(modules))
	for i, m := range modules {
		ids[i] = m.ID
	}
	counts, err := countByModule(r.Context(), db.DB, ids)
	if err != nil {
		fail(w, r, "ListModules", access.KindModule, err)
		return
	}

	items := make([]moduleListItem, len(modules))
	for i, m := range modules {
		items[i] = moduleListItem{Module: m, Course: summarizeCourse(m.Course), Count: counts[m.ID]}
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"modules": items,
		"total":   len(items),
	})
}

// GET /api/modules/{id}
func (db *DBHandler) GetModule(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	moduleID := r.PathValue("id")

	if err := db.Access.Authorize(r.Context(), access.KindModule, moduleID, userID); err != nil {
		fail(w, r, "GetModule", access.KindModule, err)
		return
	}

	var module models.Module
	err := db.WithContext(r.Context()).
		Preload("Course", selectCourseSummary).
		Preload("Flashcards", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at DESC")
		}).
		Preload("StudySessions", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("started_at DESC").Limit(recentStudySessions)
		}).
		Where("id = ?", moduleID).
		First(&module).Error
	if err != nil {
		fail(w, r, "GetModule", access.KindModule, err)
		return
	}

	detail := moduleDetail{
		Course:        summarizeCourse(module.Course),
		Flashcards:    module.Flashcards,
		StudySessions: module.StudySessions,
	}
	if detail.Flashcards == nil {
		detail.Flashcards = []models.Flashcard{}
	}
	if detail.StudySessions == nil {
		detail.StudySessions = []models.StudySession{}
	}
	module.Course, module.Flashcards, module.StudySessions = nil, nil, nil
	detail.Module = module

	utils.WriteJSON(w, http.StatusOK, detail)
}

// POST /api/modules
func (db *DBHandler) CreateModule(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req validation.CreateModuleRequest
	if err := decode(w, r, &req); err != nil {
		fail(w, r, "CreateModule", access.KindModule, err)
		return
	}

	if err := db.Access.AuthorizeParent(r.Context(), access.KindCourse, req.CourseID, userID); err != nil {
		if errors.Is(err, access.ErrForbidden) {
			parentDenied(w, access.KindCourse)
			return
		}
		fail(w, r, "CreateModule", access.KindModule, err)
		return
	}

	module := models.Module{
		CourseID:       req.CourseID,
		Title:          req.Title,
		EstimatedHours: *req.EstimatedHours,
		ActualHours:    req.ActualHours,
		Notes:          req.Notes,
	}
	if req.Status != nil {
		module.Status = models.ModuleStatus(*req.Status)
	}
	if req.Priority != nil {
		module.Priority = models.Priority(*req.Priority)
	}
	if req.DueDate != nil {
		due, err := time.Parse(time.RFC3339, *req.DueDate)
		if err != nil {
			fail(w, r, "CreateModule", access.KindModule, validation.Errors{{Field: "dueDate", Message: "dueDate must be an ISO 8601 date-time"}})
			return
		}
		module.DueDate = &due
	}

	if err := db.WithContext(r.Context()).Create(&module).Error; err != nil {
		fail(w, r, "CreateModule", access.KindModule, err)
		return
	}

	var course models.Course
	if err := db.WithContext(r.Context()).Select("id", "title", "color").Where("id = ?", module.CourseID).First(&course).Error; err == nil {
		module.Course = &course
	}

	log.Info().Str("module_id", module.ID).Str("course_id", module.CourseID).Msg("created module")
	utils.WriteJSON(w, http.StatusCreated, moduleListItem{Module: module, Course: summarizeCourse(module.Course)})
}

// PUT /api/modules/{id}
func (db *DBHandler) UpdateModule(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	moduleID := r.PathValue("id")

	if err := db.Access.Authorize(r.Context(), access.KindModule, moduleID, userID); err != nil {
		fail(w, r, "UpdateModule", access.KindModule, err)
		return
	}

	var req validation.UpdateModuleRequest
	if err := decode(w, r, &req); err != nil {
		fail(w, r, "UpdateModule", access.KindModule, err)
		return
	}

	updates, err := moduleUpdates(req)
	if err != nil {
		fail(w, r, "UpdateModule", access.KindModule, err)
		return
	}

	var module models.Module
	err = db.WithContext(r.Context()).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&models.Module{}).Where("id = ?", moduleID).Updates(updates).Error; err != nil {
				return err
			}
		}
		return tx.Preload("Course", selectCourseSummary).Where("id = ?", moduleID).First(&module).Error
	})
	if err != nil {
		fail(w, r, "UpdateModule", access.KindModule, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, moduleListItem{Module: module, Course: summarizeCourse(module.Course)})
}

func moduleUpdates(req validation.UpdateModuleRequest) (map[string]interface{}, error) {
	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Priority != nil {
		updates["priority"] = *req.Priority
	}
	if req.EstimatedHours != nil {
		updates["estimated_hours"] = *req.EstimatedHours
	}
	if req.ActualHours != nil {
		updates["actual_hours"] = *req.ActualHours
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	dates := []struct {
		column string
		field  string
		value  validation.NullableString
	}{
		{"due_date", "dueDate", req.DueDate},
		{"completed_at", "completedAt", req.CompletedAt},
	}
	for _, d := range dates {
		if !d.value.Set {
			continue
		}
		t, err := d.value.Time()
		if err != nil {
			return nil, validation.Errors{{Field: d.field, Message: d.field + " must be an ISO 8601 date-time"}}
		}
		// nil clears the column
		updates[d.column] = t
	}
	return updates, nil
}

// DELETE /api/modules/{id}
func (db *DBHandler) DeleteModule(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	moduleID := r.PathValue("id")

	if err := db.Access.Authorize(r.Context(), access.KindModule, moduleID, userID); err != nil {
		fail(w, r, "DeleteModule", access.KindModule, err)
		return
	}

	err := db.WithContext(r.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("module_id = ?", moduleID).Delete(&models.Flashcard{}).Error; err != nil {
			return err
		}
		if err := tx.Where("module_id = ?", moduleID).Delete(&models.StudySession{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", moduleID).Delete(&models.Module{}).Error
	})
	if err != nil {
		fail(w, r, "DeleteModule", access.KindModule, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Module deleted successfully",
		"id":      moduleID,
	})
}
