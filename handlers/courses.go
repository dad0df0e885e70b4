package handlers

import (
	"net/http"

	"github.com/andrewpaige1/learning-tracker/access"
	"github.com/andrewpaige1/learning-tracker/models"
	"github.com/andrewpaige1/learning-tracker/utils"
	"github.com/andrewpaige1/learning-tracker/validation"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type courseListItem struct {
	models.Course
	Progress models.Progress `json:"progress"`
	Count    struct {
		Modules int `json:"modules"`
	} `json:"_count"`
}

type courseModule struct {
	models.Module
	Count *moduleCounts `json:"_count"`
}

type courseDetail struct {
	models.Course
	Modules []courseModule `json:"modules"`
}

// GET /api/courses
func (db *DBHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var courses []models.Course
	err := db.WithContext(r.Context()).
		Where("user_id = ?", userID).
		Preload("Modules", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "course_id", "status")
		}).
		Order("created_at DESC").
		Find(&courses).Error
	if err != nil {
		fail(w, r, "ListCourses", access.KindCourse, err)
		return
	}

	items := make([]courseListItem, len(courses))
	for i, c := range courses {
		statuses := make([]models.ModuleStatus, len(c.Modules))
		for j, m := range c.Modules {
			statuses[j] = m.Status
		}
		c.Modules = nil
		items[i] = courseListItem{Course: c, Progress: models.ProgressOf(statuses)}
		items[i].Count.Modules = len(statuses)
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"courses": items,
		"total":   len(items),
	})
}

// GET /api/courses/{id}
func (db *DBHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	courseID := r.PathValue("id")

	if err := db.Access.Authorize(r.Context(), access.KindCourse, courseID, userID); err != nil {
		fail(w, r, "GetCourse", access.KindCourse, err)
		return
	}

	var course models.Course
	err := db.WithContext(r.Context()).
		Preload("Modules", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at DESC")
		}).
		Where("id = ?", courseID).
		First(&course).Error
	if err != nil {
		fail(w, r, "GetCourse", access.KindCourse, err)
		return
	}

	ids := make([]string, len(course.Modules))
	for i, m := range course.Modules {
		ids[i] = m.ID
	}
	counts, err := countByModule(r.Context(), db.DB, ids)
	if err != nil {
		fail(w, r, "GetCourse", access.KindCourse, err)
		return
	}

	detail := courseDetail{Modules: make([]courseModule, len(course.Modules))}
	for i, m := range course.Modules {
		detail.Modules[i] = courseModule{Module: m, Count: counts[m.ID]}
	}
	course.Modules = nil
	detail.Course = course

	utils.WriteJSON(w, http.StatusOK, detail)
}

// POST /api/courses
func (db *DBHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req validation.CreateCourseRequest
	if err := decode(w, r, &req); err != nil {
		fail(w, r, "CreateCourse", access.KindCourse, err)
		return
	}

	course := models.Course{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
	}
	if req.TotalEstimatedHours != nil {
		course.TotalEstimatedHours = *req.TotalEstimatedHours
	}
	if req.Color != nil {
		course.Color = *req.Color
	}

	if err := db.WithContext(r.Context()).Create(&course).Error; err != nil {
		fail(w, r, "CreateCourse", access.KindCourse, err)
		return
	}

	log.Info().Str("course_id", course.ID).Str("user_id", userID).Msg("created course")
	utils.WriteJSON(w, http.StatusCreated, course)
}

// PUT /api/courses/{id}
func (db *DBHandler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	courseID := r.PathValue("id")

	if err := db.Access.Authorize(r.Context(), access.KindCourse, courseID, userID); err != nil {
		fail(w, r, "UpdateCourse", access.KindCourse, err)
		return
	}

	var req validation.UpdateCourseRequest
	if err := decode(w, r, &req); err != nil {
		fail(w, r, "UpdateCourse", access.KindCourse, err)
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.TotalEstimatedHours != nil {
		updates["total_estimated_hours"] = *req.TotalEstimatedHours
	}
	if req.Color != nil {
		updates["color"] = *req.Color
	}

	var course models.Course
	err := db.WithContext(r.Context()).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&models.Course{}).Where("id = ?", courseID).Updates(updates).Error; err != nil {
				return err
			}
		}
		return tx.Where("id = ?", courseID).First(&course).Error
	})
	if err != nil {
		fail(w, r, "UpdateCourse", access.KindCourse, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, course)
}

// DELETE /api/courses/{id}
func (db *DBHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	courseID := r.PathValue("id")

	if err := db.Access.Authorize(r.Context(), access.KindCourse, courseID, userID); err != nil {
		fail(w, r, "DeleteCourse", access.KindCourse, err)
		return
	}

	err := db.WithContext(r.Context()).Transaction(func(tx *gorm.DB) error {
		moduleIDs := tx.Model(&models.Module{}).Select("id").Where("course_id = ?", courseID)
		if err := tx.Where("module_id IN (?)", moduleIDs).Delete(&models.Flashcard{}).Error; err != nil {
			return err
		}
		if err := tx.Where("module_id IN (?)", moduleIDs).Delete(&models.StudySession{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", courseID).Delete(&models.Module{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", courseID).Delete(&models.Course{}).Error
	})
	if err != nil {
		fail(w, r, "DeleteCourse", access.KindCourse, err)
		return
	}

	log.Info().Str("course_id", courseID).Str("user_id", userID).Msg("deleted course")
	utils.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Course deleted successfully",
		"id":      courseID,
	})
}
