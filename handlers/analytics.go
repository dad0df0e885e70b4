package handlers

import (
	"math"
	"net/http"

	"github.com/andrewpaige1/learning-tracker/access"
	"github.com/andrewpaige1/learning-tracker/models"
	"github.com/andrewpaige1/learning-tracker/utils"
	"gorm.io/gorm"
)

const recentModuleCount = 5

type analytics struct {
	TotalCourses          int64            `json:"totalCourses"`
	TotalModules          int              `json:"totalModules"`
	Modules               models.Progress  `json:"modules"`
	TotalFlashcards       int64            `json:"totalFlashcards"`
	AIGeneratedFlashcards int64            `json:"aiGeneratedFlashcards"`
	TotalEstimatedHours   float64          `json:"totalEstimatedHours"`
	CompletedHours        float64          `json:"completedHours"`
	OverallProgress       int              `json:"overallProgress"`
	RecentModules         []moduleListItem `json:"recentModules"`
}

// summarize expects modules ordered by most recently updated first.
func summarize(modules []models.Module) analytics {
	var a analytics
	statuses := make([]models.ModuleStatus, len(modules))
	for i, m := range modules {
		statuses[i] = m.Status
		a.TotalEstimatedHours += m.EstimatedHours
		if m.Status == models.StatusCompleted {
			a.CompletedHours += m.EstimatedHours
		}
	}
	a.TotalModules = len(modules)
	a.Modules = models.ProgressOf(statuses)
	if a.TotalModules > 0 {
		a.OverallProgress = int(math.Round(float64(a.Modules.Completed) / float64(a.TotalModules) * 100))
	}

	recent := modules
	if len(recent) > recentModuleCount {
		recent = recent[:recentModuleCount]
	}
	a.RecentModules = make([]moduleListItem, len(recent))
	for i, m := range recent {
		a.RecentModules[i] = moduleListItem{Module: m, Course: summarizeCourse(m.Course)}
	}
	return a
}

// GET /api/analytics
func (db *DBHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	var modules []models.Module
	err := db.WithContext(ctx).
		Joins("JOIN courses ON courses.id = modules.course_id").
		Where("courses.user_id = ?", userID).
		Preload("Course", selectCourseSummary).
		Order("modules.updated_at DESC").
		Find(&modules).Error
	if err != nil {
		fail(w, r, "GetAnalytics", access.KindModule, err)
		return
	}

	a := summarize(modules)

	if err := db.WithContext(ctx).Model(&models.Course{}).Where("user_id = ?", userID).Count(&a.TotalCourses).Error; err != nil {
		fail(w, r, "GetAnalytics", access.KindCourse, err)
		return
	}

	cards := db.WithContext(ctx).Model(&models.Flashcard{}).
		Joins("JOIN modules ON modules.id = flashcards.module_id").
		Joins("JOIN courses ON courses.id = modules.course_id").
		Where("courses.user_id = ?", userID)
	if err := cards.Session(&gorm.Session{}).Count(&a.TotalFlashcards).Error; err != nil {
		fail(w, r, "GetAnalytics", access.KindFlashcard, err)
		return
	}
	if err := cards.Session(&gorm.Session{}).Where("flashcards.is_ai_generated = ?", true).Count(&a.AIGeneratedFlashcards).Error; err != nil {
		fail(w, r, "GetAnalytics", access.KindFlashcard, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, a)
}
