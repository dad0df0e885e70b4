package validation

import "strings"

// Courses

type CreateCourseRequest struct {
	Title               string   `json:"title" validate:"required,max=200"`
	Description         *string  `json:"description" validate:"omitempty,max=1000"`
	TotalEstimatedHours *float64 `json:"totalEstimatedHours" validate:"omitempty,gte=0"`
	Color               *string  `json:"color" validate:"omitempty,colorhex"`
}

type UpdateCourseRequest struct {
	Title               *string  `json:"title" validate:"omitempty,min=1,max=200"`
	Description         *string  `json:"description" validate:"omitempty,max=1000"`
	TotalEstimatedHours *float64 `json:"totalEstimatedHours" validate:"omitempty,gte=0"`
	Color               *string  `json:"color" validate:"omitempty,colorhex"`
}

// Modules

type CreateModuleRequest struct {
	CourseID       string   `json:"courseId" validate:"required"`
	Title          string   `json:"title" validate:"required,max=200"`
	Status         *string  `json:"status" validate:"omitempty,oneof=PLANNED IN_PROGRESS COMPLETED"`
	Priority       *string  `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	EstimatedHours *float64 `json:"estimatedHours" validate:"required,gte=0"`
	ActualHours    *float64 `json:"actualHours" validate:"omitempty,gte=0"`
	Notes          *string  `json:"notes" validate:"omitempty,max=5000"`
	DueDate        *string  `json:"dueDate" validate:"omitempty,isodatetime"`
}

type UpdateModuleRequest struct {
	Title          *string        `json:"title" validate:"omitempty,min=1,max=200"`
	Status         *string        `json:"status" validate:"omitempty,oneof=PLANNED IN_PROGRESS COMPLETED"`
	Priority       *string        `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	EstimatedHours *float64       `json:"estimatedHours" validate:"omitempty,gte=0"`
	ActualHours    *float64       `json:"actualHours" validate:"omitempty,gte=0"`
	Notes          *string        `json:"notes" validate:"omitempty,max=5000"`
	DueDate        NullableString `json:"dueDate" validate:"omitempty,isodatetime"`
	CompletedAt    NullableString `json:"completedAt" validate:"omitempty,isodatetime"`
}

// Flashcards

type CreateFlashcardRequest struct {
	ModuleID   string  `json:"moduleId" validate:"required"`
	Question   string  `json:"question" validate:"required,max=1000"`
	Answer     string  `json:"answer" validate:"required,max=2000"`
	Difficulty *string `json:"difficulty" validate:"omitempty,oneof=EASY MEDIUM HARD"`
}

type UpdateFlashcardRequest struct {
	Question   *string `json:"question" validate:"omitempty,min=1,max=1000"`
	Answer     *string `json:"answer" validate:"omitempty,min=1,max=2000"`
	Difficulty *string `json:"difficulty" validate:"omitempty,oneof=EASY MEDIUM HARD"`
}

const DefaultGenerateCount = 5

type GenerateFlashcardsRequest struct {
	ModuleID string `json:"moduleId" validate:"required"`
	Count    *int   `json:"count" validate:"omitempty,min=1,max=20"`
}

// CountOrDefault returns the requested card count, or 5 when omitted.
func (r GenerateFlashcardsRequest) CountOrDefault() int {
	if r.Count == nil {
		return DefaultGenerateCount
	}
	return *r.Count
}

// Auth

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,strongpassword"`
}

// Normalize trims the name and lower-cases the email.
func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}
