// Package access resolves who owns a course, module or flashcard by walking
// the ownership chain up to the user.
package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/andrewpaige1/learning-tracker/models"
	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
)

type Kind string

const (
	KindCourse    Kind = "Course"
	KindModule    Kind = "Module"
	KindFlashcard Kind = "Flashcard"
)

type Resolver struct {
	db *gorm.DB
}

func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

// Owner returns the id of the user at the top of id's ownership chain.
func (r *Resolver) Owner(ctx context.Context, kind Kind, id string) (string, error) {
	if id == "" {
		return "", ErrNotFound
	}

	q := r.db.WithContext(ctx)
	switch kind {
	case KindCourse:
		q = q.Model(&models.Course{}).
			Where("courses.id = ?", id)
	case KindModule:
		q = q.Model(&models.Module{}).
			Joins("JOIN courses ON courses.id = modules.course_id").
			Where("modules.id = ?", id)
	case KindFlashcard:
		q = q.Model(&models.Flashcard{}).
			Joins("JOIN modules ON modules.id = flashcards.module_id").
			Joins("JOIN courses ON courses.id = modules.course_id").
			Where("flashcards.id = ?", id)
	default:
		return "", fmt.Errorf("access: unknown kind %q", kind)
	}

	var owners []string
	if err := q.Limit(1).Pluck("courses.user_id", &owners).Error; err != nil {
		return "", fmt.Errorf("resolve %s owner: %w", kind, err)
	}
	if len(owners) == 0 {
		return "", ErrNotFound
	}
	return owners[0], nil
}

// Authorize returns ErrNotFound when the entity does not exist and
// ErrForbidden when it belongs to someone other than userID.
func (r *Resolver) Authorize(ctx context.Context, kind Kind, id, userID string) error {
	owner, err := r.Owner(ctx, kind, id)
	if err != nil {
		return err
	}
	if owner != userID {
		return ErrForbidden
	}
	return nil
}

// AuthorizeParent is used before creating a child. A missing parent is
// reported as ErrForbidden so callers cannot probe for other users' ids.
func (r *Resolver) AuthorizeParent(ctx context.Context, kind Kind, id, userID string) error {
	err := r.Authorize(ctx, kind, id, userID)
	if errors.Is(err, ErrNotFound) {
		return ErrForbidden
	}
	return err
}
