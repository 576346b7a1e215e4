package services

import (
	"context"
	"fmt"

	"github.com/edumorph/backend/internal/models"
)

// LessonListRepository defines methods for lesson list data access
type LessonListRepository interface {
	// GetAll retrieves lessons filtered by grade level and, optionally, subject
	GetAll(ctx context.Context, gradeLevel int, subject string) ([]models.LessonListItem, error)
}

// Simplifier rewrites text at a target reading level
type Simplifier interface {
	Simplify(ctx context.Context, text string, level int) (string, error)
}

type lessonService struct {
	lessonRepo LessonListRepository
	translator Translator
	simplifier Simplifier
}

// NewLessonService creates a new lesson service
func NewLessonService(lessonRepo LessonListRepository, translator Translator, simplifier Simplifier) *lessonService {
	return &lessonService{
		lessonRepo: lessonRepo,
		translator: translator,
		simplifier: simplifier,
	}
}

// GetLessons retrieves the lesson list for a grade level and optional subject
func (s *lessonService) GetLessons(ctx context.Context, gradeLevel int, subject string) ([]models.LessonListItem, error) {
	if gradeLevel < 1 {
		gradeLevel = 5
	}

	lessons, err := s.lessonRepo.GetAll(ctx, gradeLevel, subject)
	if err != nil {
		return nil, fmt.Errorf("failed to get lessons: %w", err)
	}

	return lessons, nil
}

// Translate converts arbitrary text into the target language. Unlike the
// translation stage inside the adaptation pipeline, a failure here is the
// whole operation failing and is propagated to the caller.
func (s *lessonService) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	if text == "" {
		return "", fmt.Errorf("text is required")
	}
	if targetLanguage == "" {
		return "", fmt.Errorf("target language is required")
	}

	translated, err := s.translator.Translate(ctx, text, targetLanguage)
	if err != nil {
		return "", fmt.Errorf("failed to translate text: %w", err)
	}

	return translated, nil
}

// Simplify rewrites text at the given reading level. Levels outside 1-12
// fall back to the platform default grade.
func (s *lessonService) Simplify(ctx context.Context, text string, level int) (string, error) {
	if text == "" {
		return "", fmt.Errorf("text is required")
	}
	if level < 1 || level > 12 {
		level = 5
	}

	simplified, err := s.simplifier.Simplify(ctx, text, level)
	if err != nil {
		return "", fmt.Errorf("failed to simplify text: %w", err)
	}

	return simplified, nil
}
