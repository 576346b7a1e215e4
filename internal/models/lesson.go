package models

import (
	"fmt"
	"time"
)

// Lesson represents a lesson with its source-language content
type Lesson struct {
	ID              int       `json:"id"`
	Title           string    `json:"title"`
	Subject         string    `json:"subject"`
	GradeLevel      int       `json:"gradeLevel"`
	DifficultyLevel string    `json:"difficultyLevel"`
	OriginalContent string    `json:"originalContent,omitempty"`
	CreatedAt       time.Time `json:"createdAt,omitempty"`
	UpdatedAt       time.Time `json:"updatedAt,omitempty"`
}

// LessonListItem represents a lesson in list responses (no content body)
type LessonListItem struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	Subject    string `json:"subject"`
	GradeLevel int    `json:"gradeLevel"`
}

// CacheKey identifies one adapted variant of a lesson.
// Only language, region and grade partition the cache; device metadata and
// learning style influence provider hints but never the key.
type CacheKey struct {
	Language string
	Region   string
	Grade    int
}

// String returns the canonical form of the key, e.g. "es:Texas:g6"
func (k CacheKey) String() string {
	return fmt.Sprintf("%s:%s:g%d", k.Language, k.Region, k.Grade)
}

// AdaptedEntry is a cached adaptation of a lesson for one cache key
type AdaptedEntry struct {
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// AdaptedLesson is the response of the adaptation pipeline
type AdaptedLesson struct {
	LessonID   int                    `json:"lessonId"`
	Adapted    string                 `json:"adapted"`
	Cached     bool                   `json:"cached"`
	Translated bool                   `json:"translated"`
	ML         *PersonalizationResult `json:"ml,omitempty"`
}
