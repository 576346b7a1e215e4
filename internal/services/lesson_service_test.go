package services

import (
	"context"
	"errors"
	"testing"

	"github.com/edumorph/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

// mockLessonListRepository is a mock implementation of LessonListRepository
type mockLessonListRepository struct {
	lessons   []models.LessonListItem
	err       error
	lastGrade int
}

func (m *mockLessonListRepository) GetAll(ctx context.Context, gradeLevel int, subject string) ([]models.LessonListItem, error) {
	m.lastGrade = gradeLevel
	if m.err != nil {
		return nil, m.err
	}
	return m.lessons, nil
}

// mockSimplifier is a mock implementation of Simplifier
type mockSimplifier struct {
	simplified string
	err        error
	lastLevel  int
}

func (m *mockSimplifier) Simplify(ctx context.Context, text string, level int) (string, error) {
	m.lastLevel = level
	if m.err != nil {
		return "", m.err
	}
	return m.simplified, nil
}

func TestLessonService_GetLessons(t *testing.T) {
	repo := &mockLessonListRepository{
		lessons: []models.LessonListItem{
			{ID: 1, Title: "Water Cycle", Subject: "science", GradeLevel: 6},
		},
	}
	svc := NewLessonService(repo, &mockTranslator{}, &mockSimplifier{})

	lessons, err := svc.GetLessons(context.Background(), 6, "science")

	assert.NoError(t, err)
	assert.Len(t, lessons, 1)
	assert.Equal(t, 6, repo.lastGrade)
}

func TestLessonService_GetLessons_DefaultGrade(t *testing.T) {
	repo := &mockLessonListRepository{}
	svc := NewLessonService(repo, &mockTranslator{}, &mockSimplifier{})

	_, err := svc.GetLessons(context.Background(), 0, "")

	assert.NoError(t, err)
	assert.Equal(t, 5, repo.lastGrade)
}

func TestLessonService_Translate(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		target        string
		translator    *mockTranslator
		expected      string
		expectedError bool
		errorContains string
	}{
		{
			name:       "success",
			text:       "hello",
			target:     "es",
			translator: &mockTranslator{translated: "hola"},
			expected:   "hola",
		},
		{
			name:          "empty text",
			text:          "",
			target:        "es",
			translator:    &mockTranslator{},
			expectedError: true,
			errorContains: "text is required",
		},
		{
			name:          "empty target language",
			text:          "hello",
			target:        "",
			translator:    &mockTranslator{},
			expectedError: true,
			errorContains: "target language is required",
		},
		{
			name:          "translator failure propagates",
			text:          "hello",
			target:        "es",
			translator:    &mockTranslator{err: errors.New("upstream unavailable")},
			expectedError: true,
			errorContains: "failed to translate text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewLessonService(&mockLessonListRepository{}, tt.translator, &mockSimplifier{})

			translated, err := svc.Translate(context.Background(), tt.text, tt.target)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, translated)
			}
		})
	}
}

func TestLessonService_Simplify(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		level         int
		simplifier    *mockSimplifier
		expected      string
		expectedLevel int
		expectedError bool
		errorContains string
	}{
		{
			name:          "success",
			text:          "The precipitation condenses",
			level:         3,
			simplifier:    &mockSimplifier{simplified: "Rain forms from clouds"},
			expected:      "Rain forms from clouds",
			expectedLevel: 3,
		},
		{
			name:          "level out of range falls back to default",
			text:          "The precipitation condenses",
			level:         0,
			simplifier:    &mockSimplifier{simplified: "Rain forms"},
			expected:      "Rain forms",
			expectedLevel: 5,
		},
		{
			name:          "empty text",
			text:          "",
			level:         3,
			simplifier:    &mockSimplifier{},
			expectedError: true,
			errorContains: "text is required",
		},
		{
			name:          "provider failure propagates",
			text:          "The precipitation condenses",
			level:         3,
			simplifier:    &mockSimplifier{err: errors.New("upstream unavailable")},
			expectedError: true,
			errorContains: "failed to simplify text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewLessonService(&mockLessonListRepository{}, &mockTranslator{}, tt.simplifier)

			simplified, err := svc.Simplify(context.Background(), tt.text, tt.level)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, simplified)
				assert.Equal(t, tt.expectedLevel, tt.simplifier.lastLevel)
			}
		})
	}
}
