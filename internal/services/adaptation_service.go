package services

import (
	"context"
	"fmt"

	"github.com/edumorph/backend/internal/clients"
	"github.com/edumorph/backend/internal/models"
	"go.uber.org/zap"
)

// LessonRepository defines methods for lesson data access
type LessonRepository interface {
	// GetByID retrieves a lesson by its ID, including the original content
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the lesson.
	//
	// Returns the lesson and an error if any; models.ErrLessonNotFound when
	// the lesson does not exist.
	GetByID(ctx context.Context, id int) (*models.Lesson, error)
}

// AdaptedCacheRepository defines methods for the adapted content cache
type AdaptedCacheRepository interface {
	// Lookup retrieves the cached adaptation for a lesson and cache key.
	// Returns nil without error when no entry exists.
	Lookup(ctx context.Context, lessonID int, key models.CacheKey) (*models.AdaptedEntry, error)
	// Store writes an adaptation under the cache key, last write wins.
	Store(ctx context.Context, lessonID int, key models.CacheKey, content string) error
}

// PersonalizationScorer produces a personalization hint for a
// lesson/learner pairing. Implementations never fail; on provider trouble
// they return the neutral default.
type PersonalizationScorer interface {
	Score(ctx context.Context, grade int, subject, difficulty string) models.PersonalizationResult
}

// ContextAdapter is the primary, context-rich adaptation provider
type ContextAdapter interface {
	Adapt(ctx context.Context, lesson *models.Lesson, learner models.LearnerContext) clients.Result
}

// PromptCompleter is the secondary, prompt-completion adaptation provider
type PromptCompleter interface {
	ChatAdapt(ctx context.Context, content, language, region string, grade int, hints string) clients.Result
}

// Translator post-processes adapted text into the learner's language
type Translator interface {
	Translate(ctx context.Context, text, targetLanguage string) (string, error)
}

// adaptationStrategy is one step of the ordered provider fallback chain
type adaptationStrategy struct {
	name string
	run  func(ctx context.Context) clients.Result
}

type adaptationService struct {
	lessonRepo     LessonRepository
	cacheRepo      AdaptedCacheRepository
	scorer         PersonalizationScorer
	adapter        ContextAdapter
	completer      PromptCompleter
	translator     Translator
	sourceLanguage string
	logger         *zap.Logger
}

// NewAdaptationService creates a new adaptation service
func NewAdaptationService(
	lessonRepo LessonRepository,
	cacheRepo AdaptedCacheRepository,
	scorer PersonalizationScorer,
	adapter ContextAdapter,
	completer PromptCompleter,
	translator Translator,
	sourceLanguage string,
	logger *zap.Logger,
) *adaptationService {
	return &adaptationService{
		lessonRepo:     lessonRepo,
		cacheRepo:      cacheRepo,
		scorer:         scorer,
		adapter:        adapter,
		completer:      completer,
		translator:     translator,
		sourceLanguage: sourceLanguage,
		logger:         logger,
	}
}

// Adapt produces a personalized rendering of a lesson for a learner context.
//
// The pipeline is strictly ordered: cache lookup, personalization hint,
// provider fallback chain, translation stage, best-effort cache write.
// When every provider fails the caller receives models.ErrAdaptationFailed;
// the original content is never silently served in its place.
func (s *adaptationService) Adapt(ctx context.Context, lessonID int, learner models.LearnerContext) (*models.AdaptedLesson, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	key := learner.Key()

	// Cache hit path skips all providers
	entry, err := s.cacheRepo.Lookup(ctx, lessonID, key)
	if err != nil {
		// A failing cache read degrades to a miss; the providers can still
		// serve the request
		s.logger.Warn("adapted cache lookup failed",
			zap.Int("lesson_id", lessonID),
			zap.String("cache_key", key.String()),
			zap.Error(err),
		)
	}
	if entry != nil {
		return &models.AdaptedLesson{
			LessonID:   lessonID,
			Adapted:    entry.Content,
			Cached:     true,
			Translated: true,
		}, nil
	}

	// The scorer never fails; at worst it returns the neutral default
	ml := s.scorer.Score(ctx, learner.Grade, lesson.Subject, lesson.DifficultyLevel)

	adapted, err := s.runStrategies(ctx, lesson, learner, ml)
	if err != nil {
		return nil, err
	}

	adapted, translated := s.translate(ctx, adapted, learner.Language)

	// Cache only a fully resolved artifact: entries are immutable and have
	// no expiry, so an untranslated rendering must not be pinned forever
	if translated {
		if err := s.cacheRepo.Store(ctx, lessonID, key, adapted); err != nil {
			s.logger.Warn("failed to store adapted cache entry",
				zap.Int("lesson_id", lessonID),
				zap.String("cache_key", key.String()),
				zap.Error(err),
			)
		}
	}

	return &models.AdaptedLesson{
		LessonID:   lessonID,
		Adapted:    adapted,
		Cached:     false,
		Translated: translated,
		ML:         &ml,
	}, nil
}

// runStrategies iterates the ordered provider chain and returns the first
// usable text. The context-rich provider goes first as a quality-over-cost
// preference; the prompt-completion provider bounds the end-to-end failure
// probability.
func (s *adaptationService) runStrategies(ctx context.Context, lesson *models.Lesson, learner models.LearnerContext, ml models.PersonalizationResult) (string, error) {
	strategies := []adaptationStrategy{
		{
			name: "context-rich",
			run: func(ctx context.Context) clients.Result {
				return s.adapter.Adapt(ctx, lesson, learner)
			},
		},
		{
			name: "prompt-completion",
			run: func(ctx context.Context) clients.Result {
				hint := clients.Hint(ml, lesson.Subject, lesson.DifficultyLevel)
				return s.completer.ChatAdapt(ctx, lesson.OriginalContent, learner.Language, learner.Region, learner.Grade, hint)
			},
		},
	}

	for _, strategy := range strategies {
		result := strategy.run(ctx)
		if result.Usable() {
			return result.Text, nil
		}
		s.logger.Warn("adaptation provider failed",
			zap.Int("lesson_id", lesson.ID),
			zap.String("provider", strategy.name),
			zap.String("outcome", result.Outcome.String()),
			zap.Error(result.Err),
		)
	}

	return "", fmt.Errorf("%w: all providers exhausted for lesson %d", models.ErrAdaptationFailed, lesson.ID)
}

// translate runs the translation stage when the target language differs from
// the source language. On failure the untranslated text is kept and the
// returned flag tells the caller the content is not in the target language.
func (s *adaptationService) translate(ctx context.Context, text, targetLanguage string) (string, bool) {
	if targetLanguage == s.sourceLanguage {
		return text, true
	}

	translated, err := s.translator.Translate(ctx, text, targetLanguage)
	if err != nil {
		s.logger.Warn("translation failed, serving untranslated content",
			zap.String("target_language", targetLanguage),
			zap.Error(err),
		)
		return text, false
	}

	return translated, true
}
