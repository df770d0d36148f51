package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/divergex-backend/internal/platform/apierr"
	"github.com/yungbote/divergex-backend/internal/platform/logger"
	"github.com/yungbote/divergex-backend/internal/platform/storage"
	"github.com/yungbote/divergex-backend/internal/repos"
	"github.com/yungbote/divergex-backend/internal/types"
)

const learningHistoryLimit = 20

// ProcessedText is the process-text response: the simplification plus the id
// of the stored row.
type ProcessedText struct {
	*types.SimplifiedText
	ID uuid.UUID `json:"id"`
}

// VisualSummaryResult is the generated concept map plus the URL of its
// rendered PNG, when rendering succeeded.
type VisualSummaryResult struct {
	*types.VisualSummary
	VisualSummaryURL string `json:"visualSummaryUrl,omitempty"`
}

type LearningService interface {
	ProcessText(ctx context.Context, userID uuid.UUID, text string, readingLevel int, domainType string) (*ProcessedText, error)
	GenerateVisualSummary(ctx context.Context, userID uuid.UUID, text string, contentID *uuid.UUID) (*VisualSummaryResult, error)
	History(ctx context.Context, userID uuid.UUID) ([]*types.LearningContent, error)
	ContentByID(ctx context.Context, userID, contentID uuid.UUID) (*types.LearningContent, error)
}

type learningService struct {
	db          *gorm.DB
	log         *logger.Logger
	gateway     AIGatewayService
	renderer    SummaryRenderer
	store       storage.Store
	contentRepo repos.LearningContentRepo
}

func NewLearningService(
	db *gorm.DB,
	baseLog *logger.Logger,
	gateway AIGatewayService,
	renderer SummaryRenderer,
	store storage.Store,
	contentRepo repos.LearningContentRepo,
) LearningService {
	return &learningService{
		db:          db,
		log:         baseLog.With("service", "LearningService"),
		gateway:     gateway,
		renderer:    renderer,
		store:       store,
		contentRepo: contentRepo,
	}
}

func (ls *learningService) ProcessText(ctx context.Context, userID uuid.UUID, text string, readingLevel int, domainType string) (*ProcessedText, error) {
	if text == "" {
		return nil, apierr.Validation("missing_text", fmt.Errorf("text is required"))
	}
	if readingLevel == 0 {
		readingLevel = 8
	}
	processed := ls.gateway.SimplifyText(ctx, text, readingLevel)

	content := &types.LearningContent{
		ID:                uuid.New(),
		UserID:            userID,
		OriginalContent:   text,
		SimplifiedContent: processed.SimplifiedText,
		ReadingLevel:      processed.ReadingLevel,
		DomainType:        domainType,
	}
	if err := ls.contentRepo.Create(ctx, nil, content); err != nil {
		return nil, apierr.Internal(fmt.Errorf("save learning content: %w", err))
	}
	return &ProcessedText{SimplifiedText: processed, ID: content.ID}, nil
}

// GenerateVisualSummary renders the concept map to a PNG and stores the URL
// on the referenced content row. A render failure downgrades the response to
// data-only rather than failing it.
func (ls *learningService) GenerateVisualSummary(ctx context.Context, userID uuid.UUID, text string, contentID *uuid.UUID) (*VisualSummaryResult, error) {
	if text == "" {
		return nil, apierr.Validation("missing_text", fmt.Errorf("text is required"))
	}
	visual := ls.gateway.GenerateVisualSummary(ctx, text)
	result := &VisualSummaryResult{VisualSummary: visual}

	png, err := ls.renderer.Render(visual)
	if err != nil {
		ls.log.Warn("mind map render skipped", "error", err)
		return result, nil
	}
	key := fmt.Sprintf("visual_summary/%s/%d.png", userID.String(), time.Now().UnixNano())
	url, err := ls.store.Put(ctx, key, png, "image/png")
	if err != nil {
		ls.log.Warn("mind map upload failed", "error", err)
		return result, nil
	}
	result.VisualSummaryURL = url

	if contentID != nil {
		content, err := ls.contentRepo.GetByID(ctx, nil, *contentID)
		if err != nil {
			return nil, apierr.Internal(fmt.Errorf("fetch learning content: %w", err))
		}
		if content == nil || content.UserID != userID {
			return nil, apierr.NotFound("content_not_found", fmt.Errorf("content %s not found", *contentID))
		}
		if err := ls.contentRepo.SetVisualSummaryURL(ctx, nil, *contentID, url); err != nil {
			return nil, apierr.Internal(fmt.Errorf("store visual summary url: %w", err))
		}
	}
	return result, nil
}

func (ls *learningService) History(ctx context.Context, userID uuid.UUID) ([]*types.LearningContent, error) {
	rows, err := ls.contentRepo.ListByUserID(ctx, nil, userID, learningHistoryLimit)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("fetch learning history: %w", err))
	}
	return rows, nil
}

func (ls *learningService) ContentByID(ctx context.Context, userID, contentID uuid.UUID) (*types.LearningContent, error) {
	content, err := ls.contentRepo.GetByID(ctx, nil, contentID)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("fetch learning content: %w", err))
	}
	if content == nil || content.UserID != userID {
		return nil, apierr.NotFound("content_not_found", fmt.Errorf("content %s not found", contentID))
	}
	return content, nil
}
