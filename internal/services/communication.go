package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/divergex-backend/internal/platform/apierr"
	"github.com/yungbote/divergex-backend/internal/platform/logger"
	"github.com/yungbote/divergex-backend/internal/repos"
	"github.com/yungbote/divergex-backend/internal/types"
)

const conversationHistoryLimit = 20

// SavedConversation is the POST /save-conversation payload.
type SavedConversation struct {
	ScenarioType     string         `json:"scenarioType"`
	ConversationData datatypes.JSON `json:"conversationData"`
	Feedback         string         `json:"feedback"`
	DifficultyLevel  int            `json:"difficultyLevel"`
}

type CommunicationService interface {
	AnalyzeTone(ctx context.Context, userID uuid.UUID, text, msgContext string) (*types.ToneAnalysis, error)
	FormatMessage(ctx context.Context, userID uuid.UUID, text, targetTone string) (*types.FormattedMessage, error)
	SimulateConversation(ctx context.Context, scenario, message string, history []types.ConversationMessage) *types.SimulationTurn
	SaveConversation(ctx context.Context, userID uuid.UUID, in SavedConversation) error
	ConversationHistory(ctx context.Context, userID uuid.UUID) ([]*types.ConversationSimulation, error)
}

type communicationService struct {
	db          *gorm.DB
	log         *logger.Logger
	gateway     AIGatewayService
	historyRepo repos.CommunicationHistoryRepo
	simRepo     repos.ConversationSimulationRepo
}

func NewCommunicationService(
	db *gorm.DB,
	baseLog *logger.Logger,
	gateway AIGatewayService,
	historyRepo repos.CommunicationHistoryRepo,
	simRepo repos.ConversationSimulationRepo,
) CommunicationService {
	return &communicationService{
		db:          db,
		log:         baseLog.With("service", "CommunicationService"),
		gateway:     gateway,
		historyRepo: historyRepo,
		simRepo:     simRepo,
	}
}

// AnalyzeTone runs the analysis and appends it to the communication log. The
// analysis itself never fails; only the append can.
func (cs *communicationService) AnalyzeTone(ctx context.Context, userID uuid.UUID, text, msgContext string) (*types.ToneAnalysis, error) {
	if text == "" {
		return nil, apierr.Validation("missing_text", fmt.Errorf("text is required"))
	}
	analysis := cs.gateway.AnalyzeTone(ctx, text, msgContext)

	analyzedJSON, err := json.Marshal(analysis)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("marshal analysis: %w", err))
	}
	entry := &types.CommunicationHistory{
		ID:           uuid.New(),
		UserID:       userID,
		OriginalText: text,
		AnalyzedTone: datatypes.JSON(analyzedJSON),
		Context:      msgContext,
	}
	if err := cs.historyRepo.Create(ctx, nil, entry); err != nil {
		return nil, apierr.Internal(fmt.Errorf("record tone analysis: %w", err))
	}
	return analysis, nil
}

func (cs *communicationService) FormatMessage(ctx context.Context, userID uuid.UUID, text, targetTone string) (*types.FormattedMessage, error) {
	if text == "" {
		return nil, apierr.Validation("missing_text", fmt.Errorf("text is required"))
	}
	formatted := cs.gateway.FormatMessage(ctx, text, targetTone)

	entry := &types.CommunicationHistory{
		ID:               uuid.New(),
		UserID:           userID,
		OriginalText:     text,
		FormattedMessage: formatted.FormattedMessage,
		Context:          targetTone,
	}
	if err := cs.historyRepo.Create(ctx, nil, entry); err != nil {
		return nil, apierr.Internal(fmt.Errorf("record formatted message: %w", err))
	}
	return formatted, nil
}

// SimulateConversation is stateless; turns are only persisted when the client
// saves the finished conversation.
func (cs *communicationService) SimulateConversation(ctx context.Context, scenario, message string, history []types.ConversationMessage) *types.SimulationTurn {
	return cs.gateway.SimulateConversation(ctx, scenario, message, history)
}

func (cs *communicationService) SaveConversation(ctx context.Context, userID uuid.UUID, in SavedConversation) error {
	now := time.Now()
	sim := &types.ConversationSimulation{
		ID:               uuid.New(),
		UserID:           userID,
		ScenarioType:     in.ScenarioType,
		ConversationData: in.ConversationData,
		Feedback:         in.Feedback,
		DifficultyLevel:  in.DifficultyLevel,
		CompletedAt:      now,
	}
	if err := cs.simRepo.Create(ctx, nil, sim); err != nil {
		return apierr.Internal(fmt.Errorf("save conversation: %w", err))
	}
	return nil
}

func (cs *communicationService) ConversationHistory(ctx context.Context, userID uuid.UUID) ([]*types.ConversationSimulation, error) {
	sims, err := cs.simRepo.ListByUserID(ctx, nil, userID, conversationHistoryLimit)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("fetch conversation history: %w", err))
	}
	return sims, nil
}
