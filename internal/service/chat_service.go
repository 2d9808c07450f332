package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"ai-companion-be/internal/apperrors"
	"ai-companion-be/internal/dto"
	"ai-companion-be/internal/entity"
	"ai-companion-be/internal/pkg/logger"
	"ai-companion-be/internal/repository/contract"
	"ai-companion-be/internal/repository/specification"
	"ai-companion-be/pkg/llm"
	"ai-companion-be/pkg/persona"
)

// historyWindow is how many prior turns are replayed into the prompt.
const historyWindow = 5

var errModelEmptyReply = errors.New("model returned an empty reply")

// IChatService defines the conversation orchestrator interface
type IChatService interface {
	SendMessage(ctx context.Context, userId uuid.UUID, request *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	GetMessages(ctx context.Context, userId uuid.UUID, page, pageSize int) ([]*dto.MessageResponse, error)
}

// chatService runs one inbound message as one sequential pipeline. There is
// no per-user serialization: two overlapping turns for the same user both
// read the same state and the later save wins.
type chatService struct {
	stateRepo   contract.PersonalityStateRepository
	messageRepo contract.ChatMessageRepository
	llmProvider llm.LLMProvider
	stylizer    *persona.Stylizer
	rng         persona.Rand
	log         logger.ILogger
}

func NewChatService(
	stateRepo contract.PersonalityStateRepository,
	messageRepo contract.ChatMessageRepository,
	llmProvider llm.LLMProvider,
	rng persona.Rand,
	log logger.ILogger,
) IChatService {
	return &chatService{
		stateRepo:   stateRepo,
		messageRepo: messageRepo,
		llmProvider: llmProvider,
		stylizer:    persona.NewStylizer(rng),
		rng:         rng,
		log:         log,
	}
}

// SendMessage sequences one full turn: load-or-create state, fetch history,
// synthesize the prompt, call the model, stylize, persist the turn pair
// (user first, bot second), then evolve and save the state. Nothing is
// persisted if the model call fails; nothing is retried anywhere.
func (cs *chatService) SendMessage(ctx context.Context, userId uuid.UUID, request *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	message := strings.TrimSpace(request.Message)
	if message == "" {
		return nil, apperrors.NewValidation("message is required")
	}

	state, err := cs.loadOrCreateState(ctx, userId)
	if err != nil {
		return nil, err
	}

	history, err := cs.messageRepo.FindRecent(ctx, userId, historyWindow)
	if err != nil {
		return nil, apperrors.NewStore("find recent messages", err)
	}

	prompt := persona.NewPromptBuilder(state, history, message).Build()

	rawReply, err := cs.llmProvider.Generate(ctx, prompt)
	if err != nil {
		return nil, apperrors.NewModel(err)
	}
	if strings.TrimSpace(rawReply) == "" {
		return nil, apperrors.NewModel(errModelEmptyReply)
	}

	botResponse := cs.stylizer.Apply(rawReply, state)

	// User turn before bot turn; reply ordering is derived from creation order.
	userTurn := &entity.ChatMessage{
		UserId:         userId,
		Content:        message,
		IsBot:          false,
		ConversationId: userId,
	}
	if err := cs.messageRepo.Create(ctx, userTurn); err != nil {
		return nil, apperrors.NewStore("create user turn", err)
	}

	botTurn := &entity.ChatMessage{
		UserId:         userId,
		Content:        botResponse,
		IsBot:          true,
		ConversationId: userId,
	}
	if err := cs.messageRepo.Create(ctx, botTurn); err != nil {
		return nil, apperrors.NewStore("create bot turn", err)
	}

	// A failed state save loses one evolution step but the reply is already
	// earned; log and deliver anyway.
	next := persona.Evolve(state, cs.rng, time.Now())
	if err := cs.stateRepo.UpdateByUserId(ctx, next); err != nil {
		cs.log.Error("chat", "failed to save evolved personality state", map[string]interface{}{
			"user_id": userId.String(),
			"error":   err.Error(),
		})
	}

	return &dto.SendMessageResponse{Response: botResponse}, nil
}

func (cs *chatService) GetMessages(ctx context.Context, userId uuid.UUID, page, pageSize int) ([]*dto.MessageResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 50
	}

	messages, err := cs.messageRepo.FindAll(ctx,
		specification.ByConversationID{ConversationID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: pageSize, Offset: (page - 1) * pageSize},
	)
	if err != nil {
		return nil, apperrors.NewStore("find messages", err)
	}

	res := make([]*dto.MessageResponse, len(messages))
	for i, msg := range messages {
		res[i] = &dto.MessageResponse{
			Id:        msg.Id,
			Content:   msg.Content,
			IsBot:     msg.IsBot,
			CreatedAt: msg.CreatedAt,
		}
	}
	return res, nil
}

// loadOrCreateState fetches the user's personality state, lazily creating it
// with default traits on first contact. A missing row is the only recoverable
// miss; any other store failure propagates.
func (cs *chatService) loadOrCreateState(ctx context.Context, userId uuid.UUID) (*entity.PersonalityState, error) {
	state, err := cs.stateRepo.FindByUserId(ctx, userId)
	if err != nil {
		return nil, apperrors.NewStore("find personality state", err)
	}
	if state != nil {
		return state, nil
	}

	state = persona.NewDefaultState(userId, cs.rng, time.Now())
	if err := cs.stateRepo.Create(ctx, state); err != nil {
		return nil, apperrors.NewStore("create personality state", err)
	}

	cs.log.Info("chat", "created personality state", map[string]interface{}{
		"user_id": userId.String(),
		"mood":    state.Mood,
	})
	return state, nil
}
