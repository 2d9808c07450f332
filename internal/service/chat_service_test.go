package service

import (
	"context"
	"errors"
	"math"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-companion-be/internal/apperrors"
	"ai-companion-be/internal/dto"
	"ai-companion-be/internal/entity"
	"ai-companion-be/internal/repository/specification"
	"ai-companion-be/pkg/llm"
	"ai-companion-be/pkg/persona"
)

// --- Fakes ---

type fakeStateRepo struct {
	states      map[uuid.UUID]*entity.PersonalityState
	createCalls int
	updateCalls int
	findErr     error
	createErr   error
	updateErr   error

	// When set, FindByUserId always serves a copy of this snapshot,
	// emulating a stale concurrent read.
	staleSnapshot *entity.PersonalityState
}

func newFakeStateRepo() *fakeStateRepo {
	return &fakeStateRepo{states: make(map[uuid.UUID]*entity.PersonalityState)}
}

func (r *fakeStateRepo) FindByUserId(_ context.Context, userId uuid.UUID) (*entity.PersonalityState, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	if r.staleSnapshot != nil {
		copied := *r.staleSnapshot
		return &copied, nil
	}
	state, ok := r.states[userId]
	if !ok {
		return nil, nil
	}
	copied := *state
	return &copied, nil
}

func (r *fakeStateRepo) Create(_ context.Context, state *entity.PersonalityState) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.createCalls++
	state.Id = uuid.New()
	copied := *state
	r.states[state.UserId] = &copied
	return nil
}

func (r *fakeStateRepo) UpdateByUserId(_ context.Context, state *entity.PersonalityState) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updateCalls++
	copied := *state
	r.states[state.UserId] = &copied
	return nil
}

type fakeMessageRepo struct {
	messages  []*entity.ChatMessage
	createErr error
	clock     time.Time
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{clock: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
}

func (r *fakeMessageRepo) Create(_ context.Context, message *entity.ChatMessage) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.clock = r.clock.Add(time.Second)
	message.Id = uuid.New()
	message.CreatedAt = r.clock
	copied := *message
	r.messages = append(r.messages, &copied)
	return nil
}

func (r *fakeMessageRepo) FindRecent(ctx context.Context, conversationId uuid.UUID, limit int) ([]*entity.ChatMessage, error) {
	return r.FindAll(ctx,
		specification.ByConversationID{ConversationID: conversationId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit},
	)
}

func (r *fakeMessageRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	result := make([]*entity.ChatMessage, len(r.messages))
	copy(result, r.messages)

	limit := len(result)
	offset := 0
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByConversationID:
			filtered := result[:0:0]
			for _, m := range result {
				if m.ConversationId == s.ConversationID {
					filtered = append(filtered, m)
				}
			}
			result = filtered
		case specification.OrderBy:
			desc := s.Desc
			sort.SliceStable(result, func(i, j int) bool {
				if desc {
					return result[i].CreatedAt.After(result[j].CreatedAt)
				}
				return result[i].CreatedAt.Before(result[j].CreatedAt)
			})
		case specification.Pagination:
			limit = s.Limit
			offset = s.Offset
		}
	}

	if offset > len(result) {
		offset = len(result)
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], nil
}

func (r *fakeMessageRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	return int64(len(r.messages)), nil
}

type fakeLLM struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeLLM) Chat(_ context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	if len(history) > 0 {
		f.prompts = append(f.prompts, history[len(history)-1].Content)
	}
	return f.reply, f.err
}

func (f *fakeLLM) Generate(_ context.Context, prompt string, _ ...llm.Option) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func newTestService(states *fakeStateRepo, messages *fakeMessageRepo, model *fakeLLM, seed int64) IChatService {
	return NewChatService(states, messages, model, persona.NewRand(seed), nopLogger{})
}

// --- Tests ---

func TestSendMessageNewUser(t *testing.T) {
	states := newFakeStateRepo()
	messages := newFakeMessageRepo()
	model := &fakeLLM{reply: "Oh NOW you want to talk?"}
	svc := newTestService(states, messages, model, 42)

	userId := uuid.New()
	res, err := svc.SendMessage(context.Background(), userId, &dto.SendMessageRequest{Message: "hi"})

	require.NoError(t, err)
	require.NotNil(t, res)
	assert.NotEmpty(t, res.Response)

	// A state was lazily created with defaults in range
	state := states.states[userId]
	require.NotNil(t, state)
	assert.Equal(t, 1, states.createCalls)
	assert.GreaterOrEqual(t, state.SassLevel, persona.TraitMin)
	assert.LessOrEqual(t, state.SassLevel, persona.TraitMax)
	assert.True(t, persona.IsValidMood(state.Mood))

	// One user turn then one bot turn, in that order
	require.Len(t, messages.messages, 2)
	assert.Equal(t, "hi", messages.messages[0].Content)
	assert.False(t, messages.messages[0].IsBot)
	assert.True(t, messages.messages[1].IsBot)
	assert.Equal(t, userId, messages.messages[0].ConversationId)
	assert.Equal(t, userId, messages.messages[1].ConversationId)
	assert.True(t, messages.messages[0].CreatedAt.Before(messages.messages[1].CreatedAt))

	// The prompt carried the new utterance
	require.Len(t, model.prompts, 1)
	assert.Contains(t, model.prompts[0], "User: hi")
}

func TestSendMessageSecondCallFindsFirstState(t *testing.T) {
	states := newFakeStateRepo()
	messages := newFakeMessageRepo()
	svc := newTestService(states, messages, &fakeLLM{reply: "sure."}, 7)

	userId := uuid.New()
	_, err := svc.SendMessage(context.Background(), userId, &dto.SendMessageRequest{Message: "one"})
	require.NoError(t, err)
	_, err = svc.SendMessage(context.Background(), userId, &dto.SendMessageRequest{Message: "two"})
	require.NoError(t, err)

	assert.Equal(t, 1, states.createCalls)
	assert.Len(t, messages.messages, 4)
}

func TestSendMessageHighSassPrefix(t *testing.T) {
	states := newFakeStateRepo()
	userId := uuid.New()
	states.states[userId] = &entity.PersonalityState{
		UserId:    userId,
		SassLevel: 0.9,
		Patience:  0.5,
		Sweetness: 0.5,
		Mood:      persona.MoodSarcastic,
	}

	svc := newTestService(states, newFakeMessageRepo(), &fakeLLM{reply: "Sure Thing"}, 3)

	res, err := svc.SendMessage(context.Background(), userId, &dto.SendMessageRequest{Message: "hey"})
	require.NoError(t, err)
	assert.Contains(t, res.Response, "Look, ")
	assert.Contains(t, res.Response, "sure thing")
}

func TestSendMessageEmptyIsRejectedWithoutSideEffects(t *testing.T) {
	states := newFakeStateRepo()
	messages := newFakeMessageRepo()
	svc := newTestService(states, messages, &fakeLLM{reply: "unused"}, 1)

	_, err := svc.SendMessage(context.Background(), uuid.New(), &dto.SendMessageRequest{Message: "   "})

	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Empty(t, messages.messages)
	assert.Equal(t, 0, states.createCalls)
}

func TestSendMessageModelFailurePersistsNothing(t *testing.T) {
	states := newFakeStateRepo()
	userId := uuid.New()
	existing := &entity.PersonalityState{
		UserId:          userId,
		SassLevel:       0.6,
		Patience:        0.4,
		Sweetness:       0.5,
		Mood:            persona.MoodPlayful,
		LastInteraction: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	states.states[userId] = existing
	snapshot := *existing

	messages := newFakeMessageRepo()
	svc := newTestService(states, messages, &fakeLLM{err: errors.New("upstream 500")}, 1)

	_, err := svc.SendMessage(context.Background(), userId, &dto.SendMessageRequest{Message: "hello?"})

	var modelErr *apperrors.ModelError
	require.ErrorAs(t, err, &modelErr)
	assert.Empty(t, messages.messages)
	assert.Equal(t, snapshot, *states.states[userId])
	assert.Equal(t, 0, states.updateCalls)
}

func TestSendMessageBlankModelReplyIsModelError(t *testing.T) {
	states := newFakeStateRepo()
	messages := newFakeMessageRepo()
	svc := newTestService(states, messages, &fakeLLM{reply: "   \n"}, 1)

	_, err := svc.SendMessage(context.Background(), uuid.New(), &dto.SendMessageRequest{Message: "hi"})

	var modelErr *apperrors.ModelError
	require.ErrorAs(t, err, &modelErr)
	assert.Empty(t, messages.messages)
}

func TestSendMessageTurnPersistFailureIsStoreError(t *testing.T) {
	states := newFakeStateRepo()
	messages := newFakeMessageRepo()
	messages.createErr = errors.New("insert failed")
	svc := newTestService(states, messages, &fakeLLM{reply: "fine"}, 1)

	_, err := svc.SendMessage(context.Background(), uuid.New(), &dto.SendMessageRequest{Message: "hi"})

	var storeErr *apperrors.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Empty(t, messages.messages)
}

func TestSendMessageStateSaveFailureStillDeliversReply(t *testing.T) {
	states := newFakeStateRepo()
	states.updateErr = errors.New("update failed")
	messages := newFakeMessageRepo()
	svc := newTestService(states, messages, &fakeLLM{reply: "still here"}, 1)

	res, err := svc.SendMessage(context.Background(), uuid.New(), &dto.SendMessageRequest{Message: "hi"})

	require.NoError(t, err)
	assert.NotEmpty(t, res.Response)
	assert.Len(t, messages.messages, 2)
}

func TestSendMessageLostUpdateLastWriteWins(t *testing.T) {
	userId := uuid.New()
	snapshot := &entity.PersonalityState{
		UserId:          userId,
		SassLevel:       0.9,
		Patience:        0.5,
		Sweetness:       0.5,
		Mood:            persona.MoodIrritated,
		LastInteraction: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}

	states := newFakeStateRepo()
	states.staleSnapshot = snapshot // both turns read the same stale state

	svc := newTestService(states, newFakeMessageRepo(), &fakeLLM{reply: "yeah yeah"}, 9)

	_, err := svc.SendMessage(context.Background(), userId, &dto.SendMessageRequest{Message: "first"})
	require.NoError(t, err)
	_, err = svc.SendMessage(context.Background(), userId, &dto.SendMessageRequest{Message: "second"})
	require.NoError(t, err)

	// Two turns ran, but the surviving state is one evolution step away from
	// the shared snapshot: the second save silently overwrote the first.
	assert.Equal(t, 2, states.updateCalls)
	saved := states.states[userId]
	require.NotNil(t, saved)
	assert.LessOrEqual(t, math.Abs(saved.SassLevel-snapshot.SassLevel), 0.05+1e-9)
	assert.LessOrEqual(t, math.Abs(saved.Patience-snapshot.Patience), 0.05+1e-9)
	assert.LessOrEqual(t, math.Abs(saved.Sweetness-snapshot.Sweetness), 0.05+1e-9)
}

func TestGetMessagesNewestFirst(t *testing.T) {
	states := newFakeStateRepo()
	messages := newFakeMessageRepo()
	svc := newTestService(states, messages, &fakeLLM{reply: "ok"}, 5)

	userId := uuid.New()
	for _, msg := range []string{"a", "b", "c"} {
		_, err := svc.SendMessage(context.Background(), userId, &dto.SendMessageRequest{Message: msg})
		require.NoError(t, err)
	}

	res, err := svc.GetMessages(context.Background(), userId, 1, 50)
	require.NoError(t, err)
	require.Len(t, res, 6)

	// Newest first: the bot reply to "c" leads
	assert.True(t, res[0].IsBot)
	assert.Equal(t, "c", res[1].Content)
	assert.Equal(t, "a", res[5].Content)
	for i := 1; i < len(res); i++ {
		assert.False(t, res[i].CreatedAt.After(res[i-1].CreatedAt))
	}
}

func TestGetMessagesPagination(t *testing.T) {
	states := newFakeStateRepo()
	messages := newFakeMessageRepo()
	svc := newTestService(states, messages, &fakeLLM{reply: "ok"}, 5)

	userId := uuid.New()
	for _, msg := range []string{"a", "b", "c"} {
		_, err := svc.SendMessage(context.Background(), userId, &dto.SendMessageRequest{Message: msg})
		require.NoError(t, err)
	}

	page1, err := svc.GetMessages(context.Background(), userId, 1, 4)
	require.NoError(t, err)
	page2, err := svc.GetMessages(context.Background(), userId, 2, 4)
	require.NoError(t, err)

	assert.Len(t, page1, 4)
	assert.Len(t, page2, 2)
}

func TestSendMessagePromptUsesRecentHistoryWindow(t *testing.T) {
	states := newFakeStateRepo()
	messages := newFakeMessageRepo()
	model := &fakeLLM{reply: "ok"}
	svc := newTestService(states, messages, model, 5)

	userId := uuid.New()
	for _, msg := range []string{"one", "two", "three", "four"} {
		_, err := svc.SendMessage(context.Background(), userId, &dto.SendMessageRequest{Message: msg})
		require.NoError(t, err)
	}

	// 6 turns exist before the 4th send; only the newest 5 fit the window,
	// so "one" has already scrolled out.
	lastPrompt := model.prompts[len(model.prompts)-1]
	assert.Contains(t, lastPrompt, "User: three")
	assert.Contains(t, lastPrompt, "User: four")
	assert.NotContains(t, lastPrompt, "User: one\n")
}
