package coach

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"ai-health-coach/internal/clock"
	"ai-health-coach/internal/llm"
	"ai-health-coach/internal/stats"
)

// ChatService runs one coaching chat turn per call. Unlike the other
// artifact kinds there is no existing-artifact check: every turn appends a
// USER/AI message pair to the day's transcript.
type ChatService struct {
	store    ChatStore
	profiles ProfileSource
	stats    *stats.Aggregator
	textGen  llm.TextGenerator
	clock    clock.Clock
	log      zerolog.Logger
}

// NewChatService creates a new ChatService.
func NewChatService(store ChatStore, profiles ProfileSource, agg *stats.Aggregator, textGen llm.TextGenerator, clk clock.Clock, log zerolog.Logger) *ChatService {
	return &ChatService{
		store:    store,
		profiles: profiles,
		stats:    agg,
		textGen:  textGen,
		clock:    clk,
		log:      log,
	}
}

// Send validates the message, generates the coach's answer from profile and
// weekly stats, appends both messages, and returns the day's full transcript.
func (s *ChatService) Send(ctx context.Context, email string, date time.Time, message string) (*ChatTranscript, error) {
	if strings.TrimSpace(message) == "" {
		return nil, fmt.Errorf("%w: chat message must not be blank", ErrValidation)
	}
	date = clock.Midnight(date)

	prof, err := s.profiles.HealthProfile(ctx, email)
	if err != nil {
		return nil, err
	}

	weekly, err := s.stats.WeeklyStats(ctx, email, date)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	prompt, err := buildChatPrompt(prof, weekly, date, now, message)
	if err != nil {
		return nil, err
	}

	answer, err := s.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	// The AI row sorts after the user row even if the store rounds the
	// timestamps to the same second.
	pair := []ChatMessage{
		{Email: email, MessageDate: date, Sender: SenderUser, Content: message, CreatedAt: now},
		{Email: email, MessageDate: date, Sender: SenderAI, Content: answer, CreatedAt: now.Add(time.Second)},
	}
	if err := s.store.InsertChatMessages(ctx, pair); err != nil {
		return nil, fmt.Errorf("failed to store chat messages: %w", err)
	}

	s.log.Info().Str("email", email).Str("date", date.Format(time.DateOnly)).Msg("chat turn generated")
	return s.History(ctx, email, date)
}

// History returns the ordered transcript for one day. It never triggers
// generation.
func (s *ChatService) History(ctx context.Context, email string, date time.Time) (*ChatTranscript, error) {
	date = clock.Midnight(date)
	msgs, err := s.store.ChatMessagesByDate(ctx, email, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load chat messages: %w", err)
	}
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].CreatedAt.Before(msgs[j].CreatedAt)
	})
	if msgs == nil {
		msgs = []ChatMessage{}
	}
	return &ChatTranscript{MessageDate: date, Messages: msgs}, nil
}
