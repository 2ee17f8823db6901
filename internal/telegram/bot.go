// Package telegram is a personal chat surface over the coaching services,
// long-polling the Bot API for a single allow-listed user.
package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"ai-health-coach/internal/clock"
	"ai-health-coach/internal/coach"
)

// Bot wraps the Telegram API and the coaching services.
type Bot struct {
	api       *tgbotapi.BotAPI
	chat      *coach.ChatService
	mealPlans *coach.MealPlanService
	exercise  *coach.ExerciseReviewService
	nutrition *coach.NutritionReviewService
	clk       clock.Clock
	log       zerolog.Logger

	allowedUserID int64
	userEmail     string
}

// NewBot initializes the Telegram bot for long polling.
func NewBot(
	token string,
	allowedUserID int64,
	userEmail string,
	chat *coach.ChatService,
	mealPlans *coach.MealPlanService,
	exercise *coach.ExerciseReviewService,
	nutrition *coach.NutritionReviewService,
	clk clock.Clock,
	log zerolog.Logger,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}
	log.Info().Str("account", api.Self.UserName).Msg("authorized on telegram")

	return &Bot{
		api:           api,
		chat:          chat,
		mealPlans:     mealPlans,
		exercise:      exercise,
		nutrition:     nutrition,
		clk:           clk,
		log:           log,
		allowedUserID: allowedUserID,
		userEmail:     userEmail,
	}, nil
}

// Run consumes updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update := <-updates:
			if update.Message == nil {
				continue
			}
			if update.Message.From.ID != b.allowedUserID {
				b.log.Warn().Int64("userID", update.Message.From.ID).
					Str("username", update.Message.From.UserName).
					Msg("ignoring message from unauthorized user")
				continue
			}
			go b.processMessage(update.Message)
		}
	}
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	switch msg.Command() {
	case "start", "help":
		b.sendStatus(msg.Chat.ID, helpText)
	case "plan":
		b.handleMealPlan(ctx, msg.Chat.ID)
	case "workout":
		b.handleWorkoutReview(ctx, msg.Chat.ID)
	case "nutrition":
		b.handleNutritionReview(ctx, msg.Chat.ID)
	default:
		b.handleChat(ctx, msg.Chat.ID, msg.Text)
	}
}

const helpText = `🏃 *AI Health Coach*

/plan — today's meal plan
/workout — this week's workout review
/nutrition — this week's nutrition review

Anything else is a chat message to your coach.`

func (b *Bot) handleChat(ctx context.Context, chatID int64, text string) {
	sentID, ok := b.sendStatus(chatID, "💬 *Thinking...*")
	if !ok {
		return
	}

	transcript, err := b.chat.Send(ctx, b.userEmail, clock.Today(b.clk), text)
	if err != nil {
		b.editWithError(chatID, sentID, "chat failed", err)
		return
	}

	reply := "…"
	if n := len(transcript.Messages); n > 0 {
		reply = transcript.Messages[n-1].Content
	}
	b.edit(chatID, sentID, reply)
}

func (b *Bot) handleMealPlan(ctx context.Context, chatID int64) {
	sentID, ok := b.sendStatus(chatID, "🥗 *Preparing your meal plan...*")
	if !ok {
		return
	}

	plan, err := b.mealPlans.Generate(ctx, b.userEmail, clock.Today(b.clk))
	if err != nil {
		b.editWithError(chatID, sentID, "meal plan failed", err)
		return
	}
	b.edit(chatID, sentID, formatMealPlan(plan))
}

func (b *Bot) handleWorkoutReview(ctx context.Context, chatID int64) {
	sentID, ok := b.sendStatus(chatID, "🏋️ *Reviewing your week...*")
	if !ok {
		return
	}

	review, err := b.exercise.Evaluate(ctx, b.userEmail, clock.Today(b.clk))
	if err != nil {
		b.editWithError(chatID, sentID, "workout review failed", err)
		return
	}
	b.edit(chatID, sentID, formatWorkoutReview(review))
}

func (b *Bot) handleNutritionReview(ctx context.Context, chatID int64) {
	sentID, ok := b.sendStatus(chatID, "🍎 *Reviewing your week...*")
	if !ok {
		return
	}

	review, err := b.nutrition.Evaluate(ctx, b.userEmail, clock.Today(b.clk))
	if err != nil {
		b.editWithError(chatID, sentID, "nutrition review failed", err)
		return
	}
	b.edit(chatID, sentID, formatNutritionReview(review))
}

func formatMealPlan(plan *coach.MealPlanResult) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📅 *Meal plan for %s*\n\n", plan.PlanDate.Format("2006-01-02")))
	for _, meal := range plan.Meals {
		slot := coach.MealSlotUnknown
		if meal.MealTime != nil {
			slot = *meal.MealTime
		}
		sb.WriteString(fmt.Sprintf("*%s*: %s", slot, meal.Menu))
		if meal.Calories != nil {
			sb.WriteString(fmt.Sprintf(" (%.0f kcal)", *meal.Calories))
		}
		sb.WriteString("\n")
		if meal.Highlight != nil && *meal.Highlight != "" {
			sb.WriteString(fmt.Sprintf("_%s_\n", *meal.Highlight))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatWorkoutReview(review *coach.ExerciseReviewResult) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🏋️ *Workout review, week of %s*\n\n", review.WeekStart.Format("2006-01-02")))
	if review.Summary != nil {
		sb.WriteString(*review.Summary)
		sb.WriteString("\n")
	}
	if review.Recommendation != nil && *review.Recommendation != "" {
		sb.WriteString(fmt.Sprintf("\n💡 %s\n", *review.Recommendation))
	}
	return sb.String()
}

func formatNutritionReview(review *coach.NutritionReviewResult) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🍎 *Nutrition review, week of %s*\n\n", review.WeekStart.Format("2006-01-02")))
	if review.Summary != nil {
		sb.WriteString(*review.Summary)
		sb.WriteString("\n")
	}
	statuses := []struct {
		label string
		value *string
	}{
		{"Carbohydrate", review.CarbohydrateStatus},
		{"Protein", review.ProteinStatus},
		{"Fat", review.FatStatus},
		{"Calories", review.CalorieStatus},
	}
	var lines []string
	for _, s := range statuses {
		if s.value != nil && *s.value != "" {
			lines = append(lines, fmt.Sprintf("• %s: %s", s.label, *s.value))
		}
	}
	if len(lines) > 0 {
		sb.WriteString("\n")
		sb.WriteString(strings.Join(lines, "\n"))
		sb.WriteString("\n")
	}
	return sb.String()
}

// sendStatus sends a placeholder message and returns its id for editing.
func (b *Bot) sendStatus(chatID int64, text string) (int, bool) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	sent, err := b.api.Send(msg)
	if err != nil {
		b.log.Error().Err(err).Msg("failed to send status message")
		return 0, false
	}
	return sent.MessageID, true
}

func (b *Bot) edit(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = "Markdown"
	if _, err := b.api.Send(edit); err != nil {
		b.log.Error().Err(err).Msg("failed to edit message")
	}
}

func (b *Bot) editWithError(chatID int64, messageID int, what string, err error) {
	b.log.Error().Err(err).Msg(what)
	safeErr := strings.ReplaceAll(err.Error(), "`", "'")
	b.edit(chatID, messageID, fmt.Sprintf("❌ *Error:*\n```\n%s\n```", safeErr))
}
