package storage

import (
	"context"
	"fmt"
	"time"

	"ai-health-coach/internal/coach"
)

// InsertChatMessages appends messages to the chat log in one transaction.
func (s *Store) InsertChatMessages(ctx context.Context, msgs []coach.ChatMessage) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, m := range msgs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO ai_chat_messages (email, message_date, sender, content, created_at)
			 VALUES (?, ?, ?, ?, ?)`,
			m.Email, dateKey(m.MessageDate), string(m.Sender), m.Content, m.CreatedAt.UTC())
		if err != nil {
			return fmt.Errorf("failed to insert chat message: %w", err)
		}
	}
	return tx.Commit()
}

// ChatMessagesByDate returns one day's messages ordered by creation time.
func (s *Store) ChatMessagesByDate(ctx context.Context, email string, date time.Time) ([]coach.ChatMessage, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, sender, content, created_at
		 FROM ai_chat_messages
		 WHERE email = ? AND message_date = ?
		 ORDER BY created_at, id`,
		email, dateKey(date))
	if err != nil {
		return nil, fmt.Errorf("failed to query chat messages: %w", err)
	}
	defer rows.Close()

	var out []coach.ChatMessage
	for rows.Next() {
		m := coach.ChatMessage{Email: email, MessageDate: date}
		var sender string
		if err := rows.Scan(&m.ID, &sender, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}
		m.Sender = coach.Sender(sender)
		out = append(out, m)
	}
	return out, rows.Err()
}
