package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"

	"github.com/segmentio/kafka-go"

	"github.com/fourrow/game-server/internal/domain"
	"github.com/fourrow/game-server/internal/events"
	"github.com/fourrow/game-server/internal/repository/postgres"
)

// ResultStore is the persistence surface the worker writes through.
type ResultStore interface {
	RecordGameResult(ctx context.Context, rec postgres.GameRecord) error
	UpsertPlayerStats(ctx context.Context, username string, winsDelta, playedDelta int) error
}

// Worker consumes GameFinished events and folds them into the persistent
// result and leaderboard tables. It is a pure observer of terminal events:
// the game server never depends on it.
type Worker struct {
	reader *kafka.Reader
	repo   ResultStore
}

func NewWorker(brokers []string, topic, groupID string, repo ResultStore) *Worker {
	return &Worker{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: brokers,
			Topic:   topic,
			GroupID: groupID,
		}),
		repo: repo,
	}
}

// Run consumes until ctx is cancelled. Events are applied at-least-once;
// a failed apply is logged and skipped rather than wedging the partition.
func (w *Worker) Run(ctx context.Context) error {
	log.Println("[ANALYTICS] Worker started")
	for {
		msg, err := w.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		var event events.GameFinished
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Printf("[ANALYTICS] Skipping malformed event at offset %d: %v", msg.Offset, err)
			continue
		}
		if event.Type != events.GameFinishedType {
			continue
		}

		if err := w.apply(ctx, event); err != nil {
			log.Printf("[ANALYTICS] Failed to apply event at offset %d: %v", msg.Offset, err)
		}
	}
}

// apply persists the game record and updates both players' tallies. Wins
// are only credited to humans; the bot and draws get no leaderboard entry.
func (w *Worker) apply(ctx context.Context, event events.GameFinished) error {
	record := postgres.GameRecord{
		Player1:         event.Player1,
		Player2:         event.Player2,
		Winner:          event.Winner,
		Reason:          event.Reason,
		TotalMoves:      event.MoveCount,
		DurationSeconds: event.DurationSeconds,
		FinishedAt:      event.Timestamp,
	}
	if err := w.repo.RecordGameResult(ctx, record); err != nil {
		return err
	}

	for _, username := range []string{event.Player1, event.Player2} {
		if username == domain.BotUsername {
			continue
		}
		wins := 0
		if event.Winner == username && event.Winner != domain.DrawWinner {
			wins = 1
		}
		if err := w.repo.UpsertPlayerStats(ctx, username, wins, 1); err != nil {
			return err
		}
	}

	log.Printf("[ANALYTICS] Recorded game: %s vs %s, winner=%s", event.Player1, event.Player2, event.Winner)
	return nil
}

func (w *Worker) Close() error {
	return w.reader.Close()
}
