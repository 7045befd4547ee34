package events

import (
	"context"
	"time"
)

// GameFinished is published once per terminated session. Delivery is
// at-least-once; consumers own any dedup and retry policy.
type GameFinished struct {
	Type            string    `json:"type"`
	Player1         string    `json:"player1"`
	Player2         string    `json:"player2"`
	Winner          string    `json:"winner"`
	Reason          string    `json:"reason"`
	MoveCount       int       `json:"moveCount"`
	DurationSeconds int       `json:"durationSeconds"`
	Timestamp       time.Time `json:"timestamp"`
}

const GameFinishedType = "GameFinished"

// Sink receives terminal game events. Publish failures must never block
// or roll back session cleanup; callers treat it as fire-and-forget.
type Sink interface {
	Publish(ctx context.Context, event GameFinished) error
}

// NopSink drops events, for deployments without a broker.
type NopSink struct{}

func (NopSink) Publish(context.Context, GameFinished) error { return nil }
