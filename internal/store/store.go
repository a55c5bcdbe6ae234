// Package store persists game records so a game survives a restart of the
// service that hosts it.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/benbeisheim/chessrules-backend/internal/model"
)

var ErrNotFound = errors.New("store: record not found")

// Record is everything needed to rebuild a game.
type Record struct {
	GameID    string         `json:"gameId"`
	Players   model.Players  `json:"players"`
	Board     model.Snapshot `json:"board"`
	Status    model.Status   `json:"status"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

type Store interface {
	Save(ctx context.Context, rec Record) error
	Load(ctx context.Context, gameID string) (Record, error)
	Delete(ctx context.Context, gameID string) error
	// List returns every stored record, in no particular order.
	List(ctx context.Context) ([]Record, error)
	Close() error
}
