// service/game_manager.go
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/store"
	"github.com/benbeisheim/chessrules-backend/internal/ws"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type GameManager struct {
	games map[string]*model.Game
	queue *model.Queue
	store store.Store
	log   *zap.SugaredLogger
	mu    sync.RWMutex
}

func NewGameManager(st store.Store, log *zap.SugaredLogger) *GameManager {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &GameManager{
		games: make(map[string]*model.Game),
		queue: model.NewQueue(),
		store: st,
		log:   log,
	}
}

func (gm *GameManager) CreateGame(ctx context.Context, gameID string) error {
	gm.mu.Lock()
	if _, exists := gm.games[gameID]; exists {
		gm.mu.Unlock()
		return model.ErrGameExists
	}
	game := model.NewGame(gameID, gm.log)
	gm.games[gameID] = game
	gm.mu.Unlock()

	gm.log.Infow("game created", "game", gameID)
	return gm.persist(ctx, game)
}

// GetGame returns a live game, rebuilding it from the store when it is not
// in memory.
func (gm *GameManager) GetGame(ctx context.Context, gameID string) (*model.Game, error) {
	gm.mu.RLock()
	game, exists := gm.games[gameID]
	gm.mu.RUnlock()
	if exists {
		return game, nil
	}

	rec, err := gm.store.Load(ctx, gameID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, model.ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load game %s: %w", gameID, err)
	}
	board, err := model.NewBoardFromSnapshot(rec.Board)
	if err != nil {
		return nil, fmt.Errorf("restore game %s: %w", gameID, err)
	}

	gm.mu.Lock()
	defer gm.mu.Unlock()
	if game, exists := gm.games[gameID]; exists {
		return game, nil
	}
	game = model.RestoreGame(gameID, board, rec.Players, gm.log)
	gm.games[gameID] = game
	gm.log.Infow("game restored", "game", gameID, "turn", rec.Board.Turn)
	return game, nil
}

func (gm *GameManager) AddPlayerToGame(ctx context.Context, gameID string, playerID string) (model.Color, error) {
	game, err := gm.GetGame(ctx, gameID)
	if err != nil {
		return "", err
	}

	color, err := game.AddPlayer(playerID)
	if err != nil {
		return "", err
	}
	if game.IsFull() {
		gm.queue.Remove(gameID)
	}
	return color, gm.persist(ctx, game)
}

// JoinMatchmaking seats playerID in the oldest open game, or creates a new
// game and waits in it for an opponent.
func (gm *GameManager) JoinMatchmaking(ctx context.Context, playerID string) (string, model.Color, error) {
	for {
		open, ok := gm.queue.Next(playerID)
		if !ok {
			break
		}
		color, err := gm.AddPlayerToGame(ctx, open.GameID, playerID)
		if err != nil {
			gm.log.Warnw("skipping open game", "game", open.GameID, "error", err)
			continue
		}
		gm.log.Infow("matched player", "game", open.GameID, "player", playerID, "color", color)
		return open.GameID, color, nil
	}

	gameID := uuid.New().String()
	if err := gm.CreateGame(ctx, gameID); err != nil {
		return "", "", err
	}
	color, err := gm.AddPlayerToGame(ctx, gameID, playerID)
	if err != nil {
		return "", "", err
	}
	gm.queue.Add(gameID, playerID)
	gm.log.Infow("no open games, waiting for opponent", "game", gameID, "player", playerID)
	return gameID, color, nil
}

// GetGameState returns the game as seen by viewerID. Once both players have
// been shown the result of a finished game, it is removed from memory and
// from the store.
func (gm *GameManager) GetGameState(ctx context.Context, gameID, viewerID string) (model.GameState, error) {
	game, err := gm.GetGame(ctx, gameID)
	if err != nil {
		return model.GameState{}, err
	}
	state := game.State(viewerID)
	if state.Outcome != model.OutcomeNone && game.AcknowledgeOutcome(viewerID) {
		if err := gm.removeGame(ctx, gameID); err != nil {
			return state, err
		}
	}
	return state, nil
}

// ListGames returns the stored games playerID is seated in, most recently
// updated first.
func (gm *GameManager) ListGames(ctx context.Context, playerID string) ([]model.GameSummary, error) {
	records, err := gm.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}

	summaries := make([]model.GameSummary, 0)
	for _, rec := range records {
		gr := model.GameRecord{Players: rec.Players, Board: rec.Board, Status: rec.Status}
		summary, ok := gr.Summary(rec.GameID, playerID)
		if !ok {
			continue
		}
		summary.UpdatedAt = rec.UpdatedAt
		summaries = append(summaries, summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].UpdatedAt.Equal(summaries[j].UpdatedAt) {
			return summaries[i].ID < summaries[j].ID
		}
		return summaries[i].UpdatedAt.After(summaries[j].UpdatedAt)
	})
	return summaries, nil
}

func (gm *GameManager) removeGame(ctx context.Context, gameID string) error {
	gm.mu.Lock()
	delete(gm.games, gameID)
	gm.mu.Unlock()
	gm.queue.Remove(gameID)

	if err := gm.store.Delete(ctx, gameID); err != nil {
		gm.log.Errorw("failed to delete finished game", "game", gameID, "error", err)
		return fmt.Errorf("delete game %s: %w", gameID, err)
	}
	gm.log.Infow("finished game removed", "game", gameID)
	return nil
}

func (gm *GameManager) MakeMove(ctx context.Context, gameID string, playerID string, move model.Move) (model.Move, error) {
	game, err := gm.GetGame(ctx, gameID)
	if err != nil {
		return model.Move{}, err
	}

	applied, err := game.MakeMove(playerID, move)
	if err != nil {
		if errors.Is(err, model.ErrIllegalMove) {
			gm.log.Warnw("illegal move", "game", gameID, "player", playerID, "from", move.From, "to", move.To)
		}
		return model.Move{}, err
	}
	return applied, gm.persist(ctx, game)
}

func (gm *GameManager) LegalDestinations(ctx context.Context, gameID string, from model.Position) ([]model.Position, error) {
	game, err := gm.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return game.LegalDestinations(from), nil
}

func (gm *GameManager) RegisterConnection(ctx context.Context, gameID string, playerID string, client *ws.Client) error {
	game, err := gm.GetGame(ctx, gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, client)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, client *ws.Client) {
	gm.mu.RLock()
	game, exists := gm.games[gameID]
	gm.mu.RUnlock()
	if !exists {
		return
	}
	game.UnregisterConnection(playerID, client)
}

func (gm *GameManager) persist(ctx context.Context, game *model.Game) error {
	err := game.Persist(func(gr model.GameRecord) error {
		return gm.store.Save(ctx, store.Record{
			GameID:    game.ID,
			Players:   gr.Players,
			Board:     gr.Board,
			Status:    gr.Status,
			UpdatedAt: time.Now().UTC(),
		})
	})
	if err != nil {
		gm.log.Errorw("failed to persist game", "game", game.ID, "error", err)
		return fmt.Errorf("persist game %s: %w", game.ID, err)
	}
	return nil
}
