package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/ws"
	"github.com/google/uuid"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) JoinGame(ctx context.Context, gameID string, playerID string) (model.Color, error) {
	return gs.gameManager.AddPlayerToGame(ctx, gameID, playerID)
}

func (gs *GameService) CreateGame(ctx context.Context) (string, error) {
	gameID := uuid.New().String()

	if err := gs.gameManager.CreateGame(ctx, gameID); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	return gameID, nil
}

func (gs *GameService) JoinMatchmaking(ctx context.Context, playerID string) (string, model.Color, error) {
	return gs.gameManager.JoinMatchmaking(ctx, playerID)
}

func (gs *GameService) GetGameState(ctx context.Context, gameID, viewerID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(ctx, gameID, viewerID)
}

func (gs *GameService) HandleMove(ctx context.Context, gameID string, playerID string, req model.MoveRequest) (model.Move, error) {
	move, err := req.Move()
	if err != nil {
		return model.Move{}, err
	}
	return gs.gameManager.MakeMove(ctx, gameID, playerID, move)
}

// LegalDestinations lists the squares the piece on square may move to,
// sorted.
func (gs *GameService) LegalDestinations(ctx context.Context, gameID, square string) ([]string, error) {
	from, err := model.ParsePosition(square)
	if err != nil {
		return nil, err
	}
	dests, err := gs.gameManager.LegalDestinations(ctx, gameID, from)
	if err != nil {
		return nil, err
	}
	squares := make([]string, 0, len(dests))
	for _, d := range dests {
		squares = append(squares, d.String())
	}
	slices.Sort(squares)
	return squares, nil
}

func (gs *GameService) ListGames(ctx context.Context, playerID string) ([]model.GameSummary, error) {
	return gs.gameManager.ListGames(ctx, playerID)
}

func (gs *GameService) RegisterConnection(ctx context.Context, gameID string, playerID string, client *ws.Client) error {
	return gs.gameManager.RegisterConnection(ctx, gameID, playerID, client)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, client *ws.Client) {
	gs.gameManager.UnregisterConnection(gameID, playerID, client)
}
