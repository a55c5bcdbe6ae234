package controller

import (
	"errors"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type GameController struct {
	gameService *service.GameService
	log         *zap.SugaredLogger
}

func NewGameController(gameService *service.GameService, log *zap.SugaredLogger) *GameController {
	return &GameController{gameService: gameService, log: log}
}

// Register mounts the game routes on r.
func (gc *GameController) Register(r fiber.Router) {
	r.Get("/", gc.ListGames)
	r.Post("/matchmaking/join", gc.JoinMatchmaking)
	r.Post("/create", gc.CreateGame)
	r.Post("/join/:gameId", gc.JoinGame)
	r.Get("/:gameId", gc.GetGameState)
	r.Post("/:gameId/move", gc.MakeMove)
	r.Get("/:gameId/moves/:square", gc.LegalMoves)
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	gameID, err := gc.gameService.CreateGame(c.UserContext())
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	color, err := gc.gameService.JoinGame(c.UserContext(), gameID, playerID)
	if err != nil {
		return gc.fail(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	gameState, err := gc.gameService.GetGameState(c.UserContext(), gameID, playerID)
	if err != nil {
		return gc.fail(c, err)
	}

	return c.JSON(gameState)
}

// ListGames returns the caller's games.
func (gc *GameController) ListGames(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	games, err := gc.gameService.ListGames(c.UserContext(), playerID)
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"games": games,
	})
}

func (gc *GameController) JoinMatchmaking(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	gameID, color, err := gc.gameService.JoinMatchmaking(c.UserContext(), playerID)
	if err != nil {
		return gc.fail(c, err)
	}

	return c.JSON(fiber.Map{
		"game_id": gameID,
		"color":   color,
	})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	var req model.MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid move body",
		})
	}

	move, err := gc.gameService.HandleMove(c.UserContext(), gameID, playerID, req)
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"move":     move.Notation,
		"from":     move.From.String(),
		"to":       move.To.String(),
		"captured": move.Captured != nil,
	})
}

func (gc *GameController) LegalMoves(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	squares, err := gc.gameService.LegalDestinations(c.UserContext(), gameID, c.Params("square"))
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"square":       c.Params("square"),
		"destinations": squares,
	})
}

func (gc *GameController) fail(c *fiber.Ctx, err error) error {
	status := errorStatus(err)
	if status == fiber.StatusInternalServerError {
		gc.log.Errorw("request failed", "path", c.Path(), "error", err)
		return c.Status(status).JSON(fiber.Map{
			"error": "internal error",
		})
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, model.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrNotInGame):
		return fiber.StatusForbidden
	case errors.Is(err, model.ErrNotYourTurn),
		errors.Is(err, model.ErrGameOver),
		errors.Is(err, model.ErrGameFull),
		errors.Is(err, model.ErrGameExists),
		errors.Is(err, model.ErrAlreadyConnected),
		errors.Is(err, model.ErrNoOpponent):
		return fiber.StatusConflict
	case errors.Is(err, model.ErrIllegalMove),
		errors.Is(err, model.ErrInvalidNotation):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}
