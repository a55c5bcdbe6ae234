package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/service"
	"github.com/benbeisheim/chessrules-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

type WebSocketController struct {
	gameService *service.GameService
	log         *zap.SugaredLogger
}

func NewWebSocketController(gameService *service.GameService, log *zap.SugaredLogger) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
		log:         log,
	}
}

// HandleConnection is called when a new WebSocket connection is established.
// The read loop runs here; every write goes through one ws.Client.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)
	log := wsc.log.With("game", gameID, "player", playerID)
	ctx := context.Background()

	client := ws.NewClient(c, ws.DefaultSendBuffer)
	if err := wsc.gameService.RegisterConnection(ctx, gameID, playerID, client); err != nil {
		log.Warnw("failed to register connection", "error", err)
		wsc.reject(log, c, err)
		return
	}

	go func() {
		if err := client.Run(); err != nil {
			log.Debugw("write error", "error", err)
		}
	}()

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugw("read error", "error", err)
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Debugw("parse error", "error", err)
			wsc.sendError(log, client, "malformed message")
			continue
		}

		if err := wsc.handleMessage(ctx, gameID, playerID, msg); err != nil {
			log.Debugw("handle error", "error", err)
			wsc.sendError(log, client, err.Error())
		}
	}

	wsc.gameService.UnregisterConnection(gameID, playerID, client)
	client.Close()
	client.Wait()
}

func (wsc *WebSocketController) handleMessage(ctx context.Context, gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var req model.MoveRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return err
		}
		_, err := wsc.gameService.HandleMove(ctx, gameID, playerID, req)
		return err
	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

// reject answers a connection that was never registered. Nothing else writes
// to it, so it is written directly.
func (wsc *WebSocketController) reject(log *zap.SugaredLogger, c *websocket.Conn, cause error) {
	if errors.Is(cause, model.ErrAlreadyConnected) {
		// keep the healthy connection, refuse the new one
		if err := c.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "Connection already exists"),
		); err != nil {
			log.Debugw("failed to send close", "error", err)
		}
	} else if err := c.WriteJSON(ws.ErrorMessage(cause.Error())); err != nil {
		log.Debugw("failed to send error", "error", err)
	}
	if err := c.Close(); err != nil {
		log.Debugw("failed to close connection", "error", err)
	}
}

func (wsc *WebSocketController) sendError(log *zap.SugaredLogger, client *ws.Client, errorMsg string) {
	if !client.Send(ws.ErrorMessage(errorMsg)) {
		log.Debugw("failed to queue error", "error", errorMsg)
	}
}
