package model

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/benbeisheim/chessrules-backend/internal/ws"
	"go.uber.org/zap"
)

type Status string

const (
	StatusOngoing   Status = "ongoing"
	StatusCheckmate Status = "checkmate"
	StatusStalemate Status = "stalemate"
)

type Outcome string

const (
	OutcomeNone Outcome = ""
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
	OutcomeDraw Outcome = "draw"
)

// The connections for a specific game
type GameConnections struct {
	clients map[string]*ws.Client // playerID -> client
	mu      sync.RWMutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		clients: make(map[string]*ws.Client),
	}
}

// Game seats two players around a Board and serialises access to it.
type Game struct {
	ID           string
	mu           sync.Mutex
	saveMu       sync.Mutex
	board        *Board
	players      Players
	status       Status
	winner       Color
	acknowledged map[Color]bool
	connections  *GameConnections
	log          *zap.SugaredLogger
}

// GameRecord is the persisted part of a game, read under one lock.
type GameRecord struct {
	Players Players
	Board   Snapshot
	Status  Status
}

// GameState is the view of a game sent to one viewer.
type GameState struct {
	ID          string      `json:"id"`
	Board       Snapshot    `json:"board"`
	ToMove      Color       `json:"toMove"`
	Turn        int         `json:"turn"`
	IsCheck     bool        `json:"isCheck"`
	Status      Status      `json:"status"`
	Winner      Color       `json:"winner,omitempty"`
	Players     Players     `json:"players"`
	ViewerColor Color       `json:"viewerColor,omitempty"`
	Outcome     Outcome     `json:"outcome,omitempty"`
	MoveHistory []string    `json:"moveHistory"`
	LastMove    *SimpleMove `json:"lastMove"`
}

// GameSummary is one entry of a player's game list.
type GameSummary struct {
	ID        string    `json:"id"`
	Players   Players   `json:"players"`
	Color     Color     `json:"color"`
	ToMove    Color     `json:"toMove"`
	Turn      int       `json:"turn"`
	Status    Status    `json:"status"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Summary describes the record as seen by playerID. It reports false when
// playerID holds no seat.
func (r GameRecord) Summary(id, playerID string) (GameSummary, bool) {
	color, ok := r.Players.colorOf(playerID)
	if !ok {
		return GameSummary{}, false
	}
	return GameSummary{
		ID:      id,
		Players: r.Players,
		Color:   color,
		ToMove:  r.Board.ToMove(),
		Turn:    r.Board.Turn,
		Status:  r.Status,
	}, true
}

func NewGame(id string, log *zap.SugaredLogger) *Game {
	return newGame(id, NewStandardBoard(), Players{}, log)
}

// RestoreGame rebuilds a game around an existing board, e.g. one loaded from
// a snapshot.
func RestoreGame(id string, board *Board, players Players, log *zap.SugaredLogger) *Game {
	return newGame(id, board, players, log)
}

func newGame(id string, board *Board, players Players, log *zap.SugaredLogger) *Game {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	players.White.Color = White
	players.Black.Color = Black
	g := &Game{
		ID:           id,
		board:        board,
		players:      players,
		status:       StatusOngoing,
		acknowledged: make(map[Color]bool),
		connections:  NewGameConnections(),
		log:          log.With("game", id),
	}
	g.updateStatus()
	return g
}

// AddPlayer seats playerID, white first. Re-adding a seated player returns
// their colour.
func (g *Game) AddPlayer(playerID string) (Color, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if c, ok := g.players.colorOf(playerID); ok {
		return c, nil
	}
	if g.players.White.ID == "" {
		g.players.White.ID = playerID
		g.log.Infow("player joined", "player", playerID, "color", White)
		return White, nil
	}
	if g.players.Black.ID == "" {
		g.players.Black.ID = playerID
		g.log.Infow("player joined", "player", playerID, "color", Black)
		return Black, nil
	}
	return "", ErrGameFull
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.players.colorOf(playerID)
	return ok
}

func (g *Game) IsFull() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.players.White.ID != "" && g.players.Black.ID != ""
}

func (g *Game) IsOver() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status != StatusOngoing
}

func (g *Game) Status() Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status
}

// Record returns a consistent copy of the persisted state.
func (g *Game) Record() GameRecord {
	g.mu.Lock()
	defer g.mu.Unlock()
	return GameRecord{
		Players: g.players,
		Board:   g.board.Snapshot(),
		Status:  g.status,
	}
}

// Persist hands the current record to save. Calls are serialised, so a
// later Persist never saves an older record than an earlier one.
func (g *Game) Persist(save func(GameRecord) error) error {
	g.saveMu.Lock()
	defer g.saveMu.Unlock()
	return save(g.Record())
}

// AcknowledgeOutcome notes that playerID has been shown the result of a
// finished game. It reports whether both players have now seen it.
func (g *Game) AcknowledgeOutcome(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.status == StatusOngoing {
		return false
	}
	color, ok := g.players.colorOf(playerID)
	if !ok {
		return false
	}
	g.acknowledged[color] = true
	return g.acknowledged[White] && g.acknowledged[Black]
}

// MakeMove validates and commits a move for playerID.
func (g *Game) MakeMove(playerID string, m Move) (Move, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	color, ok := g.players.colorOf(playerID)
	if !ok {
		return Move{}, ErrNotInGame
	}
	if g.players.White.ID == "" || g.players.Black.ID == "" {
		return Move{}, ErrNoOpponent
	}
	if g.status != StatusOngoing {
		return Move{}, ErrGameOver
	}
	if color != g.board.ToMove() {
		return Move{}, ErrNotYourTurn
	}
	if m.From.OnBoard() {
		if p := g.board.At(m.From); p != nil && p.Color != color {
			return Move{}, illegal(m, ErrOpponentPiece)
		}
	}

	applied, err := g.board.CommitMove(m)
	if err != nil {
		g.log.Debugw("move rejected", "player", playerID, "move", m.String(), "error", err)
		return Move{}, err
	}
	g.updateStatus()
	g.log.Infow("move committed",
		"player", playerID,
		"move", applied.Notation,
		"turn", g.board.TurnNumber(),
		"status", g.status,
	)

	g.broadcast()

	return applied, nil
}

// LegalDestinations lists where the piece on pos may move.
func (g *Game) LegalDestinations(pos Position) []Position {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.LegalDestinations(pos)
}

func (g *Game) updateStatus() {
	side := g.board.ToMove()
	if !g.board.IsCheckmate(side) {
		g.status = StatusOngoing
		g.winner = ""
		return
	}
	if g.board.InCheck(side) {
		g.status = StatusCheckmate
		g.winner = side.Opposite()
		return
	}
	g.status = StatusStalemate
	g.winner = ""
}

// State returns the game as seen by viewerID, including whether the game
// has ended for them.
func (g *Game) State(viewerID string) GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state(viewerID)
}

func (g *Game) state(viewerID string) GameState {
	history := g.board.History()
	notations := make([]string, 0, len(history))
	for _, m := range history {
		notations = append(notations, m.Notation)
	}

	s := GameState{
		ID:          g.ID,
		Board:       g.board.Snapshot(),
		ToMove:      g.board.ToMove(),
		Turn:        g.board.TurnNumber(),
		IsCheck:     g.board.InCheck(g.board.ToMove()),
		Status:      g.status,
		Winner:      g.winner,
		Players:     g.players,
		MoveHistory: notations,
	}
	if last, ok := g.board.LastMove(); ok {
		lm := last.simple()
		s.LastMove = &lm
	}
	if color, ok := g.players.colorOf(viewerID); ok {
		s.ViewerColor = color
		s.Outcome = g.outcomeFor(color)
	}
	return s
}

func (g *Game) outcomeFor(c Color) Outcome {
	switch g.status {
	case StatusCheckmate:
		if g.winner == c {
			return OutcomeWin
		}
		return OutcomeLoss
	case StatusStalemate:
		return OutcomeDraw
	}
	return OutcomeNone
}

// RegisterConnection attaches client to playerID and queues the current
// state for it. A second live connection for the same player is refused
// with ErrAlreadyConnected; a closed one is replaced.
func (g *Game) RegisterConnection(playerID string, client *ws.Client) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.connections.mu.Lock()
	if existing, ok := g.connections.clients[playerID]; ok {
		select {
		case <-existing.Done():
		default:
			g.connections.mu.Unlock()
			return ErrAlreadyConnected
		}
	}
	g.connections.clients[playerID] = client
	g.connections.mu.Unlock()
	g.log.Debugw("connection registered", "player", playerID, "client", fmt.Sprintf("%p", client))

	if !g.sendState(playerID, client) {
		g.log.Warnw("failed to queue initial state", "player", playerID)
	}
	return nil
}

// UnregisterConnection detaches client if it is still the one registered
// for playerID.
func (g *Game) UnregisterConnection(playerID string, client *ws.Client) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, exists := g.connections.clients[playerID]; exists && current == client {
		delete(g.connections.clients, playerID)
		g.log.Debugw("connection unregistered", "player", playerID)
	}
}

// broadcast queues every connection its own view of the game. g.mu must be
// held, which keeps states in commit order.
func (g *Game) broadcast() {
	type stale struct {
		playerID string
		client   *ws.Client
	}
	var dropped []stale

	g.connections.mu.RLock()
	for playerID, client := range g.connections.clients {
		if !g.sendState(playerID, client) {
			dropped = append(dropped, stale{playerID, client})
		}
	}
	g.connections.mu.RUnlock()

	for _, d := range dropped {
		g.log.Warnw("dropping connection", "player", d.playerID)
		g.UnregisterConnection(d.playerID, d.client)
		d.client.Close()
	}
}

// sendState queues the state for playerID on client. g.mu must be held.
func (g *Game) sendState(playerID string, client *ws.Client) bool {
	payload, err := json.Marshal(g.state(playerID))
	if err != nil {
		g.log.Errorw("failed to marshal state", "player", playerID, "error", err)
		return true
	}
	return client.Send(ws.Message{
		Type:    ws.MessageTypeGameState,
		Payload: json.RawMessage(payload),
	})
}
