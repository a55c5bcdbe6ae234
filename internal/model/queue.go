package model

import (
	"sync"
	"time"
)

type QueuedGame struct {
	GameID   string
	Host     string
	QueuedAt time.Time
}

// Queue holds games that have one seat taken, oldest first.
type Queue struct {
	games []QueuedGame
	mu    sync.Mutex
}

func NewQueue() *Queue {
	return &Queue{
		games: []QueuedGame{},
	}
}

func (q *Queue) Add(gameID, host string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, g := range q.games {
		if g.GameID == gameID {
			return
		}
	}
	q.games = append(q.games, QueuedGame{GameID: gameID, Host: host, QueuedAt: time.Now()})
}

// Next removes and returns the oldest game not hosted by playerID.
func (q *Queue) Next(playerID string) (QueuedGame, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, g := range q.games {
		if g.Host == playerID {
			continue
		}
		q.games = append(q.games[:i], q.games[i+1:]...)
		return g, true
	}
	return QueuedGame{}, false
}

func (q *Queue) Remove(gameID string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, g := range q.games {
		if g.GameID == gameID {
			q.games = append(q.games[:i], q.games[i+1:]...)
			return
		}
	}
}

func (q *Queue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.games)
}
