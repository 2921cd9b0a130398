// Package live рассылает обновления турнирной таблицы подключённым зрителям,
// чтобы клиентам не приходилось опрашивать сервер по таймеру.
package live

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"sync"
)

type Message struct {
	Type         string      `json:"type"` // например, "STANDINGS_UPDATED"
	Payload      interface{} `json:"payload"`
	TournamentID int         `json:"tournament_id"`
}

const MessageStandingsUpdated = "STANDINGS_UPDATED"

// Hub держит комнаты зрителей по турнирам. Один экземпляр на процесс,
// раскачивается горутиной Run из main.
type Hub struct {
	Register   chan *Client
	Unregister chan *Client

	rooms  map[string]map[*Client]bool
	mu     sync.RWMutex
	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		rooms:      make(map[string]map[*Client]bool),
		logger:     logger,
	}
}

func roomID(tournamentID int) string {
	return "tournament_" + strconv.Itoa(tournamentID)
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if _, ok := h.rooms[client.room]; !ok {
				h.rooms[client.room] = make(map[*Client]bool)
			}
			h.rooms[client.room][client] = true
			h.logger.Debug("viewer joined", slog.String("room", client.room), slog.Int("viewers", len(h.rooms[client.room])))
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if clients, ok := h.rooms[client.room]; ok {
				if _, okClient := clients[client]; okClient {
					client.closeSend()
					delete(clients, client)
					if len(clients) == 0 {
						delete(h.rooms, client.room)
					}
					h.logger.Debug("viewer left", slog.String("room", client.room))
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastStandings пушит свежую таблицу всем зрителям турнира.
// Вызывается сервисом результатов после каждого принятого результата.
func (h *Hub) BroadcastStandings(tournamentID int, standings interface{}) {
	h.broadcast(tournamentID, Message{
		Type:         MessageStandingsUpdated,
		Payload:      standings,
		TournamentID: tournamentID,
	})
}

func (h *Hub) broadcast(tournamentID int, message Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.rooms[roomID(tournamentID)]
	if !ok {
		return
	}

	messageBytes, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("failed to marshal live message", slog.Int("tournament_id", tournamentID), slog.Any("error", err))
		return
	}

	for client := range clients {
		// Медленного зрителя пропускаем, а не блокируем рассылку.
		client.trySend(messageBytes)
	}
}
