package ws

import (
	"encoding/json"
	"log"
)

// Event is the frame fanned out to channel subscribers.
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type membership struct {
	client  *Client
	channel string
}

type broadcast struct {
	channel string
	payload []byte
}

// Hub tracks which clients are joined to which channels and fans
// events out to them. All state is owned by the Run goroutine;
// everything else talks to it over channels. Delivery is best-effort:
// events for a channel nobody is joined to are dropped, and a client
// that cannot keep up is disconnected and must re-fetch state.
type Hub struct {
	rooms map[string]map[*Client]bool

	unregister chan *Client
	join       chan membership
	leave      chan membership
	events     chan broadcast
}

// NewHub creates an idle hub; call Run on its own goroutine.
func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		unregister: make(chan *Client),
		join:       make(chan membership),
		leave:      make(chan membership),
		events:     make(chan broadcast),
	}
}

// Run owns the room state until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.unregister:
			h.dropClient(client)

		case m := <-h.join:
			room := h.rooms[m.channel]
			if room == nil {
				room = make(map[*Client]bool)
				h.rooms[m.channel] = room
			}
			room[m.client] = true
			m.client.channels[m.channel] = true

		case m := <-h.leave:
			h.removeFromRoom(m.client, m.channel)
			delete(m.client.channels, m.channel)

		case b := <-h.events:
			for client := range h.rooms[b.channel] {
				select {
				case client.send <- b.payload:
				default:
					// Slow consumer; cut it loose rather than block
					// the fan-out loop.
					h.dropClient(client)
				}
			}
		}
	}
}

// Publish fans an event out to every subscriber currently joined to
// the channel. Callers must invoke it only after the triggering
// mutation has committed. The events channel is unbuffered: Publish
// returns only once the run loop has taken the event, so a client that
// joins afterwards can never receive it.
func (h *Hub) Publish(channel, event string, data interface{}) {
	payload, err := json.Marshal(Event{Event: event, Data: data})
	if err != nil {
		log.Printf("Warning: Failed to encode %s event: %v", event, err)
		return
	}
	h.events <- broadcast{channel: channel, payload: payload}
}

func (h *Hub) dropClient(client *Client) {
	for channel := range client.channels {
		h.removeFromRoom(client, channel)
	}
	client.closeOnce.Do(func() { close(client.send) })
}

func (h *Hub) removeFromRoom(client *Client, channel string) {
	room := h.rooms[channel]
	if room == nil {
		return
	}
	delete(room, client)
	if len(room) == 0 {
		delete(h.rooms, channel)
	}
}
