package game

import (
	"unicode"
	"unicode/utf8"
)

// ChatMessage is one entry of the room chat. Bot messages have a nil
// sender and a nil isDescriber, which the client renders specially.
type ChatMessage struct {
	Sender      *Player `json:"sender"`
	IsBot       bool    `json:"isBot,omitempty"`
	IsDescriber *bool   `json:"isDescriber"`
	Text        string  `json:"text"`
}

func createBotMessage(text string) ChatMessage {
	return ChatMessage{IsBot: true, Text: text}
}

// capitalize upper-cases the first rune of a display name for the
// "<Name> is describing" handoff messages.
func capitalize(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

type joinRoomPayload struct {
	Settings Settings `json:"settings"`
	Player   Player   `json:"player"`
}

type sendMessagePayload struct {
	Message    ChatMessage `json:"message"`
	TargetWord string      `json:"targetWord"`
}

type turnUpdatedPayload struct {
	NextRound int                `json:"nextRound"`
	NextDesc  int                `json:"nextDesc"`
	Players   map[string]*Player `json:"players"`
}

type playerLeftPayload struct {
	DisconnectingPlayer *Player            `json:"disconnectingPlayer"`
	NextDesc            *int               `json:"nextDesc,omitempty"`
	NextRound           *int               `json:"nextRound,omitempty"`
	RemainingPlayers    map[string]*Player `json:"remainingPlayers"`
}

type voiceStreamPayload struct {
	ReceiverId string `json:"receiverId"`
	Signal     any    `json:"signal"`
}

type returnSignalPayload struct {
	SenderConnId string `json:"senderSocketId"`
	Signal       any    `json:"signal"`
}

type roomJoinedPayload struct {
	RoomId string `json:"roomId"`
}

type errorPayload struct {
	Message string `json:"message"`
}
