package game

import "errors"

var (
	ErrRoomNotFound      = errors.New("room not found")
	ErrPlayerNotFound    = errors.New("player not found")
	ErrDescriberNotFound = errors.New("describer not found")
	ErrReceiverNotFound  = errors.New("receiver not found")
	ErrRoomFull          = errors.New("room full")
	ErrNoPlayersRemain   = errors.New("no players remain")
	ErrInvalidSettings   = errors.New("invalid settings")
)
