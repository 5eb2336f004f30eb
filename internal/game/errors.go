package game

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExists   = errors.New("session already exists")
	ErrCharacterOnline = errors.New("character is already online")
	ErrPlayerExists    = errors.New("player already exists")
	ErrNegativeAmount  = errors.New("amount must not be negative")
)
