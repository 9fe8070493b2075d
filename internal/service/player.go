package service

import (
	"strings"
	"sync"
)

const DefaultPlayerName = "Player"

// PlayerNameService holds the display name attached to submitted scores.
// A blank name falls back to the default.
type PlayerNameService interface {
	SetName(name string)
	Current() string
}

type playerNameService struct {
	mu   sync.RWMutex
	name string
}

func NewPlayerNameService(name string) PlayerNameService {
	that := &playerNameService{}
	that.SetName(name)

	return that
}

func (that *playerNameService) SetName(name string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if strings.TrimSpace(name) == "" {
		name = DefaultPlayerName
	}
	that.name = name
}

func (that *playerNameService) Current() string {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.name
}
