package entities

import (
	"sync"

	"github.com/KirkDiggler/quakecraft-arsenal/internal/item"
)

// Player is a connected participant of a match
type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Locale string `json:"locale"` // BCP 47 tag, e.g. "fr-FR"

	mu        sync.RWMutex
	inventory []item.Stack
	hands     map[Hand]int // Hand -> inventory slot
}

// NewPlayer creates a player with an empty inventory
func NewPlayer(id, name, locale string) *Player {
	return &Player{
		ID:     id,
		Name:   name,
		Locale: locale,
		hands:  make(map[Hand]int),
	}
}

// Give appends a stack to the inventory and returns its slot.
// The first stack given goes to the main hand.
func (p *Player) Give(stack item.Stack) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.inventory = append(p.inventory, stack)
	slot := len(p.inventory) - 1
	if _, ok := p.hands[HandMain]; !ok {
		p.hands[HandMain] = slot
	}
	return slot
}

// Hold puts the stack in slot into hand
func (p *Player) Hold(hand Hand, slot int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if slot < 0 || slot >= len(p.inventory) {
		return false
	}
	p.hands[hand] = slot
	return true
}

// StackInHand returns the stack held in hand, or item.Empty
func (p *Player) StackInHand(hand Hand) item.Stack {
	p.mu.RLock()
	defer p.mu.RUnlock()

	slot, ok := p.hands[hand]
	if !ok || slot >= len(p.inventory) {
		return item.Empty
	}
	return p.inventory[slot]
}

// Inventory returns a copy of the inventory slots
func (p *Player) Inventory() []item.Stack {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]item.Stack, len(p.inventory))
	copy(out, p.inventory)
	return out
}
