package events

import (
	"github.com/KirkDiggler/quakecraft-arsenal/internal/entities"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/item"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/weapon"
)

// EventType represents the type of weapon event
type EventType string

// Event is the base interface for all weapon events
type Event interface {
	GetType() EventType
	GetPlayer() *entities.Player
	GetWeapon() *weapon.Weapon
	IsCancelled() bool
	Cancel()
}

// BaseEvent provides common implementation for all events
type BaseEvent struct {
	Type      EventType
	Player    *entities.Player
	Weapon    *weapon.Weapon
	Cancelled bool
}

func (e *BaseEvent) GetType() EventType          { return e.Type }
func (e *BaseEvent) GetPlayer() *entities.Player { return e.Player }
func (e *BaseEvent) GetWeapon() *weapon.Weapon   { return e.Weapon }
func (e *BaseEvent) IsCancelled() bool           { return e.Cancelled }
func (e *BaseEvent) Cancel()                     { e.Cancelled = true }

// GivenEvent is emitted after a weapon stack lands in a player's inventory
type GivenEvent struct {
	BaseEvent
	Stack      item.Stack
	InstanceID string
	Slot       int
}

// ActionEvent carries a primary or secondary use. Before* events may be
// cancelled to block the action; After* events report the hook's result.
type ActionEvent struct {
	BaseEvent
	World      *entities.World
	Hand       entities.Hand
	InstanceID string
	Result     entities.ActionResult
}

// ReloadEvent reports reload progress for one weapon instance
type ReloadEvent struct {
	BaseEvent
	InstanceID string
	Clip       int // Rounds in the clip after the event
	Reserve    int // Rounds left in the pool after the event
}
