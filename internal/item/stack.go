// Package item provides item type handles, their registry and the immutable
// stacks handed to players.
package item

import (
	"github.com/KirkDiggler/quakecraft-arsenal/internal/text"
)

// Stack is an immutable quantity of an item with attributes. The zero value
// is the empty stack.
type Stack struct {
	item            *Item
	count           int
	name            *text.Text
	unbreakable     bool
	glint           bool
	customModelData int
	customData      map[string]string
}

// Empty is the stack an empty hand or slot holds
var Empty = Stack{}

// IsEmpty reports whether the stack holds nothing
func (s Stack) IsEmpty() bool {
	return s.item == nil || s.count <= 0
}

// Item returns the stack's item; nil for the empty stack
func (s Stack) Item() *Item {
	if s.IsEmpty() {
		return nil
	}
	return s.item
}

func (s Stack) Count() int {
	if s.IsEmpty() {
		return 0
	}
	return s.count
}

// Name returns the custom name, if one was set
func (s Stack) Name() (text.Text, bool) {
	if s.name == nil {
		return text.Text{}, false
	}
	return *s.name, true
}

func (s Stack) Unbreakable() bool {
	return s.unbreakable
}

// Glint reports whether the enchantment glint is forced on
func (s Stack) Glint() bool {
	return s.glint
}

// CustomModelData returns the resource-pack model selector, 0 when unset
func (s Stack) CustomModelData() int {
	return s.customModelData
}

// CustomData returns one custom data entry
func (s Stack) CustomData(key string) (string, bool) {
	v, ok := s.customData[key]
	return v, ok
}

// WithCustomData returns a copy of the stack with key set. The receiver is
// left untouched.
func (s Stack) WithCustomData(key, value string) Stack {
	data := make(map[string]string, len(s.customData)+1)
	for k, v := range s.customData {
		data[k] = v
	}
	data[key] = value
	s.customData = data
	return s
}

// WithCount returns a copy of the stack holding count items
func (s Stack) WithCount(count int) Stack {
	s.count = count
	return s
}
