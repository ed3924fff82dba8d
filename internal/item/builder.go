package item

import (
	"github.com/KirkDiggler/quakecraft-arsenal/internal/text"
)

// StackBuilder helps create item stacks
type StackBuilder struct {
	stack Stack
}

// Of starts a builder for a single item of the given type
func Of(it *Item) *StackBuilder {
	return &StackBuilder{
		stack: Stack{
			item:  it,
			count: 1,
		},
	}
}

// SetCount sets the stack size
func (b *StackBuilder) SetCount(count int) *StackBuilder {
	b.stack.count = count
	return b
}

// SetName sets the custom display name
func (b *StackBuilder) SetName(name text.Text) *StackBuilder {
	b.stack.name = &name
	return b
}

// SetUnbreakable marks the stack as never taking durability damage
func (b *StackBuilder) SetUnbreakable() *StackBuilder {
	b.stack.unbreakable = true
	return b
}

// AddGlint forces the enchantment glint
func (b *StackBuilder) AddGlint() *StackBuilder {
	b.stack.glint = true
	return b
}

// SetCustomModelData sets the resource-pack model selector
func (b *StackBuilder) SetCustomModelData(data int) *StackBuilder {
	b.stack.customModelData = data
	return b
}

// SetCustomData attaches a string entry to the stack
func (b *StackBuilder) SetCustomData(key, value string) *StackBuilder {
	b.stack = b.stack.WithCustomData(key, value)
	return b
}

// Build returns the constructed stack. Every call returns an independent
// value; further builder calls never reach a stack already built.
func (b *StackBuilder) Build() Stack {
	out := b.stack
	if out.name != nil {
		name := *out.name
		out.name = &name
	}
	if out.customData != nil {
		data := make(map[string]string, len(out.customData))
		for k, v := range out.customData {
			data[k] = v
		}
		out.customData = data
	}
	return out
}
