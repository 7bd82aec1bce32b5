package ecs

import "reflect"

// Commands buffers structural changes requested by systems during a frame.
// The Scheduler flushes them after the last system has run, so queries never
// observe a half-updated world.
type Commands struct {
	spawns  [][]any
	deletes []EntityId
	adds    []addComponentCommand
	removes []removeComponentCommand
	defers  []func()
}

func newCommands() *Commands {
	return &Commands{}
}

type addComponentCommand struct {
	entity    EntityId
	component any
}

type removeComponentCommand struct {
	entity   EntityId
	compType reflect.Type
}

// Defer queues fn to run at flush time, after all structural changes.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Spawn queues an entity spawn operation with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, components)
}

// Delete queues an entity deletion operation.
func (c *Commands) Delete(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// AddComponent queues a component addition operation.
func (c *Commands) AddComponent(entity EntityId, component any) {
	c.adds = append(c.adds, addComponentCommand{entity: entity, component: component})
}

// RemoveComponent queues a component removal operation.
func (c *Commands) RemoveComponent(entity EntityId, compType reflect.Type) {
	c.removes = append(c.removes, removeComponentCommand{entity: entity, compType: compType})
}

// Len returns the number of queued operations.
func (c *Commands) Len() int {
	return len(c.spawns) + len(c.deletes) + len(c.adds) + len(c.removes) + len(c.defers)
}

// Flush applies the buffer to storage in the order deletes, removes, adds,
// spawns, defers, then empties it. Adds and removes against an entity deleted
// in the same flush are dropped. An entity that changes archetype is followed
// by later operations in the same flush.
func (c *Commands) Flush(storage *Storage) {
	deleted := make(map[EntityId]bool, len(c.deletes))
	moved := make(map[EntityId]EntityId)
	resolve := func(id EntityId) EntityId {
		for {
			next, ok := moved[id]
			if !ok {
				return id
			}
			id = next
		}
	}

	for _, id := range c.deletes {
		storage.Delete(id)
		deleted[id] = true
	}

	for _, cmd := range c.removes {
		if deleted[cmd.entity] {
			continue
		}
		current := resolve(cmd.entity)
		if next := storage.RemoveComponent(current, cmd.compType); next != current {
			delete(moved, next)
			moved[current] = next
		}
	}

	for _, cmd := range c.adds {
		if deleted[cmd.entity] {
			continue
		}
		current := resolve(cmd.entity)
		if current == 0 {
			continue
		}
		if next := storage.AddComponent(current, cmd.component); next != current {
			delete(moved, next)
			moved[current] = next
		}
	}

	for _, components := range c.spawns {
		storage.Spawn(components...)
	}

	for _, fn := range c.defers {
		fn()
	}

	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]
}
