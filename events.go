package p3

import (
	"bytes"

	"github.com/akmonengine/p3/actor"
)

const (
	COLLISION_ENTER EventType = iota
	COLLISION_STAY
	COLLISION_EXIT
)

type pairKey struct {
	bodyA *actor.RigidBody
	bodyB *actor.RigidBody
}

// makePairKey creates a normalized pair key with consistent ordering
func makePairKey(bodyA, bodyB *actor.RigidBody) pairKey {
	if bytes.Compare(bodyB.ID[:], bodyA.ID[:]) < 0 {
		bodyA, bodyB = bodyB, bodyA
	}

	return pairKey{bodyA: bodyA, bodyB: bodyB}
}

type EventType uint8

func (t EventType) String() string {
	switch t {
	case COLLISION_ENTER:
		return "collision_enter"
	case COLLISION_STAY:
		return "collision_stay"
	case COLLISION_EXIT:
		return "collision_exit"
	}
	return "unknown"
}

// Event interface - all events implement this
type Event interface {
	Type() EventType
	Bodies() (*actor.RigidBody, *actor.RigidBody)
}

type CollisionEnterEvent struct {
	BodyA *actor.RigidBody
	BodyB *actor.RigidBody
}

func (e CollisionEnterEvent) Type() EventType { return COLLISION_ENTER }
func (e CollisionEnterEvent) Bodies() (*actor.RigidBody, *actor.RigidBody) {
	return e.BodyA, e.BodyB
}

type CollisionStayEvent struct {
	BodyA *actor.RigidBody
	BodyB *actor.RigidBody
}

func (e CollisionStayEvent) Type() EventType { return COLLISION_STAY }
func (e CollisionStayEvent) Bodies() (*actor.RigidBody, *actor.RigidBody) {
	return e.BodyA, e.BodyB
}

type CollisionExitEvent struct {
	BodyA *actor.RigidBody
	BodyB *actor.RigidBody
}

func (e CollisionExitEvent) Type() EventType { return COLLISION_EXIT }
func (e CollisionExitEvent) Bodies() (*actor.RigidBody, *actor.RigidBody) {
	return e.BodyA, e.BodyB
}

// EventListener - callback for events
type EventListener func(event Event)

// activePairs is an insertion ordered set of pairs.
type activePairs struct {
	order []pairKey
	set   map[pairKey]bool
}

func newActivePairs() activePairs {
	return activePairs{set: make(map[pairKey]bool)}
}

func (a *activePairs) add(pair pairKey) {
	if a.set[pair] {
		return
	}
	a.set[pair] = true
	a.order = append(a.order, pair)
}

func (a *activePairs) remove(body *actor.RigidBody) {
	n := 0
	for _, pair := range a.order {
		if pair.bodyA == body || pair.bodyB == body {
			delete(a.set, pair)
			continue
		}
		a.order[n] = pair
		n++
	}
	a.order = a.order[:n]
}

func (a *activePairs) reset() {
	a.order = a.order[:0]
	clear(a.set)
}

// Events manager
type Events struct {
	// Listeners by event type
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event

	// Collision tracking for Enter/Stay/Exit detection, pairs are kept in
	// detection order so events are emitted deterministically.
	previousActivePairs activePairs
	currentActivePairs  activePairs
}

func NewEvents() Events {
	return Events{
		listeners:           make(map[EventType][]EventListener),
		buffer:              make([]Event, 0, 256),
		previousActivePairs: newActivePairs(),
		currentActivePairs:  newActivePairs(),
	}
}

// ensure makes the zero value usable
func (e *Events) ensure() {
	if e.listeners == nil {
		*e = NewEvents()
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	e.ensure()
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// recordCollisions is called during substeps to record the intersecting pairs
func (e *Events) recordCollisions(contacts []Contact) {
	e.ensure()
	for _, c := range contacts {
		e.currentActivePairs.add(makePairKey(c.BodyA, c.BodyB))
	}
}

// forget drops every pair involving body, no Exit event is emitted for them
func (e *Events) forget(body *actor.RigidBody) {
	e.previousActivePairs.remove(body)
	e.currentActivePairs.remove(body)
}

// processCollisionEvents compares current and previous pairs to detect Enter/Stay/Exit
// Should be called after all substeps
func (e *Events) processCollisionEvents() {
	for _, pair := range e.currentActivePairs.order {
		if e.previousActivePairs.set[pair] {
			e.buffer = append(e.buffer, CollisionStayEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		} else {
			e.buffer = append(e.buffer, CollisionEnterEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		}
	}

	for _, pair := range e.previousActivePairs.order {
		if !e.currentActivePairs.set[pair] {
			e.buffer = append(e.buffer, CollisionExitEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		}
	}

	// Swap for next frame and clear current
	e.previousActivePairs, e.currentActivePairs = e.currentActivePairs, e.previousActivePairs
	e.currentActivePairs.reset()
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	e.ensure()
	e.processCollisionEvents()

	for _, event := range e.buffer {
		for _, listener := range e.listeners[event.Type()] {
			listener(event)
		}
	}
	e.buffer = e.buffer[:0]
}
