package p3

import (
	"testing"

	"github.com/akmonengine/p3/actor"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type eventCapture struct {
	events []Event
}

func (ec *eventCapture) capture(event Event) {
	ec.events = append(ec.events, event)
}

func (ec *eventCapture) reset() {
	ec.events = ec.events[:0]
}

func (ec *eventCapture) types() []EventType {
	types := make([]EventType, len(ec.events))
	for i, e := range ec.events {
		types[i] = e.Type()
	}
	return types
}

func subscribeAll(events *Events) *eventCapture {
	capture := &eventCapture{}
	for _, eventType := range []EventType{COLLISION_ENTER, COLLISION_STAY, COLLISION_EXIT} {
		events.Subscribe(eventType, capture.capture)
	}
	return capture
}

func TestEvents_Subscribe(t *testing.T) {
	events := NewEvents()
	first := &eventCapture{}
	second := &eventCapture{}

	events.Subscribe(COLLISION_ENTER, first.capture)
	events.Subscribe(COLLISION_ENTER, second.capture)

	a := createSphere(mgl64.Vec3{}, 1, actor.BodyTypeDynamic)
	b := createSphere(mgl64.Vec3{}, 1, actor.BodyTypeDynamic)
	events.recordCollisions([]Contact{{BodyA: a, BodyB: b}})
	events.flush()

	assert.Len(t, first.events, 1)
	assert.Len(t, second.events, 1)
}

func TestEvents_ZeroValue(t *testing.T) {
	var events Events
	capture := subscribeAll(&events)

	a := createSphere(mgl64.Vec3{}, 1, actor.BodyTypeDynamic)
	b := createSphere(mgl64.Vec3{}, 1, actor.BodyTypeDynamic)
	events.recordCollisions([]Contact{{BodyA: a, BodyB: b}})
	events.flush()

	assert.Equal(t, []EventType{COLLISION_ENTER}, capture.types())
}

func TestMakePairKey(t *testing.T) {
	a := createSphere(mgl64.Vec3{}, 1, actor.BodyTypeDynamic)
	b := createSphere(mgl64.Vec3{}, 1, actor.BodyTypeDynamic)
	c := createSphere(mgl64.Vec3{}, 1, actor.BodyTypeDynamic)

	assert.Equal(t, makePairKey(a, b), makePairKey(b, a))
	assert.NotEqual(t, makePairKey(a, b), makePairKey(a, c))
}

func TestEvents_EnterStayExit(t *testing.T) {
	events := NewEvents()
	capture := subscribeAll(&events)

	a := createSphere(mgl64.Vec3{}, 1, actor.BodyTypeDynamic)
	b := createSphere(mgl64.Vec3{}, 1, actor.BodyTypeDynamic)
	contact := []Contact{{BodyA: a, BodyB: b}}

	events.recordCollisions(contact)
	events.flush()
	assert.Equal(t, []EventType{COLLISION_ENTER}, capture.types())

	capture.reset()
	// Substeps may report the same pair several times
	events.recordCollisions(contact)
	events.recordCollisions([]Contact{{BodyA: b, BodyB: a}})
	events.flush()
	assert.Equal(t, []EventType{COLLISION_STAY}, capture.types())

	capture.reset()
	events.flush()
	assert.Equal(t, []EventType{COLLISION_EXIT}, capture.types())

	first, second := capture.events[0].Bodies()
	assert.ElementsMatch(t, []*actor.RigidBody{a, b}, []*actor.RigidBody{first, second})

	capture.reset()
	events.flush()
	assert.Empty(t, capture.events)
}

func TestEvents_DetectionOrder(t *testing.T) {
	events := NewEvents()
	capture := subscribeAll(&events)

	bodies := make([]*actor.RigidBody, 6)
	for i := range bodies {
		bodies[i] = createSphere(mgl64.Vec3{}, 1, actor.BodyTypeDynamic)
	}
	contacts := []Contact{
		{BodyA: bodies[0], BodyB: bodies[1]},
		{BodyA: bodies[2], BodyB: bodies[3]},
		{BodyA: bodies[4], BodyB: bodies[5]},
	}

	events.recordCollisions(contacts)
	events.flush()

	require.Len(t, capture.events, 3)
	for i, event := range capture.events {
		first, second := event.Bodies()
		assert.Equal(t, makePairKey(contacts[i].BodyA, contacts[i].BodyB), makePairKey(first, second))
	}
}

func TestWorld_CollisionEvents(t *testing.T) {
	world := NewWorld(nil)
	world.Gravity = mgl64.Vec3{}
	capture := subscribeAll(&world.Events)

	a := createSphere(mgl64.Vec3{0, 0, 0}, 1, actor.BodyTypeDynamic)
	b := createSphere(mgl64.Vec3{3, 0, 0}, 1, actor.BodyTypeDynamic)
	b.Velocity = mgl64.Vec3{-1, 0, 0}
	require.NoError(t, world.AddBody(a))
	require.NoError(t, world.AddBody(b))

	// x = 2.4, apart
	world.Step(0.6)
	assert.Empty(t, capture.events)

	// x = 1.8, overlapping
	world.Step(0.6)
	assert.Equal(t, []EventType{COLLISION_ENTER}, capture.types())

	capture.reset()
	// x = 1.2
	world.Step(0.6)
	assert.Equal(t, []EventType{COLLISION_STAY}, capture.types())

	capture.reset()
	b.Velocity = mgl64.Vec3{5, 0, 0}
	// x = 4.2
	world.Step(0.6)
	assert.Equal(t, []EventType{COLLISION_EXIT}, capture.types())
}

func TestWorld_RemoveBody_DropsPairs(t *testing.T) {
	world := NewWorld(nil)
	world.Gravity = mgl64.Vec3{}
	capture := subscribeAll(&world.Events)

	a := createSphere(mgl64.Vec3{0, 0, 0}, 1, actor.BodyTypeDynamic)
	b := createSphere(mgl64.Vec3{1, 0, 0}, 1, actor.BodyTypeDynamic)
	require.NoError(t, world.AddBody(a))
	require.NoError(t, world.AddBody(b))

	world.Step(0.1)
	assert.Equal(t, []EventType{COLLISION_ENTER}, capture.types())

	capture.reset()
	world.RemoveBody(b)
	world.Step(0.1)
	assert.Empty(t, capture.events)
}

func TestEventType_String(t *testing.T) {
	assert.Equal(t, "collision_enter", COLLISION_ENTER.String())
	assert.Equal(t, "collision_stay", COLLISION_STAY.String())
	assert.Equal(t, "collision_exit", COLLISION_EXIT.String())
	assert.Equal(t, "unknown", EventType(42).String())
}
