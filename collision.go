package p3

import (
	"github.com/akmonengine/p3/actor"
	"github.com/akmonengine/p3/gjk"
	"go.uber.org/zap"
)

// Contact is a pair of intersecting bodies. BodyA precedes BodyB in World.Bodies.
type Contact struct {
	BodyA *actor.RigidBody
	BodyB *actor.RigidBody
}

// pairQuery is one narrow phase job: written by exactly one worker.
type pairQuery struct {
	Contact
	result gjk.Result
	err    error
}

// BroadPhase returns every pair worth a GJK query, in body order: i < j,
// static/static pairs and pairs with disjoint bounds skipped.
// This is an O(n²) brute-force approach suitable for small numbers of bodies.
//
// Bodies failing actor.Validate have no bounds: their pairs are kept so the
// narrow phase reports them.
func BroadPhase(bodies []*actor.RigidBody, workersCount int) []Contact {
	bounds := make([]actor.AABB, len(bodies))
	valid := make([]bool, len(bodies))
	indexes := make([]int, len(bodies))
	for i := range indexes {
		indexes[i] = i
	}
	task(workersCount, indexes, func(i int) {
		if actor.Validate(bodies[i]) != nil {
			return
		}
		valid[i] = true
		bounds[i] = bodies[i].AABB()
	})

	var pairs []Contact
	for i, a := range bodies {
		for j := i + 1; j < len(bodies); j++ {
			b := bodies[j]
			if a.BodyType == actor.BodyTypeStatic && b.BodyType == actor.BodyTypeStatic {
				continue
			}
			if valid[i] && valid[j] && !bounds[i].Overlaps(bounds[j]) {
				continue
			}
			pairs = append(pairs, Contact{BodyA: a, BodyB: b})
		}
	}

	return pairs
}

// NarrowPhase runs a GJK query on every pair and keeps the intersecting
// ones, in input order. Failed and inconclusive queries are dropped: the
// solver already logged inconclusive ones, invalid colliders are logged here.
func NarrowPhase(solver *gjk.Solver, pairs []Contact, workersCount int, logger *zap.Logger) []Contact {
	queries := make([]*pairQuery, len(pairs))
	for i, p := range pairs {
		queries[i] = &pairQuery{Contact: p}
	}

	task(workersCount, queries, func(q *pairQuery) {
		q.result, q.err = solver.Query(q.BodyA, q.BodyB)
	})

	contacts := make([]Contact, 0, len(queries))
	for _, q := range queries {
		if q.err != nil {
			logger.Warn("collision query rejected",
				zap.Stringer("body_a", q.BodyA.ID),
				zap.Stringer("body_b", q.BodyB.ID),
				zap.Error(q.err),
			)
			continue
		}
		if q.result.Colliding() {
			contacts = append(contacts, q.Contact)
		}
	}

	return contacts
}
