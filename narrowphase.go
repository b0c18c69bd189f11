package gekko2d

import "sync"

// narrowPhase runs Detect over the collider pairs of every candidate body pair.
// The output order is pair order, then collider order inside each pair, regardless
// of how many workers run.
type narrowPhase struct {
	workers int
	slots   [][]Manifold
}

func newNarrowPhase(workers int) *narrowPhase {
	if workers < 1 {
		workers = 1
	}
	return &narrowPhase{workers: workers}
}

func (np *narrowPhase) detect(bodies []*Body, pairs []bodyPair, out []Manifold) []Manifold {
	out = out[:0]
	if len(pairs) == 0 {
		return out
	}

	if np.workers == 1 || len(pairs) < np.workers {
		for _, p := range pairs {
			out = detectPair(bodies[p.a], bodies[p.b], out)
		}
		return out
	}

	if cap(np.slots) < len(pairs) {
		np.slots = make([][]Manifold, len(pairs))
	}
	slots := np.slots[:len(pairs)]

	batchSize := (len(pairs) + np.workers - 1) / np.workers
	var wg sync.WaitGroup
	for start := 0; start < len(pairs); start += batchSize {
		end := min(start+batchSize, len(pairs))

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				p := pairs[i]
				slots[i] = detectPair(bodies[p.a], bodies[p.b], slots[i][:0])
			}
		}(start, end)
	}
	wg.Wait()

	for _, slot := range slots {
		out = append(out, slot...)
	}
	return out
}

func detectPair(a, b *Body, out []Manifold) []Manifold {
	for _, ca := range a.colliders {
		for _, cb := range b.colliders {
			if m, ok := Detect(ca, cb); ok {
				out = append(out, m)
			}
		}
	}
	return out
}
