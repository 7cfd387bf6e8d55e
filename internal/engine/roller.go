package engine

import (
	"math/rand"
	"time"
)

// Roller is the single source of randomness for combat resolution. Every
// encounter owns one so tests can seed it and assert exact outcomes.
type Roller struct {
	rng *rand.Rand
}

func NewRoller(seed int64) *Roller {
	return &Roller{rng: rand.New(rand.NewSource(seed))}
}

func NewRandomRoller() *Roller {
	return NewRoller(time.Now().UnixNano())
}

// Percent rolls against a chance expressed in percent (e.g. 25 → 25%).
func (r *Roller) Percent(chance float64) bool {
	if chance <= 0 {
		return false
	}
	return r.rng.Float64()*100 < chance
}

// Chance rolls against a probability in [0,1].
func (r *Roller) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	return r.rng.Float64() < p
}

func (r *Roller) Intn(n int) int {
	return r.rng.Intn(n)
}

// Float64 exposes the raw roll for cumulative-table draws.
func (r *Roller) Float64() float64 {
	return r.rng.Float64()
}
