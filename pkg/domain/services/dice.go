package services

import "math/rand/v2"

// Roller is the random source for destruction checks
type Roller interface {
	Roll2D6() int
}

// RandomRoller rolls real dice from a seeded PCG source
type RandomRoller struct {
	rng *rand.Rand
}

// NewRandomRoller creates a roller; a zero seed draws a random one
func NewRandomRoller(seed uint64) *RandomRoller {
	if seed == 0 {
		return &RandomRoller{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
	}
	return &RandomRoller{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *RandomRoller) roll1d6() int { return r.rng.IntN(6) + 1 }

// Roll2D6 rolls two six-sided dice
func (r *RandomRoller) Roll2D6() int { return r.roll1d6() + r.roll1d6() }

// FixedRoller replays a fixed sequence of rolls, repeating the last one
type FixedRoller struct {
	rolls []int
	next  int
}

func NewFixedRoller(rolls ...int) *FixedRoller {
	if len(rolls) == 0 {
		rolls = []int{12}
	}
	return &FixedRoller{rolls: rolls}
}

func (r *FixedRoller) Roll2D6() int {
	roll := r.rolls[min(r.next, len(r.rolls)-1)]
	r.next++
	return roll
}
