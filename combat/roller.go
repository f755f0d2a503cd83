package combat

import "math/rand"

// Roller produces uniform rolls in [0,100). Every chance in the engine (crit,
// fumble, dodge, blind) is decided by comparing one roll against a percentage.
type Roller interface {
	Roll() float64
}

// RandRoller is a seeded Roller. Two RandRollers built from the same seed
// produce the same sequence.
type RandRoller struct {
	rng *rand.Rand
}

func NewRoller(seed int64) *RandRoller {
	return &RandRoller{rng: rand.New(rand.NewSource(seed))}
}

func (r *RandRoller) Roll() float64 {
	return r.rng.Float64() * 100
}

// FixedRoller replays Values in order and wraps around. With no values every
// roll is 99.99, which fails any chance below 100%.
type FixedRoller struct {
	Values []float64
	next   int
}

func (r *FixedRoller) Roll() float64 {
	if len(r.Values) == 0 {
		return 99.99
	}
	v := r.Values[r.next%len(r.Values)]
	r.next++
	return v
}

// DeriveSeed mixes a base seed with a salt (a game index, a tick) into a new
// seed using the splitmix64 finalizer, so sibling games never share a stream.
func DeriveSeed(base int64, salt uint64) int64 {
	x := uint64(base) + salt*0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return int64(x ^ (x >> 31))
}
