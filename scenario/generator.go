package scenario

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
)

// Generator yields scenarios from the sub-folders of Dir.
//
// In sequential mode folders come in name order; in random mode each pass is
// shuffled. With Loop set the generator starts another pass when one ends.
// A positive Count caps the total; zero or a negative Count means one pass,
// or no limit at all when looping.
type Generator struct {
	Dir    string
	Random bool
	Loop   bool
	Count  int
	// Filter keeps only the folder with exactly this name when set.
	Filter string

	rng     *rand.Rand
	names   []string
	next    int
	yielded int
}

func NewGenerator(dir string, random, loop bool, count int, filter string, seed int64) (*Generator, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list scenarios: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if filter != "" && e.Name() != filter {
			continue
		}
		names = append(names, e.Name())
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no scenarios in %s (filter %q)", dir, filter)
	}
	sort.Strings(names)

	g := &Generator{
		Dir:    dir,
		Random: random,
		Loop:   loop,
		Count:  count,
		Filter: filter,
		rng:    rand.New(rand.NewSource(seed)),
		names:  names,
	}
	g.shuffle()
	return g, nil
}

func (g *Generator) shuffle() {
	if g.Random {
		g.rng.Shuffle(len(g.names), func(i, j int) { g.names[i], g.names[j] = g.names[j], g.names[i] })
	}
}

// Names returns the scenario names of the current pass in yield order.
func (g *Generator) Names() []string {
	return append([]string(nil), g.names...)
}

// Next loads the next scenario. It returns io.EOF once the generator is done.
func (g *Generator) Next() (*Scenario, error) {
	if g.Count > 0 && g.yielded >= g.Count {
		return nil, io.EOF
	}
	if g.next >= len(g.names) {
		if !g.Loop {
			return nil, io.EOF
		}
		g.next = 0
		g.shuffle()
	}
	name := g.names[g.next]
	g.next++
	sc, err := Load(filepath.Join(g.Dir, name))
	if err != nil {
		return nil, err
	}
	g.yielded++
	return sc, nil
}

// Generate collects scenarios until the generator is done. It refuses to
// run an unbounded generator.
func (g *Generator) Generate() ([]*Scenario, error) {
	if g.Count <= 0 && g.Loop {
		return nil, fmt.Errorf("generator is unbounded")
	}
	var out []*Scenario
	for {
		sc, err := g.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, sc)
	}
}
