// Package scenario turns scenario folders on disk into ready-to-run games.
//
// A scenario folder holds map.json (obstacles and regen cells), heroes.json
// (team -> role and spawn) and optionally intents.json, a scripted list of
// per-tick orders that makes the game fully replayable.
package scenario

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/brensch/turnshock/game"
)

const (
	MapFile     = "map.json"
	HeroesFile  = "heroes.json"
	IntentsFile = "intents.json"
)

// Cell is an [x, y] pair as written in scenario files.
type Cell [2]int

func (c Cell) Position() game.Position { return game.Pos(c[0], c[1]) }

type MapConfig struct {
	Obstacles []Cell `json:"obstacles"`
	RegenZone []Cell `json:"regen_zone"`
}

// Board builds the board described by the map.
func (m MapConfig) Board() (*game.Board, error) {
	obstacles, err := positions(m.Obstacles, "obstacle")
	if err != nil {
		return nil, err
	}
	regen, err := positions(m.RegenZone, "regen cell")
	if err != nil {
		return nil, err
	}
	return game.NewBoard(obstacles, regen), nil
}

func positions(cells []Cell, what string) ([]game.Position, error) {
	out := make([]game.Position, 0, len(cells))
	for _, c := range cells {
		p := c.Position()
		if !p.InBounds() {
			return nil, fmt.Errorf("%s %s out of bounds", what, p)
		}
		out = append(out, p)
	}
	return out, nil
}

type HeroConfig struct {
	Role string `json:"role"`
	Pos  Cell   `json:"pos"`
}

// HeroSetup maps team ids to the heroes they field.
type HeroSetup map[string][]HeroConfig

// Teams returns team ids sorted, which fixes unit creation order.
func (h HeroSetup) Teams() []string {
	teams := make([]string, 0, len(h))
	for t := range h {
		teams = append(teams, t)
	}
	sort.Strings(teams)
	return teams
}

func LoadMap(path string) (MapConfig, error) {
	var m MapConfig
	if err := readJSON(path, &m); err != nil {
		return MapConfig{}, err
	}
	return m, nil
}

func LoadHeroes(path string) (HeroSetup, error) {
	var h HeroSetup
	if err := readJSON(path, &h); err != nil {
		return nil, err
	}
	if len(h) == 0 {
		return nil, fmt.Errorf("%s: no teams", path)
	}
	return h, nil
}

func readJSON(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// Scenario is one loaded scenario folder.
type Scenario struct {
	Name   string
	Dir    string
	Map    MapConfig
	Heroes HeroSetup
	Script *Script
}

// Load reads the scenario folder at dir. intents.json is optional.
func Load(dir string) (*Scenario, error) {
	m, err := LoadMap(filepath.Join(dir, MapFile))
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", dir, err)
	}
	h, err := LoadHeroes(filepath.Join(dir, HeroesFile))
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", dir, err)
	}
	sc := &Scenario{Name: filepath.Base(dir), Dir: dir, Map: m, Heroes: h}

	scriptPath := filepath.Join(dir, IntentsFile)
	if _, err := os.Stat(scriptPath); err == nil {
		s, err := LoadScript(scriptPath)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", dir, err)
		}
		sc.Script = s
	}
	return sc, nil
}
