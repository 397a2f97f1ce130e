package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/operator-framework/ferryman/pkg/ferry"
)

const (
	DefaultMinMoves = 1
	DefaultMaxMoves = 32
	DefaultSolver   = "gini"
)

// PuzzleConfig is the on-disk description of a puzzle and of the
// range of move budgets to search.
type PuzzleConfig struct {
	Carrier  string     `yaml:"carrier"`
	Items    []string   `yaml:"items"`
	Groups   [][]string `yaml:"groups,omitempty"`
	MinMoves int        `yaml:"min_moves,omitempty"`
	MaxMoves int        `yaml:"max_moves,omitempty"`
	Solver   string     `yaml:"solver,omitempty"` // gini or gophersat
}

// Default returns the farmer, wolf, goat and cabbage puzzle searched
// from 1 to 32 moves.
func Default() *PuzzleConfig {
	p := ferry.Classic()
	c := &PuzzleConfig{
		Carrier:  string(p.Carrier),
		MinMoves: DefaultMinMoves,
		MaxMoves: DefaultMaxMoves,
		Solver:   DefaultSolver,
	}
	for _, item := range p.Items {
		c.Items = append(c.Items, string(item))
	}
	for _, group := range p.Groups {
		g := make([]string, len(group))
		for i, member := range group {
			g[i] = string(member)
		}
		c.Groups = append(c.Groups, g)
	}
	return c
}

// Load reads and validates a puzzle file.
func Load(path string) (*PuzzleConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(bytes.NewReader(data))
}

// Parse decodes a puzzle from YAML. Unknown keys are rejected and
// missing search bounds are defaulted.
func Parse(r io.Reader) (*PuzzleConfig, error) {
	var config PuzzleConfig
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *PuzzleConfig) applyDefaults() {
	if c.MinMoves == 0 {
		c.MinMoves = DefaultMinMoves
	}
	if c.MaxMoves == 0 {
		c.MaxMoves = DefaultMaxMoves
	}
	if c.Solver == "" {
		c.Solver = DefaultSolver
	}
}

// Validate checks the search bounds and the puzzle itself. Errors are
// *ferry.InvalidConfiguration values.
func (c *PuzzleConfig) Validate() error {
	if c.MinMoves < 1 {
		return ferry.Invalid("min_moves must be >= 1, got %d", c.MinMoves)
	}
	if c.MaxMoves < c.MinMoves {
		return ferry.Invalid("max_moves (%d) must be >= min_moves (%d)", c.MaxMoves, c.MinMoves)
	}
	return c.Puzzle().Validate()
}

// Puzzle converts the configuration to a ferry.Puzzle.
func (c *PuzzleConfig) Puzzle() ferry.Puzzle {
	p := ferry.Puzzle{Carrier: ferry.Identifier(c.Carrier)}
	for _, item := range c.Items {
		p.Items = append(p.Items, ferry.Identifier(item))
	}
	for _, group := range c.Groups {
		g := make(ferry.Group, len(group))
		for i, member := range group {
			g[i] = ferry.Identifier(member)
		}
		p.Groups = append(p.Groups, g)
	}
	return p
}
