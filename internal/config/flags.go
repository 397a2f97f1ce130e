package config

import (
	"strings"

	"github.com/spf13/pflag"
)

// AddFlags registers the puzzle flags shared by every subcommand.
func AddFlags(fs *pflag.FlagSet) {
	fs.StringP("config", "c", "", "path to a YAML puzzle file")
	fs.String("carrier", "", "identifier of the carrier (default farmer)")
	fs.StringSlice("items", nil, "comma separated item identifiers")
	fs.StringArray("group", nil, "comma separated incompatible items, repeat for several groups")
	fs.Int("min-moves", 0, "smallest move budget to try (default 1)")
	fs.Int("max-moves", 0, "largest move budget to try (default 32)")
	fs.String("solver", "", "decision backend: gini or gophersat (default gini)")
}

// FromFlags builds a PuzzleConfig from the file named by --config, or
// the classic puzzle, then applies every flag the user set.
func FromFlags(fs *pflag.FlagSet) (*PuzzleConfig, error) {
	c := Default()
	path, err := fs.GetString("config")
	if err != nil {
		return nil, err
	}
	if path != "" {
		if c, err = Load(path); err != nil {
			return nil, err
		}
	}

	if fs.Changed("carrier") {
		if c.Carrier, err = fs.GetString("carrier"); err != nil {
			return nil, err
		}
	}
	if fs.Changed("items") {
		if c.Items, err = fs.GetStringSlice("items"); err != nil {
			return nil, err
		}
		// groups of the previous item set rarely make sense
		if !fs.Changed("group") {
			c.Groups = nil
		}
	}
	if fs.Changed("group") {
		groups, err := fs.GetStringArray("group")
		if err != nil {
			return nil, err
		}
		c.Groups = nil
		for _, group := range groups {
			members := strings.Split(group, ",")
			for i := range members {
				members[i] = strings.TrimSpace(members[i])
			}
			c.Groups = append(c.Groups, members)
		}
	}
	if fs.Changed("min-moves") {
		if c.MinMoves, err = fs.GetInt("min-moves"); err != nil {
			return nil, err
		}
	}
	if fs.Changed("max-moves") {
		if c.MaxMoves, err = fs.GetInt("max-moves"); err != nil {
			return nil, err
		}
	}
	if fs.Changed("solver") {
		if c.Solver, err = fs.GetString("solver"); err != nil {
			return nil, err
		}
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
