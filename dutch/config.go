/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package dutch

const (
	DefaultByePoints     = 1.0
	DefaultMaxSteps      = 50_000_000
	DefaultMaxBacktracks = 10_000
)

type Config struct {
	ByePoints     float64
	InitialColour Colour
	// TotalRounds enables topscorer detection when the final round is
	// paired. Zero means the length of the tournament is unknown.
	TotalRounds   int
	MaxSteps      int
	MaxBacktracks int
	Verbose       bool
}

type Option func(*Config)

func defaultConfig() Config {
	return Config{
		ByePoints:     DefaultByePoints,
		InitialColour: White,
		MaxSteps:      DefaultMaxSteps,
		MaxBacktracks: DefaultMaxBacktracks,
	}
}

func WithByePoints(points float64) Option {
	return func(c *Config) {
		c.ByePoints = points
	}
}

func WithInitialColour(colour Colour) Option {
	return func(c *Config) {
		if colour != NoColour {
			c.InitialColour = colour
		}
	}
}

func WithTotalRounds(rounds int) Option {
	return func(c *Config) {
		c.TotalRounds = rounds
	}
}

func WithMaxSteps(steps int) Option {
	return func(c *Config) {
		c.MaxSteps = steps
	}
}

func WithMaxBacktracks(backtracks int) Option {
	return func(c *Config) {
		c.MaxBacktracks = backtracks
	}
}

func WithVerbose(verbose bool) Option {
	return func(c *Config) {
		c.Verbose = verbose
	}
}
