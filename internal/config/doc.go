// Package config provides configuration structures and utilities for
// decklist: defaults, the optional .decklist YAML file and validation.
package config
