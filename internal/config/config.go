// Package config reads process settings from the environment, after an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Garsondee/threadweaver/internal/store"
)

// Environment keys.
const (
	EnvDataPath = "THREADWEAVER_DATA"
	EnvSeed     = "THREADWEAVER_SEED"
	EnvWindow   = "THREADWEAVER_WINDOW"
)

const (
	defaultWindowW = 1280
	defaultWindowH = 720
)

// Settings are the process-level knobs. Gameplay tuning lives in game.Config.
type Settings struct {
	DataPath string
	Seed     int64
	HasSeed  bool // false means seed from the clock
	WindowW  int
	WindowH  int
}

// Default returns settings with no environment applied.
func Default() Settings {
	return Settings{
		DataPath: store.DefaultPath(),
		WindowW:  defaultWindowW,
		WindowH:  defaultWindowH,
	}
}

// Load applies the given .env files (".env" when none are named) and then
// reads the environment. Missing .env files are not an error; variables
// already set in the environment win over file values.
func Load(files ...string) (Settings, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Default(), fmt.Errorf("load env file: %w", err)
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds settings from an environment lookup function.
func FromLookup(lookup func(string) (string, bool)) (Settings, error) {
	s := Default()

	if v, ok := lookup(EnvDataPath); ok && strings.TrimSpace(v) != "" {
		s.DataPath = strings.TrimSpace(v)
	}

	if v, ok := lookup(EnvSeed); ok && strings.TrimSpace(v) != "" {
		seed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return s, fmt.Errorf("%s: %w", EnvSeed, err)
		}
		s.Seed, s.HasSeed = seed, true
	}

	if v, ok := lookup(EnvWindow); ok && strings.TrimSpace(v) != "" {
		w, h, err := ParseWindow(v)
		if err != nil {
			return s, fmt.Errorf("%s: %w", EnvWindow, err)
		}
		s.WindowW, s.WindowH = w, h
	}
	return s, nil
}

// ParseWindow parses "WxH" into positive dimensions.
func ParseWindow(v string) (w, h int, err error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(v)), "x")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("window %q: want WxH", v)
	}
	if w, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, fmt.Errorf("window width: %w", err)
	}
	if h, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, fmt.Errorf("window height: %w", err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("window %q: dimensions must be positive", v)
	}
	return w, h, nil
}
