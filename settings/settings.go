// Package settings holds the JSON-configured, CLI-overridable options for the stattranslate
// command, mirroring the settings-file/flag-override model the library it was adapted from uses.
package settings

import (
	"encoding/json"
	"errors"
	"os"
)

// SettingsFileName is the default settings file name created by --create-settings and read on
// every other invocation.
const SettingsFileName = "settings-stattranslate.json"

// Settings are taken from SettingsFileName and control where translation files live, which
// language is treated as the default, and how overlay/locale features behave.
//
// Fields tagged `json:"-"` are extra settings added by command-line flags; they are never
// persisted to the settings file.
type Settings struct {
	InputPath       string //The directory containing translation text files
	OverlayPath     string //Optional directory merged over InputPath's files after load; empty disables overlay
	DefaultLanguage string //The language rendered in when --lang is not given
	ManifestPath    string //Optional manifest file listing files to warm the cache with at startup

	Watch        bool   `json:"-"` //Whether to watch InputPath for changes after initial load
	NumberLocale string `json:"-"` //BCP-47 tag for locale-aware number formatting; empty disables it
}

// Default returns the settings a fresh --create-settings file is populated with.
func Default() Settings {
	return Settings{
		InputPath:       "translations",
		DefaultLanguage: "English",
	}
}

// Load reads and validates the settings file at path.
func Load(path string) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, err
	}
	if err := s.check(); err != nil {
		return s, err
	}
	return s, nil
}

// Create writes the default settings to path, failing if it already exists.
func Create(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	e := json.NewEncoder(f)
	e.SetIndent("", "\t")
	return e.Encode(Default())
}

// check validates required settings fields, mirroring the settings-file sanity pass every
// invocation runs before touching the filesystem.
func (s *Settings) check() error {
	if s.InputPath == "" {
		return errors.New("settings: InputPath must not be empty")
	}
	if s.DefaultLanguage == "" {
		return errors.New("settings: DefaultLanguage must not be empty")
	}
	return nil
}
