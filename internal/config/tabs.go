package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Tabs names the spreadsheet tabs the site reads from and appends to.
// Names are matched exactly, emoji included.
type Tabs struct {
	Roster   string `toml:"roster"`
	Feedback string `toml:"feedback"`
	Tips     string `toml:"tips"`
	Vision   string `toml:"vision"`
}

var DefaultTabs = Tabs{
	Roster:   "COX COOP Creator Roster🔥",
	Feedback: "Weekly Feedback & Solutions to X Team 🔥",
	Tips:     "Tips & Tricks for being a Creator on X 💡",
	Vision:   "Vision, Intentions & Accountability 🌌🎨",
}

// LoadTabs reads tab overrides from a TOML file. Keys missing from the
// file keep their default. An empty path returns DefaultTabs.
func LoadTabs(path string) (Tabs, error) {
	tabs := DefaultTabs
	if path == "" {
		return tabs, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return tabs, fmt.Errorf("failed to read tabs file: %w", err)
	}

	var override Tabs
	if err := toml.Unmarshal(b, &override); err != nil {
		return tabs, fmt.Errorf("failed to parse tabs file: %w", err)
	}

	if override.Roster != "" {
		tabs.Roster = override.Roster
	}
	if override.Feedback != "" {
		tabs.Feedback = override.Feedback
	}
	if override.Tips != "" {
		tabs.Tips = override.Tips
	}
	if override.Vision != "" {
		tabs.Vision = override.Vision
	}
	return tabs, nil
}
