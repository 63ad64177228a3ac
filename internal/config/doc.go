// Package config provides the mdpad configuration.
//
// Settings are resolved in layers, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command line flags      │  ← applied by cmd/mdpad
//	├─────────────────────────────┤
//	│  3. Environment (MDPAD_*)   │
//	├─────────────────────────────┤
//	│  2. Config file (TOML)      │  ← ~/.config/mdpad/config.toml
//	├─────────────────────────────┤
//	│  1. Built-in defaults       │
//	└─────────────────────────────┘
//
// A config file looks like:
//
//	[editor]
//	indent_unit = "  "
//	undo_capacity = 200
//	read_only = false
//
//	[view]
//	line_height_px = 1.0
//	char_width_px = 1.0
//	overscan = 5
//
//	[highlight]
//	fence_languages = true
//	theme = "monokai"
//
//	[log]
//	level = "info"
//	file = ""
//
// Every setting can be overridden from the environment as
// MDPAD_<SECTION>_<KEY>, for example MDPAD_EDITOR_UNDO_CAPACITY=50.
// MDPAD_THEME and MDPAD_READONLY are accepted as short forms. The view
// metrics are floats and must be written with a decimal point.
//
// # Sub-packages
//
//   - loader: TOML file and environment loading into nested maps
package config
