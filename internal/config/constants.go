package config

import "time"

// Base application details
const AppName = "slate"
const ConfigDirName = "slate"
const DefaultConfigFileName = "config.toml"
const DefaultStyleFileName = "style.toml" // Surface style sheet
const DefaultLogFileName = "slate.log"

// Gesture timing
const DefaultLongPressTimeout = 500 * time.Millisecond
const DefaultDoubleTapTimeout = 300 * time.Millisecond

// Handle geometry (surface units). The touch tolerance is deliberately large
// relative to the visual handle so imprecise finger taps still land.
const DefaultHandleTolerance = 24.0
const DefaultHandleOffset = 12.0 // vertical drop of a handle below its text line

// Editing
const DefaultMaxHistory = 100 // combined undo+redo snapshot capacity per field
const SystemClipboard = true

// Persistence
const DefaultSaveDebounce = 750 * time.Millisecond
