// Package config loads keychord's settings from a TOML file.
//
// A missing file yields Default. Environment variables prefixed with
// KEYCHORD_ override the file:
//
//	KEYCHORD_DEFAULT_MODE   default_mode
//	KEYCHORD_LOG_LEVEL      log.level
//	KEYCHORD_LOG_FORMAT     log.format
//	KEYCHORD_MACROS_FILE    macros_file
//
// # Key remaps
//
// The [keys] table binds further key sequences per mode to the named
// actions of that mode's command table:
//
//	[[keys.normal]]
//	keys = "ctrl+h"
//	command = "cursor.move"
//	args = { motion = "left" }
//
//	[[keys.insert]]
//	keys = "ctrl+u"
//	command = "edit.insertText"
//	args = { text = "ü" }
package config
