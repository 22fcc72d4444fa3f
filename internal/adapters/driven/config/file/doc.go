// Package file provides file-based configuration for habitsync.
//
// Configuration is stored as TOML in the habitsync config directory
// (default ~/.habitsync/config.toml). Credentials may also come from the
// environment, which always wins over the file; a .env file in the working
// directory is loaded first if present, matching how the tool is deployed
// under cron.
package file
