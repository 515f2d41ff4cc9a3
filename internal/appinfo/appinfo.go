// Package appinfo provides application identity constants.
// These are used across packages for consistent naming.
package appinfo

const (
	// AppName is the display name of the application.
	AppName = "wowlog"

	// DirName is the directory name used for storing application data.
	// Location: %LOCALAPPDATA%/wowlog/ (Windows) or ~/.config/wowlog/ (other)
	DirName = "wowlog"

	// MutexName is the Windows mutex name for single instance control.
	// "Local\" prefix scopes the mutex to the current user session.
	MutexName = "Local\\wowlog"

	// LockFileName is the lock file name for single instance control.
	LockFileName = "wowlog.lock"

	// DatabaseFileName is the SQLite database file name.
	DatabaseFileName = "wowlog.sqlite"

	// CombatLogFileName is the file name the game writes combat logs to.
	CombatLogFileName = "WoWCombatLog.txt"
)
