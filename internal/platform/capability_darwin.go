//go:build darwin

package platform

import (
	"database/sql"
	"os"
	"os/exec"
	"path/filepath"

	_ "modernc.org/sqlite"

	"pomobar/internal/core/shortcut"
)

const accessibilityPane = "x-apple.systempreferences:com.apple.preference.security?Privacy_Accessibility"

type capabilityProbe struct{}

func newCapabilityProbe() shortcut.CapabilityProbe {
	return capabilityProbe{}
}

// IsGranted reads the user TCC database for an accessibility entry naming
// this executable. Any failure reads as "not granted".
func (capabilityProbe) IsGranted() bool {
	home, err := os.UserHomeDir()
	if err != nil {
		return false
	}
	executable, err := os.Executable()
	if err != nil {
		return false
	}

	path := filepath.Join(home, "Library", "Application Support", "com.apple.TCC", "TCC.db")
	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return false
	}
	defer db.Close()

	var auth int
	err = db.QueryRow(
		`SELECT auth_value FROM access
		 WHERE service = 'kTCCServiceAccessibility' AND client = ?`,
		executable,
	).Scan(&auth)
	if err != nil {
		return false
	}
	// auth_value 2 is "allowed".
	return auth == 2
}

// Request opens the Accessibility pane of System Settings.
func (capabilityProbe) Request() {
	_ = exec.Command("open", accessibilityPane).Start()
}
