//go:build !windows

package platform

import (
	"fmt"
	"os"
	"strings"
)

// machineIDPaths are tried in order; the first one that exists and yields
// non-empty trimmed content wins. /etc/machine-id is the systemd-maintained
// stable-per-install identifier on most Linux distributions; the dbus path
// is the pre-systemd fallback carried by older installs.
var machineIDPaths = []string{
	"/etc/machine-id",
	"/var/lib/dbus/machine-id",
}

// HWID returns this host's stable machine identifier, the non-Windows
// analogue of the registry MachineGuid.
func HWID() (string, error) {
	var lastErr error
	for _, path := range machineIDPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			lastErr = err
			continue
		}
		id := strings.TrimSpace(string(data))
		if id != "" {
			return id, nil
		}
		lastErr = fmt.Errorf("%s is empty", path)
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no machine identifier source available")
	}
	return "", lastErr
}
