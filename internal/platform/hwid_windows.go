//go:build windows

package platform

import (
	"fmt"

	"golang.org/x/sys/windows/registry"
)

// HWID reads the machine's stable cryptographic GUID from the registry.
// This value survives reinstalls of the application but is regenerated by
// a full OS reimage, matching the "stable-per-install identifier"
// requirement.
func HWID() (string, error) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, `SOFTWARE\Microsoft\Cryptography`, registry.QUERY_VALUE|registry.WOW64_64KEY)
	if err != nil {
		return "", fmt.Errorf("open Cryptography key: %w", err)
	}
	defer k.Close()

	guid, _, err := k.GetStringValue("MachineGuid")
	if err != nil {
		return "", fmt.Errorf("read MachineGuid: %w", err)
	}
	if guid == "" {
		return "", fmt.Errorf("MachineGuid is empty")
	}
	return guid, nil
}
