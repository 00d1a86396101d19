package tsar

import "github.com/google/uuid"

// validateAppID enforces both the length rule the spec names explicitly
// (exactly 36 characters) and UUID shape, recovered from original_source's
// doc comment that the app ID "should be in UUID format." A string that is
// 36 characters but not a well-formed UUID is still malformed; both checks
// resolve to the same invalid_app_id kind.
func validateAppID(appID string) bool {
	if len(appID) != 36 {
		return false
	}
	_, err := uuid.Parse(appID)
	return err == nil
}

// validateClientKeyB64 enforces the exact 124-character base64 length the
// spec requires for an app public key.
func validateClientKeyB64(keyB64 string) bool {
	return len(keyB64) == 124
}
