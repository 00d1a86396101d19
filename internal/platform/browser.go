package platform

import "github.com/pkg/browser"

// OpenBrowser spawns the user's default browser pointed at url and returns
// immediately; the caller must not treat a nil error as proof the browser
// window ever rendered, only that the OS accepted the launch request.
func OpenBrowser(url string) error {
	return browser.OpenURL(url)
}
