//go:build !unix

package render

import "os"

// terminalWidth returns 0 where the window size cannot be queried, falling
// back to DefaultWidth.
func terminalWidth(f *os.File) int {
	return 0
}
