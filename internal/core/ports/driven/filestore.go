package driven

import "context"

// FileStore reads and writes whole files by locator.
// Locators are plain filesystem paths or storage URLs (file://, mem://).
type FileStore interface {
	// Read returns the content of the file at locator.
	Read(ctx context.Context, locator string) ([]byte, error)

	// Write creates or truncates the file at locator, creating parent
	// directories as needed.
	Write(ctx context.Context, locator string, data []byte) error

	// Exists reports whether a file exists at locator.
	Exists(ctx context.Context, locator string) (bool, error)
}
