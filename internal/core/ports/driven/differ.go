package driven

// Differ renders a human-readable line diff between two versions of a file.
type Differ interface {
	// Diff returns a unified-style diff, or "" when before and after are equal.
	Diff(name string, before, after []byte) string
}
