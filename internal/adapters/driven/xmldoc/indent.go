package xmldoc

import "bytes"

// indentation describes how a document is indented.
type indentation struct {
	width int
	tabs  bool
}

// detectIndent infers the indentation unit of an XML source from the lines
// that start with markup. Tab-indented sources keep tabs; otherwise the unit
// is the GCD of all leading space runs. Returns ok=false when there is no
// evidence (single-line documents, no indented markup).
func detectIndent(b []byte) (indentation, bool) {
	lines := bytes.Split(b, []byte("\n"))

	indents := []int{}
	for _, ln := range lines {
		ln = bytes.TrimRight(ln, "\r")
		trimmed := bytes.TrimLeft(ln, " \t")
		if len(trimmed) == 0 || trimmed[0] != '<' {
			continue
		}
		if ln[0] == '\t' {
			return indentation{tabs: true}, true
		}
		if n := leadingSpaces(ln); n > 0 {
			indents = append(indents, n)
		}
	}

	if len(indents) == 0 {
		return indentation{}, false
	}

	// Find the GCD of all indents to get base indent
	result := indents[0]
	for i := 1; i < len(indents); i++ {
		result = gcd(result, indents[i])
		if result == 1 {
			break
		}
	}

	if result > 0 && result <= 8 {
		return indentation{width: result}, true
	}
	return indentation{}, false
}

func gcd(a, b int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func leadingSpaces(line []byte) int {
	i := 0
	for i < len(line) && line[i] == ' ' {
		i++
	}
	return i
}
