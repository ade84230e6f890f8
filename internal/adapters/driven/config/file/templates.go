package file

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/custodia-labs/mplemon/internal/core/domain"
	"github.com/custodia-labs/mplemon/internal/core/ports/driven"
)

// Ensure TemplateStore implements the interface.
var _ driven.TemplateStore = (*TemplateStore)(nil)

// templateExt is the suffix of template files, embedded or on disk.
const templateExt = ".java.tmpl"

//go:embed templates/*.java.tmpl
var defaultTemplates embed.FS

// TemplateStore loads Java source templates from user-editable files on disk,
// falling back to the embedded defaults.
//
// Files are only created on first Load, not in the constructor.
type TemplateStore struct {
	mu       sync.RWMutex
	dir      string
	cache    map[string]string
	initOnce sync.Once
	initErr  error
}

// NewTemplateStore creates a new file-based template store.
// If dir is empty, defaults to ~/.mplemon/templates/.
func NewTemplateStore(dir string) (*TemplateStore, error) {
	if dir == "" {
		base, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(base, "templates")
	}

	return &TemplateStore{
		dir:   dir,
		cache: make(map[string]string),
	}, nil
}

// Load returns the template for name.
// A file in the template directory wins over the embedded default.
func (s *TemplateStore) Load(name string) (string, error) {
	s.initOnce.Do(s.initialise)

	s.mu.RLock()
	if tmpl, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return tmpl, nil
	}
	s.mu.RUnlock()

	tmpl, err := s.loadFromFile(name)
	if err != nil {
		def, defErr := embeddedTemplate(name)
		if defErr != nil {
			return "", defErr
		}
		tmpl = def
	}

	s.mu.Lock()
	if cached, ok := s.cache[name]; ok {
		tmpl = cached
	} else {
		s.cache[name] = tmpl
	}
	s.mu.Unlock()

	return tmpl, nil
}

// Reload clears the template cache, forcing fresh loads from disk.
func (s *TemplateStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the template directory path.
func (s *TemplateStore) Dir() string {
	return s.dir
}

// InitErr returns the error, if any, from creating the template directory.
// Loads still succeed from the embedded defaults when it is set.
func (s *TemplateStore) InitErr() error {
	return s.initErr
}

// initialise creates the template directory with copies of the defaults.
func (s *TemplateStore) initialise() {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		s.initErr = fmt.Errorf("create template directory: %w", err)
		return
	}

	for _, name := range driven.ProviderTemplates() {
		path := filepath.Join(s.dir, name+templateExt)
		if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
			continue
		}
		content, err := embeddedTemplate(name)
		if err != nil {
			s.initErr = err
			return
		}
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			s.initErr = fmt.Errorf("create default template %q: %w", name, err)
			return
		}
	}

	if err := s.createReadme(); err != nil {
		s.initErr = err
	}
}

func (s *TemplateStore) loadFromFile(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name+templateExt))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func embeddedTemplate(name string) (string, error) {
	data, err := defaultTemplates.ReadFile("templates/" + name + templateExt)
	if err != nil {
		return "", fmt.Errorf("template %q: %w", name, domain.ErrNotFound)
	}
	return string(data), nil
}

func (s *TemplateStore) createReadme() error {
	path := filepath.Join(s.dir, "README.md")
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		return nil
	}

	content := `# mplemon templates

Java sources generated by ` + "`mplemon jwtprovider`" + `.

## Files

- ` + "`CypherService.java.tmpl`" + ` - loads jwt-config.json and signs tokens
- ` + "`TokenProviderResource.java.tmpl`" + ` - REST endpoint issuing tokens

## Placeholders

` + "`PACKAGE`" + ` is replaced by the target Java package. Delete a file to get
the built-in version back.
`
	return os.WriteFile(path, []byte(content), 0600)
}
