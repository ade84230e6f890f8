package services

import (
	"fmt"
	"sync"

	"github.com/custodia-labs/mplemon/internal/adapters/driven/diff"
	"github.com/custodia-labs/mplemon/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/mplemon/internal/adapters/driven/xmldoc"
	"github.com/custodia-labs/mplemon/internal/core/ports/driven"
)

// recordingLogger keeps formatted messages by level.
type recordingLogger struct {
	mu    sync.Mutex
	debug []string
	info  []string
	warn  []string
}

func (l *recordingLogger) Debug(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debug = append(l.debug, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Info(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.info = append(l.info, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Warn(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warn = append(l.warn, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) warnings() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.warn...)
}

// tree is a comparable snapshot of an element tree.
type tree struct {
	Tag      string
	Text     string
	Children []tree
}

func snapshot(n driven.Node) tree {
	t := tree{Tag: n.Tag(), Text: n.Text()}
	for _, c := range n.Children() {
		t.Children = append(t.Children, snapshot(c))
	}
	return t
}

func mustSnapshot(files *memory.FileStore, locator string) tree {
	doc, err := xmldoc.ParseString(files.Content(locator), 0)
	if err != nil {
		panic(err)
	}
	return snapshot(doc.Root())
}

type mergeFixture struct {
	files *memory.FileStore
	log   *recordingLogger
	svc   *MergeService
}

func newMergeFixture() *mergeFixture {
	files := memory.NewFileStore()
	log := &recordingLogger{}
	svc := NewMergeService(
		xmldoc.NewStore(files),
		xmldoc.NewImporter(),
		diff.NewDiffer(diff.DefaultContext),
		log,
	)
	return &mergeFixture{files: files, log: log, svc: svc}
}
