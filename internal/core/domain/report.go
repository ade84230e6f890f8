package domain

// EntryStatus is the outcome of merging one entry.
type EntryStatus string

// Entry outcomes.
const (
	// EntryAdded means the entry was absent and has been inserted.
	EntryAdded EntryStatus = "added"

	// EntryExists means an entry with the same identity was already present.
	EntryExists EntryStatus = "exists"
)

// EntryResult records what happened to one entry.
type EntryResult struct {
	Key    string
	Status EntryStatus
}

// Err returns ErrAlreadyExists for skipped entries and nil otherwise.
func (r EntryResult) Err() error {
	if r.Status == EntryExists {
		return ErrAlreadyExists
	}
	return nil
}

// SectionReport records the outcome of merging one batch.
type SectionReport struct {
	Section string
	Created bool
	Entries []EntryResult
}

// Added returns the keys that were inserted.
func (r SectionReport) Added() []string {
	return r.keys(EntryAdded)
}

// Existing returns the keys that were already present.
func (r SectionReport) Existing() []string {
	return r.keys(EntryExists)
}

func (r SectionReport) keys(status EntryStatus) []string {
	var keys []string
	for _, e := range r.Entries {
		if e.Status == status {
			keys = append(keys, e.Key)
		}
	}
	return keys
}

// MergeReport records the outcome of one load-mutate-save cycle.
type MergeReport struct {
	Locator  string
	Sections []SectionReport

	// Changed is true when the in-memory document differs from the source.
	Changed bool

	// Saved is true when the document was written back.
	Saved bool

	// Diff holds a line diff of the pending change in dry-run mode.
	Diff string
}

// AddedCount returns the number of inserted entries across sections.
func (r *MergeReport) AddedCount() int {
	n := 0
	for _, s := range r.Sections {
		n += len(s.Added())
	}
	return n
}

// ExistingCount returns the number of AlreadyExists signals across sections.
func (r *MergeReport) ExistingCount() int {
	n := 0
	for _, s := range r.Sections {
		n += len(s.Existing())
	}
	return n
}

// ScaffoldReport records everything a scaffolding command did.
type ScaffoldReport struct {
	// Documents holds one report per merged descriptor.
	Documents []*MergeReport

	// Files lists artifacts written (or that would be written in dry-run mode).
	Files []string

	// Warnings lists non-fatal problems, such as a missing descriptor.
	Warnings []string

	// DryRun is true when nothing was written.
	DryRun bool
}

// AddDocument appends a merge report, ignoring nil.
func (r *ScaffoldReport) AddDocument(doc *MergeReport) {
	if doc != nil {
		r.Documents = append(r.Documents, doc)
	}
}
