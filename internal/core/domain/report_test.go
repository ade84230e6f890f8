package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeReport_Counts(t *testing.T) {
	r := &MergeReport{Sections: []SectionReport{
		{Section: "/project/dependencies", Entries: []EntryResult{
			{Key: "a", Status: EntryAdded},
			{Key: "b", Status: EntryExists},
		}},
		{Section: "/project/properties", Created: true, Entries: []EntryResult{
			{Key: "x", Status: EntryAdded},
		}},
	}}

	assert.Equal(t, 2, r.AddedCount())
	assert.Equal(t, 1, r.ExistingCount())
	assert.Equal(t, []string{"a"}, r.Sections[0].Added())
	assert.Equal(t, []string{"b"}, r.Sections[0].Existing())
	assert.Nil(t, r.Sections[1].Existing())
}

func TestEntryResult_Err(t *testing.T) {
	assert.ErrorIs(t, EntryResult{Status: EntryExists}.Err(), ErrAlreadyExists)
	assert.NoError(t, EntryResult{Status: EntryAdded}.Err())
}

func TestScaffoldReport_AddDocument(t *testing.T) {
	r := &ScaffoldReport{}

	r.AddDocument(nil)
	r.AddDocument(&MergeReport{Locator: "pom.xml"})

	assert.Len(t, r.Documents, 1)
}
