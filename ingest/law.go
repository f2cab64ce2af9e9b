package ingest

import (
	"fmt"
	"path"
)

// initialPatchID marks the first promulgated version of a law
const initialPatchID = "000000000000000"

// LawPatchInfo is one revision of a law in the index file
type LawPatchInfo struct {
	LawID     string `json:"law_id"`
	PatchDate Date   `json:"patch_date"`
	PatchID   string `json:"patch_id,omitempty"`
}

// FilePath returns the directory and file stem of the revision's XML,
// e.g. 335AC0000000105_20240401_505AC0000000052
func (p LawPatchInfo) FilePath() string {
	patchID := p.PatchID
	if patchID == "" {
		patchID = initialPatchID
	}
	return fmt.Sprintf("%s_%s_%s", p.LawID, p.PatchDate.Compact(), patchID)
}

// XMLKey returns the storage key of the revision's XML below lawFolder
func (p LawPatchInfo) XMLKey(lawFolder string) string {
	name := p.FilePath()
	return path.Join(lawFolder, name, name+".xml")
}

// LawInfo is one entry of the law index file
type LawInfo struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Patches []LawPatchInfo `json:"patch"`
}

// SelectPatch returns the latest revision patched strictly before date.
// Among revisions with the same date the first listed wins.
func SelectPatch(patches []LawPatchInfo, date Date) (LawPatchInfo, bool) {
	var selected LawPatchInfo
	found := false
	for _, p := range patches {
		if !p.PatchDate.Before(date) {
			continue
		}
		if !found || p.PatchDate.Compare(selected.PatchDate) > 0 {
			selected = p
			found = true
		}
	}
	return selected, found
}
