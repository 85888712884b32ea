// Copyright 2024 The gannot authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package resources keeps the static example dictionaries the
// annotation UI searches through - Gulf Arabic tag examples, MSA tag
// examples and CODA orthography pairs. The store is loaded from JSON
// files once and treated as immutable; a new store replaces the old
// one wholesale after a repository sync.
package resources

import (
	"fmt"
)

// SegmentType is the morphological role of a token fragment
// in the Gulf example dictionary.
type SegmentType string

const (
	SegmentBaseword  SegmentType = "baseword"
	SegmentEnclitic  SegmentType = "enclitic"
	SegmentProclitic SegmentType = "proclitic"
)

func (st SegmentType) Validate() error {
	if st != SegmentBaseword && st != SegmentEnclitic && st != SegmentProclitic {
		return fmt.Errorf("unknown segment type: %s", st)
	}
	return nil
}

// GulfExample is a single Gulf Arabic dictionary entry. Entries are
// grouped first by segment type, then by POS tag.
type GulfExample struct {
	Baseword string `json:"baseword"`
	Gloss    string `json:"gloss"`
	Clitic   string `json:"clitic"`
	Context  string `json:"context"`
}

// MSAExample is a Modern Standard Arabic dictionary entry,
// grouped directly by POS tag.
type MSAExample struct {
	Segment string `json:"segment"`
	Gloss   string `json:"gloss"`
	Context string `json:"context"`
}

// CODAExample is a raw/normalized orthography pair. CODA examples
// form a flat ordered list with no grouping.
type CODAExample struct {
	Raw     string `json:"raw"`
	Coda    string `json:"coda"`
	Context string `json:"context"`
}

// GulfGroups maps POS tag to examples. Within one segment type
// the POS keys are unique.
type GulfGroups map[string][]GulfExample

// Store is an immutable snapshot of all three example dictionaries.
// A nil map/slice section means "that resource file was absent",
// which searches treat the same as an empty section.
type Store struct {
	Gulf map[SegmentType]GulfGroups
	MSA  map[string][]MSAExample
	CODA []CODAExample
}

// GulfBySegmentType returns the POS groups for the given segment type.
// An unknown or unloaded segment type yields an empty group set.
func (s *Store) GulfBySegmentType(st SegmentType) GulfGroups {
	if s.Gulf == nil {
		return GulfGroups{}
	}
	groups, ok := s.Gulf[st]
	if !ok {
		return GulfGroups{}
	}
	return groups
}

// NumExamples counts entries across all three dictionaries.
// Used for startup logging only.
func (s *Store) NumExamples() int {
	var ans int
	for _, groups := range s.Gulf {
		for _, examples := range groups {
			ans += len(examples)
		}
	}
	for _, examples := range s.MSA {
		ans += len(examples)
	}
	ans += len(s.CODA)
	return ans
}
