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

package search

import (
	"strings"

	"github.com/czcorpus/cnc-gokit/collections"
)

// PosKey is a possibly composite part-of-speech key of the form
// `TAG:FEATURES`, where FEATURES is a set of single-character feature
// codes (e.g. `NOUN:FS` = tag NOUN, features {F, S}).
type PosKey struct {
	Tag      string
	Features []string
}

// ParsePosKey splits a raw POS key into its tag and feature set.
// A value without a feature part yields an empty feature set - this
// is never an error. Duplicate feature characters collapse.
func ParsePosKey(value string) PosKey {
	parts := strings.SplitN(value, ":", 2)
	ans := PosKey{Tag: parts[0]}
	if len(parts) < 2 {
		return ans
	}
	for _, c := range parts[1] {
		f := string(c)
		if !collections.SliceContains(ans.Features, f) {
			ans.Features = append(ans.Features, f)
		}
	}
	return ans
}

// IsComposite reports whether the key carries a feature set.
func (pk PosKey) IsComposite() bool {
	return len(pk.Features) > 0
}

func featureSetsIntersect(fs1, fs2 []string) bool {
	for _, f := range fs1 {
		if collections.SliceContains(fs2, f) {
			return true
		}
	}
	return false
}

func featureSetsEqual(fs1, fs2 []string) bool {
	if len(fs1) != len(fs2) {
		return false
	}
	for _, f := range fs1 {
		if !collections.SliceContains(fs2, f) {
			return false
		}
	}
	return true
}

// matchPos matches a POS query against a candidate key. A
// non-composite query matches against the whole raw key (substring or
// equality, per mode). A composite query is compared part-wise:
// Approximate requires a tag substring match plus a non-empty feature
// intersection, Exact requires both parts to be equal.
func matchPos(query, key string, mode MatchMode) bool {
	q := ParsePosKey(query)
	if !q.IsComposite() {
		return matchString(query, key, mode)
	}
	k := ParsePosKey(key)
	if mode == MatchExact {
		return q.Tag == k.Tag && featureSetsEqual(q.Features, k.Features)
	}
	return strings.Contains(k.Tag, q.Tag) && featureSetsIntersect(q.Features, k.Features)
}
