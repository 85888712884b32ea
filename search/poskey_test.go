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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePosKeyComposite(t *testing.T) {
	key := ParsePosKey("NOUN:FS")
	assert.Equal(t, "NOUN", key.Tag)
	assert.Equal(t, []string{"F", "S"}, key.Features)
	assert.True(t, key.IsComposite())
}

func TestParsePosKeyPlain(t *testing.T) {
	key := ParsePosKey("NOUN")
	assert.Equal(t, "NOUN", key.Tag)
	assert.Empty(t, key.Features)
	assert.False(t, key.IsComposite())
}

func TestParsePosKeyEmptyFeaturePart(t *testing.T) {
	key := ParsePosKey("NOUN:")
	assert.Equal(t, "NOUN", key.Tag)
	assert.Empty(t, key.Features)
}

func TestParsePosKeyIsStateless(t *testing.T) {
	first := ParsePosKey("NOUN:FS")
	ParsePosKey("VERB:MP")
	second := ParsePosKey("NOUN:FS")
	assert.Equal(t, first, second)
}

func TestMatchPosPlainApproximate(t *testing.T) {
	assert.True(t, matchPos("NOUN", "NOUN:FS", MatchApproximate))
	assert.True(t, matchPos("OUN", "NOUN", MatchApproximate))
}

func TestMatchPosPlainExact(t *testing.T) {
	assert.True(t, matchPos("NOUN", "NOUN", MatchExact))
	assert.False(t, matchPos("NOUN", "NOUN:FS", MatchExact))
}

func TestMatchPosCompositeFeatureIntersection(t *testing.T) {
	assert.True(t, matchPos("NOUN:F", "NOUN:FS", MatchApproximate))
	// shared tag but disjoint features must not match
	assert.False(t, matchPos("NOUN:F", "NOUN:MS", MatchApproximate))
}

func TestMatchPosCompositeExact(t *testing.T) {
	assert.True(t, matchPos("NOUN:FS", "NOUN:FS", MatchExact))
	assert.True(t, matchPos("NOUN:SF", "NOUN:FS", MatchExact))
	assert.False(t, matchPos("NOUN:F", "NOUN:FS", MatchExact))
}
