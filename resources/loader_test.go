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

package resources

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testGulfJSON = `{
	"baseword": {
		"NOUN": [
			{"baseword": "كتاب", "gloss": "book", "context": "هذا كتاب"}
		]
	},
	"enclitic": {
		"PRON": [
			{"clitic": "ها", "gloss": "her"}
		]
	}
}`

const testCODAJSON = `[
	{"raw": "هاد", "coda": "هذا"}
]`

func testConf(dir string) *Conf {
	return &Conf{
		Dir:      dir,
		GulfFile: "gulf_tag_examples.json",
		MSAFile:  "msa_tag_examples.json",
		CODAFile: "coda_examples.json",
	}
}

func TestLoadAllSections(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(
		filepath.Join(dir, "gulf_tag_examples.json"), []byte(testGulfJSON), 0644))
	assert.NoError(t, os.WriteFile(
		filepath.Join(dir, "coda_examples.json"), []byte(testCODAJSON), 0644))

	store, err := Load(testConf(dir))
	assert.NoError(t, err)
	assert.Len(t, store.GulfBySegmentType(SegmentBaseword)["NOUN"], 1)
	assert.Equal(t, "كتاب", store.GulfBySegmentType(SegmentBaseword)["NOUN"][0].Baseword)
	assert.Len(t, store.GulfBySegmentType(SegmentEnclitic)["PRON"], 1)
	assert.Len(t, store.CODA, 1)
	// msa file absent - legitimate empty section
	assert.Empty(t, store.MSA)
	assert.Equal(t, 3, store.NumExamples())
}

func TestLoadAbsentDirectoryYieldsEmptyStore(t *testing.T) {
	store, err := Load(testConf(filepath.Join(t.TempDir(), "nothing")))
	assert.NoError(t, err)
	assert.Equal(t, 0, store.NumExamples())
}

func TestLoadCorruptFileFails(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(
		filepath.Join(dir, "gulf_tag_examples.json"), []byte("{broken"), 0644))
	_, err := Load(testConf(dir))
	assert.Error(t, err)
}

func TestProviderReloadSwapsSnapshot(t *testing.T) {
	dir := t.TempDir()
	conf := testConf(dir)
	provider, err := NewProvider(conf)
	assert.NoError(t, err)
	assert.Equal(t, 0, provider.Get().NumExamples())

	assert.NoError(t, os.WriteFile(
		filepath.Join(dir, "coda_examples.json"), []byte(testCODAJSON), 0644))
	assert.NoError(t, provider.Reload())
	assert.Equal(t, 1, provider.Get().NumExamples())
}

func TestProviderReloadKeepsOldSnapshotOnError(t *testing.T) {
	dir := t.TempDir()
	conf := testConf(dir)
	assert.NoError(t, os.WriteFile(
		filepath.Join(dir, "coda_examples.json"), []byte(testCODAJSON), 0644))
	provider, err := NewProvider(conf)
	assert.NoError(t, err)

	assert.NoError(t, os.WriteFile(
		filepath.Join(dir, "coda_examples.json"), []byte("{broken"), 0644))
	assert.Error(t, provider.Reload())
	assert.Equal(t, 1, provider.Get().NumExamples())
}

func TestSegmentTypeValidate(t *testing.T) {
	assert.NoError(t, SegmentBaseword.Validate())
	assert.NoError(t, SegmentEnclitic.Validate())
	assert.NoError(t, SegmentProclitic.Validate())
	assert.Error(t, SegmentType("stem").Validate())
}
