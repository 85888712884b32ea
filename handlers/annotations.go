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

package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"

	"gannot/annot"
	"gannot/search"
)

type annotationsSearchResponse struct {
	Hits []search.Hit `json:"hits"`
}

type saveResponse struct {
	Saved    bool   `json:"saved"`
	Original string `json:"original"`
}

type statusResponse struct {
	Original  string `json:"original"`
	Annotated bool   `json:"annotated"`
}

// annotationSnapshot builds the cross-annotator view searched by the
// previous-annotation search: the last fetched state of every remote
// branch, with the local annotator's own (possibly newer) file laid
// over their branch state.
func (a *Actions) annotationSnapshot() (map[string][]annot.Record, error) {
	snapshot, err := a.syncer.Merged()
	if err != nil {
		return nil, err
	}
	own, err := a.annotations.LoadAnnotator(a.conf.Annotator)
	if err != nil {
		return nil, err
	}
	snapshot[a.conf.Annotator] = own
	return snapshot, nil
}

// resolveAnnotatorSelector rewrites the UI's `Me` shorthands into the
// configured annotator name; the search engine only knows
// concrete names.
func (a *Actions) resolveAnnotatorSelector(selector string) string {
	switch selector {
	case "Me":
		return a.conf.Annotator
	case search.AllButPrefix + "Me":
		return search.AllButPrefix + a.conf.Annotator
	}
	return selector
}

// AnnotationsSearch godoc
// @Summary      Search previous annotations
// @Description  Searches stored annotation records of the selected annotators for the query.
// @Produce      json
// @Param        q          query  string  true   "search query"
// @Param        feature    query  string  false  "Raw | CODA | Segments"           default(Raw)
// @Param        field      query  string  false  "Text | Verb Form | POS | Lemma"  default(Text)
// @Param        match      query  string  false  "Approximate | Exact"             default(Approximate)
// @Param        annotator  query  string  false  "annotator name, `Me`, `All But <name>` or `All But Me`"
// @Success      200  {object}  annotationsSearchResponse
// @Router       /search/annotations [get]
func (a *Actions) AnnotationsSearch(ctx *gin.Context) {
	q := ctx.Query("q")
	if q == "" {
		uniresp.RespondWithErrorJSON(
			ctx, errors.New("missing `q` argument"), http.StatusBadRequest)
		return
	}
	filter, err := search.NewAnnotationsFilter(
		ctx.DefaultQuery("feature", "Raw"),
		ctx.DefaultQuery("field", "Text"),
		ctx.DefaultQuery("match", "Approximate"),
		a.resolveAnnotatorSelector(ctx.Query("annotator")),
	)
	if err != nil {
		respondError(ctx, err)
		return
	}
	snapshot, err := a.annotationSnapshot()
	if err != nil {
		respondError(ctx, err)
		return
	}
	hits, err := search.Annotations(q, snapshot, filter)
	if err != nil {
		respondError(ctx, err)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, annotationsSearchResponse{Hits: hits})
}

// SaveAnnotation godoc
// @Summary      Store an annotation record
// @Description  Stores the posted record under the configured annotator, replacing any record with the same `original`.
// @Accept       json
// @Produce      json
// @Success      200  {object}  saveResponse
// @Router       /annotations [post]
func (a *Actions) SaveAnnotation(ctx *gin.Context) {
	rawData, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusBadRequest)
		return
	}
	var rec annot.Record
	if err := sonic.Unmarshal(rawData, &rec); err != nil {
		uniresp.RespondWithErrorJSON(
			ctx,
			fmt.Errorf("failed to parse annotation record: %w", err),
			http.StatusBadRequest,
		)
		return
	}
	if err := a.annotations.Save(a.conf.Annotator, rec); err != nil {
		respondError(ctx, err)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, saveResponse{Saved: true, Original: rec.Original})
}

// AnnotationStatus godoc
// @Summary      Tell whether a phrase is annotated
// @Produce      json
// @Param        phrase  query  string  true  "original phrase"
// @Success      200  {object}  statusResponse
// @Router       /annotations/status [get]
func (a *Actions) AnnotationStatus(ctx *gin.Context) {
	phrase := ctx.Query("phrase")
	if phrase == "" {
		uniresp.RespondWithErrorJSON(
			ctx, errors.New("missing `phrase` argument"), http.StatusBadRequest)
		return
	}
	annotated, err := a.annotations.IsAnnotated(a.conf.Annotator, phrase)
	if err != nil {
		respondError(ctx, err)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, statusResponse{Original: phrase, Annotated: annotated})
}

// PreviousAnnotation godoc
// @Summary      Fetch the stored record of a phrase
// @Produce      json
// @Param        phrase  query  string  true  "original phrase"
// @Success      200  {object}  annot.Record
// @Router       /annotations/record [get]
func (a *Actions) PreviousAnnotation(ctx *gin.Context) {
	phrase := ctx.Query("phrase")
	if phrase == "" {
		uniresp.RespondWithErrorJSON(
			ctx, errors.New("missing `phrase` argument"), http.StatusBadRequest)
		return
	}
	rec, ok, err := a.annotations.Get(a.conf.Annotator, phrase)
	if err != nil {
		respondError(ctx, err)
		return
	}
	if !ok {
		uniresp.RespondWithErrorJSON(
			ctx,
			fmt.Errorf("phrase not annotated yet"),
			http.StatusNotFound,
		)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, rec)
}
