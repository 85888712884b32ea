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
	"sort"

	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type syncResponse struct {
	Synced     bool     `json:"synced"`
	Annotators []string `json:"annotators"`
}

// Sync godoc
// @Summary      Synchronize with the shared repository
// @Description  Publishes the annotator's own records, fetches everyone else's branches and reloads the example dictionaries.
// @Produce      json
// @Success      200  {object}  syncResponse
// @Router       /sync [post]
func (a *Actions) Sync(ctx *gin.Context) {
	if err := a.syncer.Publish(ctx.Request.Context()); err != nil {
		respondError(ctx, err)
		return
	}
	if err := a.syncer.Fetch(ctx.Request.Context()); err != nil {
		respondError(ctx, err)
		return
	}
	// dictionaries may have changed along with the annotator files
	if err := a.resources.Reload(); err != nil {
		log.Error().Err(err).Msg("failed to reload example dictionaries after sync")
	}
	a.cache.Invalidate()

	snapshot, err := a.syncer.Merged()
	if err != nil {
		respondError(ctx, err)
		return
	}
	annotators := make([]string, 0, len(snapshot))
	for name := range snapshot {
		annotators = append(annotators, name)
	}
	sort.Strings(annotators)
	uniresp.WriteJSONResponse(ctx.Writer, syncResponse{Synced: true, Annotators: annotators})
}
