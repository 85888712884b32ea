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
	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
)

type phrasesResponse struct {
	Phrases []string `json:"phrases"`
}

// Phrases godoc
// @Summary      List source phrases
// @Description  Lists the phrases assigned for annotation, in file order.
// @Produce      json
// @Success      200  {object}  phrasesResponse
// @Router       /phrases [get]
func (a *Actions) Phrases(ctx *gin.Context) {
	phrases, err := a.annotations.Phrases()
	if err != nil {
		respondError(ctx, err)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, phrasesResponse{Phrases: phrases})
}

// FlaggedPhrases godoc
// @Summary      List flagged phrases
// @Description  Lists originals of the annotator's records containing a flagged sub-segment.
// @Produce      json
// @Success      200  {object}  phrasesResponse
// @Router       /phrases/flagged [get]
func (a *Actions) FlaggedPhrases(ctx *gin.Context) {
	phrases, err := a.annotations.Flagged(a.conf.Annotator)
	if err != nil {
		respondError(ctx, err)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, phrasesResponse{Phrases: phrases})
}
