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
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"

	"gannot/rcache"
	"gannot/search"
)

// ExamplesSearch godoc
// @Summary      Search the example dictionaries
// @Description  Searches Gulf tag, MSA tag or CODA examples for the query, using the drop-down filter values.
// @Produce      json
// @Param        q           query  string  true   "search query"
// @Param        segmentType query  string  false  "Baseword | Enclitic | Proclitic"  default(Baseword)
// @Param        match       query  string  false  "Approximate | Exact"              default(Approximate)
// @Param        resource    query  string  false  "Gulf Tags | MSA Tags | CODA Examples"  default(Gulf Tags)
// @Success      200  {object}  search.ExamplesResult
// @Router       /search/examples [get]
func (a *Actions) ExamplesSearch(ctx *gin.Context) {
	q := ctx.Query("q")
	if q == "" {
		uniresp.RespondWithErrorJSON(
			ctx, errors.New("missing `q` argument"), http.StatusBadRequest)
		return
	}
	segmentType := ctx.DefaultQuery("segmentType", "Baseword")
	match := ctx.DefaultQuery("match", "Approximate")
	resource := ctx.DefaultQuery("resource", "Gulf Tags")

	filter, err := search.NewExamplesFilter(segmentType, match, resource)
	if err != nil {
		respondError(ctx, err)
		return
	}

	cacheKey := rcache.Key(q, segmentType, match, resource)
	if data, ok := a.cache.Get(cacheKey); ok {
		uniresp.WriteRawJSONResponse(ctx.Writer, data)
		return
	}

	ans, err := search.Examples(q, a.resources.Get(), filter)
	if err != nil {
		respondError(ctx, err)
		return
	}
	data, err := sonic.Marshal(ans)
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
		return
	}
	a.cache.Put(cacheKey, data)
	uniresp.WriteRawJSONResponse(ctx.Writer, data)
}
