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

// Package handlers implements the HTTP actions of the annotation
// service. Handlers do no searching themselves - they parse request
// arguments into typed filters, load the proper store snapshot and
// call the search package.
package handlers

import (
	"errors"
	"net/http"

	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"

	"gannot/annot"
	"gannot/cnf"
	"gannot/gerror"
	"gannot/rcache"
	"gannot/resources"
	"gannot/syncrepo"
)

// Actions groups the dependencies of all HTTP handlers.
type Actions struct {
	conf        *cnf.Conf
	resources   *resources.Provider
	annotations *annot.Store
	syncer      *syncrepo.Repo
	cache       *rcache.Adapter
}

func NewActions(
	conf *cnf.Conf,
	resProvider *resources.Provider,
	annotations *annot.Store,
	syncer *syncrepo.Repo,
	cache *rcache.Adapter,
) *Actions {
	return &Actions{
		conf:        conf,
		resources:   resProvider,
		annotations: annotations,
		syncer:      syncer,
		cache:       cache,
	}
}

// respondError maps the error taxonomy to HTTP statuses: caller
// contract violations are 400, malformed stored data 422, anything
// else 500.
func respondError(ctx *gin.Context, err error) {
	var inputErr gerror.InputError
	var recordErr gerror.MalformedRecordError
	switch {
	case errors.As(err, &inputErr):
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusBadRequest)
	case errors.As(err, &recordErr):
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusUnprocessableEntity)
	default:
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
	}
}
