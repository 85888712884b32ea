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

package main

import (
	"context"
	"embed"
	"fmt"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"gannot/annot"
	"gannot/cnf"
	"gannot/docs"
	"gannot/general"
	"gannot/handlers"
	"gannot/rcache"
	"gannot/resources"
	"gannot/syncrepo"
)

const (
	redisConnectionTestTimeout = 120 * time.Second
	syncBootstrapTimeout       = 5 * time.Minute
)

//go:embed docs/swagger.json
var swaggerJSON embed.FS

type apiServer struct {
	server      *http.Server
	conf        *cnf.Conf
	version     general.VersionInfo
	resProvider *resources.Provider
	annotations *annot.Store
	syncer      *syncrepo.Repo
	cache       *rcache.Adapter
}

type serverInfo struct {
	Name      string              `json:"name"`
	Version   general.VersionInfo `json:"version"`
	Annotator string              `json:"annotator"`
}

func (api *apiServer) Start(ctx context.Context) {
	if !api.conf.LogLevel.IsDebugMode() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(additionalLogEvents())
	engine.Use(logging.GinMiddleware())
	engine.Use(uniresp.AlwaysJSONContentType())
	engine.Use(CORSMiddleware(api.conf))
	engine.NoMethod(uniresp.NoMethodHandler)
	engine.NoRoute(uniresp.NotFoundHandler)

	actions := handlers.NewActions(
		api.conf, api.resProvider, api.annotations, api.syncer, api.cache)

	engine.GET("/", func(ctx *gin.Context) {
		uniresp.WriteJSONResponse(ctx.Writer, serverInfo{
			Name:      "gannot",
			Version:   api.version,
			Annotator: api.conf.Annotator,
		})
	})

	docs.SwaggerInfo.BasePath = "/"
	engine.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	engine.GET(
		"/openapi",
		func(ctx *gin.Context) {
			jsonFile, err := swaggerJSON.ReadFile("docs/swagger.json")
			if err != nil {
				err = fmt.Errorf("failed to read Swagger file: %w", err)
				uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
				return
			}
			uniresp.WriteRawJSONResponse(ctx.Writer, jsonFile)
		},
	)

	protected := engine.Group("/").Use(AuthRequired(api.conf))

	protected.GET(
		"/search/examples", actions.ExamplesSearch)

	protected.GET(
		"/search/annotations", actions.AnnotationsSearch)

	protected.GET(
		"/phrases", actions.Phrases)

	protected.GET(
		"/phrases/flagged", actions.FlaggedPhrases)

	protected.GET(
		"/annotations/status", actions.AnnotationStatus)

	protected.GET(
		"/annotations/record", actions.PreviousAnnotation)

	protected.POST(
		"/annotations", actions.SaveAnnotation)

	protected.POST(
		"/sync", actions.Sync)

	log.Info().Msgf("starting to listen at %s:%d", api.conf.ListenAddress, api.conf.ListenPort)
	api.server = &http.Server{
		Handler:      engine,
		Addr:         fmt.Sprintf("%s:%d", api.conf.ListenAddress, api.conf.ListenPort),
		WriteTimeout: time.Duration(api.conf.ServerWriteTimeoutSecs) * time.Second,
		ReadTimeout:  time.Duration(api.conf.ServerReadTimeoutSecs) * time.Second,
	}
	go func() {
		if err := api.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()
}

func (api *apiServer) Stop(ctx context.Context) error {
	log.Warn().Msg("shutting down GANNOT HTTP API server")
	return api.server.Shutdown(ctx)
}

func runApiServer(conf *cnf.Conf, version general.VersionInfo) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	syncer := syncrepo.NewRepo(conf.Sync, conf.Annotator)
	bootstrapCtx, cancelBootstrap := context.WithTimeout(ctx, syncBootstrapTimeout)
	defer cancelBootstrap()
	if err := syncer.Bootstrap(bootstrapCtx); err != nil {
		log.Fatal().Err(err).Msg("failed to prepare annotation repository")
		return
	}

	resProvider, err := resources.NewProvider(conf.Resources)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load example dictionaries")
		return
	}

	var cache *rcache.Adapter
	if conf.Redis != nil {
		cache = rcache.NewAdapter(conf.Redis, ctx)
		if err := cache.TestConnection(redisConnectionTestTimeout); err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
			return
		}

	} else {
		log.Warn().Msg("Redis not configured, search result caching is disabled")
	}

	server := &apiServer{
		conf:        conf,
		version:     version,
		resProvider: resProvider,
		annotations: annot.NewStore(conf.Annotations),
		syncer:      syncer,
		cache:       cache,
	}

	services := []service{server}
	for _, m := range services {
		m.Start(ctx)
	}
	<-ctx.Done()
	log.Warn().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var wg sync.WaitGroup
	for _, s := range services {
		wg.Add(1)
		go func(srv service) {
			defer wg.Done()
			if err := srv.Stop(shutdownCtx); err != nil {
				log.Error().Err(err).Type("service", srv).Msg("Error shutting down service")
			}
		}(s)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info().Msg("Graceful shutdown completed")
	case <-shutdownCtx.Done():
		log.Warn().Msg("Shutdown timed out")
	}
}
