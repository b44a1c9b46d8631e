// Copyright 2017-2020, Square, Inc.

// Package api provides controllers for each api endpoint. Controllers are
// "dumb wiring"; the synth package does the work.
package api

import (
	"context"
	"net/http"
	"strconv"
	"sync"

	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
	cmap "github.com/orcaman/concurrent-map"
	log "github.com/sirupsen/logrus"

	"github.com/square/pnsynth/config"
	serr "github.com/square/pnsynth/errors"
	"github.com/square/pnsynth/proto"
	"github.com/square/pnsynth/synth"
	"github.com/square/pnsynth/util"
	v "github.com/square/pnsynth/version"
)

const (
	API_ROOT = "/api/v1/"
)

// API provides controllers for endpoints it registers with a router.
// Schedule results are kept in memory only.
type API struct {
	synth      synth.Synthesizer
	results    cmap.ConcurrentMap // result id => proto.ScheduleResult
	maxResults int                // 0 = no limit
	// --
	mux   *sync.Mutex
	order []string // result ids, oldest first
	// --
	echo *echo.Echo
}

// NewAPI creates a new API struct. It initializes an echo web server within the
// struct, and registers all of the API's routes with it. At most maxResults
// results are stored; the oldest is dropped first.
func NewAPI(s synth.Synthesizer, maxResults int) *API {
	api := &API{
		synth:      s,
		results:    cmap.New(),
		maxResults: maxResults,
		mux:        &sync.Mutex{},
		order:      []string{},
		echo:       echo.New(),
	}

	// //////////////////////////////////////////////////////////////////////
	// Routes
	// //////////////////////////////////////////////////////////////////////
	// Schedule a posted description and store the result.
	api.echo.POST(API_ROOT+"schedules", api.createScheduleHandler)
	// List stored results, newest first.
	api.echo.GET(API_ROOT+"schedules", api.findSchedulesHandler)
	// Get one stored result.
	api.echo.GET(API_ROOT+"schedules/:resultId", api.getScheduleHandler)

	api.echo.GET(API_ROOT+"version", api.versionHandler)

	// //////////////////////////////////////////////////////////////////////
	// Middleware and hooks
	// //////////////////////////////////////////////////////////////////////
	api.echo.Use(middleware.Recover())
	api.echo.Use(middleware.Logger())
	api.echo.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set("X-Pnsynth-Version", v.Version())
			return next(c)
		}
	})

	return api
}

// Run starts the API server and blocks until it stops. If a cert and key are
// configured, the server only accepts TLS connections.
func (api *API) Run(cfg config.Server) error {
	if cfg.TLS.CertFile != "" && cfg.TLS.KeyFile != "" {
		tlsConfig, err := util.NewTLSConfig(cfg.TLS.CAFile, cfg.TLS.CertFile, cfg.TLS.KeyFile)
		if err != nil {
			return err
		}
		api.echo.TLSServer.Addr = cfg.ListenAddress
		api.echo.TLSServer.TLSConfig = tlsConfig
		log.Infof("listening on %s (TLS)", cfg.ListenAddress)
		return api.echo.StartServer(api.echo.TLSServer)
	}
	log.Infof("listening on %s", cfg.ListenAddress)
	return api.echo.Start(cfg.ListenAddress)
}

// Shutdown stops the server, waiting for active requests.
func (api *API) Shutdown(ctx context.Context) error {
	if api.echo.TLSServer.TLSConfig != nil {
		return api.echo.TLSServer.Shutdown(ctx)
	}
	return api.echo.Server.Shutdown(ctx)
}

func (api *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	api.echo.ServeHTTP(w, r)
}

// Use adds middleware to the echo web server in the API. See
// https://echo.labstack.com/middleware for more details.
func (api *API) Use(middleware ...echo.MiddlewareFunc) {
	api.echo.Use(middleware...)
}

// ============================== CONTROLLERS ============================== //

// POST <API_ROOT>/schedules
// Parse, check and build the posted description, then schedule it. The result
// is stored and returned.
func (api *API) createScheduleHandler(c echo.Context) error {
	var req proto.ScheduleRequest
	if err := c.Bind(&req); err != nil {
		return handleError(serr.ErrInvalidScheduleRequest{Message: "cannot decode request: " + err.Error()}, c)
	}
	if req.Spec == "" {
		return handleError(serr.ErrInvalidScheduleRequest{Message: "spec is empty"}, c)
	}

	res, err := api.synth.Schedule(req)
	if err != nil {
		return handleError(err, c)
	}
	api.store(res)

	c.Response().Header().Set("Location", API_ROOT+"schedules/"+res.Id)
	return c.JSON(http.StatusCreated, res)
}

// GET <API_ROOT>/schedules/{resultId}
func (api *API) getScheduleHandler(c echo.Context) error {
	resultId := c.Param("resultId")
	val, ok := api.results.Get(resultId)
	if !ok {
		return handleError(serr.ResultNotFound{ResultId: resultId}, c)
	}
	return c.JSON(http.StatusOK, val.(proto.ScheduleResult))
}

// GET <API_ROOT>/schedules?network=x&limit=n
func (api *API) findSchedulesHandler(c echo.Context) error {
	filter := proto.ResultFilter{
		Network: c.QueryParam("network"),
	}
	if limit := c.QueryParam("limit"); limit != "" {
		n, err := strconv.ParseUint(limit, 10, 32)
		if err != nil {
			return handleError(serr.ErrInvalidFilter{Param: "limit", Value: limit}, c)
		}
		filter.Limit = uint(n)
	}
	return c.JSON(http.StatusOK, api.find(filter))
}

// GET <API_ROOT>/version
func (api *API) versionHandler(c echo.Context) error {
	return c.String(http.StatusOK, v.Version())
}

// ------------------------------------------------------------------------- //

// store saves res and drops the oldest results over the limit.
func (api *API) store(res proto.ScheduleResult) {
	api.mux.Lock()
	defer api.mux.Unlock()
	api.results.Set(res.Id, res)
	api.order = append(api.order, res.Id)
	for api.maxResults > 0 && len(api.order) > api.maxResults {
		api.results.Remove(api.order[0])
		api.order = api.order[1:]
	}
}

// find returns stored results matching the filter, newest first.
func (api *API) find(filter proto.ResultFilter) []proto.ScheduleResult {
	api.mux.Lock()
	defer api.mux.Unlock()
	found := []proto.ScheduleResult{}
	for i := len(api.order) - 1; i >= 0; i-- {
		val, ok := api.results.Get(api.order[i])
		if !ok {
			continue
		}
		res := val.(proto.ScheduleResult)
		if filter.Network != "" && res.Network != filter.Network {
			continue
		}
		found = append(found, res)
		if filter.Limit > 0 && uint(len(found)) == filter.Limit {
			break
		}
	}
	return found
}

func handleError(err error, c echo.Context) error {
	ret := proto.Error{
		Message:    err.Error(),
		HTTPStatus: http.StatusInternalServerError,
	}

	switch e := err.(type) {
	case serr.ResultNotFound:
		ret.HTTPStatus = http.StatusNotFound
		ret.ResultId = e.ResultId
	case serr.ErrInvalidScheduleRequest, serr.ErrInvalidFilter:
		ret.HTTPStatus = http.StatusBadRequest
	default:
		log.Errorf("%s", err)
	}

	return c.JSON(ret.HTTPStatus, ret)
}
