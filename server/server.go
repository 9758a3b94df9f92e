// Copyright (C) 2020 The Spiffy Authors.
//
// This file is part of Spiffy.
//
// Spiffy is free software: you can redistribute it and/or modify it under the
// terms of the GNU Affero General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.
//
// Spiffy is distributed in the hope that it will be useful, but WITHOUT ANY
// WARRANTY; without even the implied warranty of MERCHANTABILITY or FITNESS
// FOR A PARTICULAR PURPOSE.  See the GNU Affero General Public License for
// more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with Spiffy.  If not, see <https://www.gnu.org/licenses/>.

package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/bmizerany/pat"
	"github.com/defsub/spiffy/config"
	"github.com/defsub/spiffy/convert"
	"github.com/defsub/spiffy/lib/listenbrainz"
	"github.com/defsub/spiffy/lib/log"
	"github.com/defsub/spiffy/metrics"
	"github.com/defsub/spiffy/mirror"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	HeaderRequestID = "X-Request-Id"
)

type statusWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// requestHandler adds the request context, a request ID, logging and
// metrics. Route is the metrics label.
func requestHandler(ctx RequestContext, route string, handler http.HandlerFunc) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := uuid.New().String()
		w.Header().Set(HeaderRequestID, id)
		sw := &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}

		handler.ServeHTTP(sw, withContext(r, makeContext(ctx, id)))

		elapsed := time.Since(start)
		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, route,
			strconv.Itoa(sw.statusCode)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(elapsed.Seconds())
		log.Printf("%s %s %s %d %s\n", id, r.Method, r.URL.Path, sw.statusCode, elapsed)
	}
	return http.HandlerFunc(fn)
}

func makeMirror(config *config.Config) (*mirror.Mirror, error) {
	m := mirror.NewMirror(config)
	err := m.Open()
	return m, err
}

func makeContextFor(config *config.Config) RequestContext {
	return RequestContext{
		config:       config,
		converter:    convert.NewConverter(nil),
		listenbrainz: listenbrainz.NewListenBrainz(config),
	}
}

func routes(ctx RequestContext) http.Handler {
	mux := pat.New()

	// convert
	mux.Post("/api/convert", requestHandler(ctx, "convert", apiConvert))

	// listenbrainz
	mux.Get("/api/users/:user/playlists/createdfor", requestHandler(ctx, "createdfor", apiCreatedFor))
	mux.Get("/api/users/:user/playlists", requestHandler(ctx, "playlists", apiUserPlaylists))
	mux.Get("/api/users/:user/exports", requestHandler(ctx, "exports", apiExports))
	mux.Get("/api/playlists/:id", requestHandler(ctx, "playlist", apiPlaylistGet))

	mux.Get("/metrics", promhttp.Handler())

	return mux
}

func Serve(config *config.Config) error {
	ctx := makeContextFor(config)

	if len(config.Mirror.Users) > 0 {
		m, err := makeMirror(config)
		log.CheckError(err)
		defer m.Close()
		ctx.mirror = m
		schedule(config, m)
	}

	log.Printf("listening on %s\n", config.Server.Listen)
	http.Handle("/", routes(ctx))
	return http.ListenAndServe(config.Server.Listen, nil)
}
