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
	"context"
	"net/http"

	"github.com/defsub/spiffy/config"
	"github.com/defsub/spiffy/convert"
	"github.com/defsub/spiffy/lib/listenbrainz"
	"github.com/defsub/spiffy/mirror"
)

type contextKey string

var (
	contextKeyContext = contextKey("context")
)

func withContext(r *http.Request, ctx Context) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), contextKeyContext, ctx))
}

func contextValue(r *http.Request) Context {
	return r.Context().Value(contextKeyContext).(Context)
}

type Context interface {
	Config() *config.Config
	Converter() *convert.Converter
	ListenBrainz() *listenbrainz.ListenBrainz
	Mirror() *mirror.Mirror
	RequestID() string
}

type RequestContext struct {
	config       *config.Config
	converter    *convert.Converter
	listenbrainz *listenbrainz.ListenBrainz
	mirror       *mirror.Mirror
	requestID    string
}

func makeContext(ctx RequestContext, requestID string) RequestContext {
	ctx.requestID = requestID
	return ctx
}

func (ctx RequestContext) Config() *config.Config {
	return ctx.config
}

func (ctx RequestContext) Converter() *convert.Converter {
	return ctx.converter
}

func (ctx RequestContext) ListenBrainz() *listenbrainz.ListenBrainz {
	return ctx.listenbrainz
}

// Mirror is nil unless mirror users are configured.
func (ctx RequestContext) Mirror() *mirror.Mirror {
	return ctx.mirror
}

func (ctx RequestContext) RequestID() string {
	return ctx.requestID
}
