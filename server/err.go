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
	"encoding/json"
	"errors"
	"net/http"

	"github.com/defsub/spiffy/convert"
	"github.com/defsub/spiffy/lib/listenbrainz"
	"github.com/defsub/spiffy/lib/log"
)

var (
	ErrInvalidFile   = errors.New("invalid file format")
	ErrReadFile      = errors.New("unable to read file")
	ErrMissingFile   = errors.New("missing file")
	ErrTooLarge      = errors.New("file too large")
	ErrNotFound      = errors.New("not found")
	ErrNotConfigured = errors.New("mirror not configured")
)

func serverErr(w http.ResponseWriter, err error) {
	if err != nil {
		log.Printf("server error: %s\n", err)
		handleErr(w, "bummer", http.StatusInternalServerError)
	}
}

func badRequest(w http.ResponseWriter, err error) {
	handleErr(w, err.Error(), http.StatusBadRequest)
}

func notFoundErr(w http.ResponseWriter) {
	handleErr(w, ErrNotFound.Error(), http.StatusNotFound)
}

// convertErr maps conversion failures to responses. Details stay in the
// log; clients only see "invalid file format".
func convertErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, convert.ErrUnsupportedExtension):
		handleErr(w, err.Error(), http.StatusUnsupportedMediaType)
	case errors.Is(err, convert.ErrUnsupportedFormat):
		badRequest(w, err)
	case errors.Is(err, convert.ErrInvalidFormat):
		log.Printf("invalid JSPF data: %s\n", err)
		badRequest(w, ErrInvalidFile)
	default:
		serverErr(w, err)
	}
}

// remoteErr maps ListenBrainz failures to responses.
func remoteErr(w http.ResponseWriter, err error) {
	var netErr *listenbrainz.NetworkError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.Is(err, listenbrainz.ErrMissingUser),
		errors.Is(err, listenbrainz.ErrMissingPlaylist):
		badRequest(w, err)
	case errors.Is(err, listenbrainz.ErrNotFound):
		notFoundErr(w)
	case errors.As(err, &netErr):
		log.Printf("listenbrainz: %s\n", err)
		handleErr(w, netErr.Error(), http.StatusBadGateway)
	case errors.Is(err, convert.ErrInvalidFormat), errors.As(err, &syntaxErr):
		log.Printf("invalid JSPF data: %s\n", err)
		handleErr(w, ErrInvalidFile.Error(), http.StatusBadGateway)
	default:
		serverErr(w, err)
	}
}

func handleErr(w http.ResponseWriter, msg string, code int) {
	http.Error(w, msg, code)
}
