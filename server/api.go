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
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/defsub/spiffy/convert"
	"github.com/defsub/spiffy/lib/log"
	"github.com/defsub/spiffy/lib/spiff"
)

const (
	paramFormat = "format"
	paramName   = "name"
	paramUser   = ":user"
	paramID     = ":id"
	formFile    = "file"
)

func apiView(w http.ResponseWriter, r *http.Request, view interface{}) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.Encode(view)
}

// download sends text as a plain text attachment named name.
func download(w http.ResponseWriter, name, text string) {
	w.Header().Set("Content-Type", convert.DownloadContentType)
	w.Header().Set("Content-Disposition",
		mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, text)
}

func requestFormat(r *http.Request) (convert.Format, error) {
	ctx := contextValue(r)
	v := r.URL.Query().Get(paramFormat)
	if v == "" {
		v = ctx.Config().Convert.Format
	}
	return convert.ParseFormat(v)
}

// readUpload returns the upload file name and contents, either from a
// multipart form field or from the raw request body.
func readUpload(r *http.Request) (string, []byte, error) {
	ctx := contextValue(r)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(ctx.Config().Server.MaxUpload); err != nil {
			return "", nil, err
		}
		file, header, err := r.FormFile(formFile)
		if err != nil {
			return "", nil, ErrMissingFile
		}
		defer file.Close()
		data, err := io.ReadAll(file)
		return header.Filename, data, err
	}
	name := r.URL.Query().Get(paramName)
	if name == "" {
		return "", nil, ErrMissingFile
	}
	data, err := io.ReadAll(r.Body)
	return name, data, err
}

// POST /api/convert?format=m3u
func apiConvert(w http.ResponseWriter, r *http.Request) {
	ctx := contextValue(r)
	format, err := requestFormat(r)
	if err != nil {
		convertErr(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, ctx.Config().Server.MaxUpload)
	name, data, err := readUpload(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			handleErr(w, ErrTooLarge.Error(), http.StatusRequestEntityTooLarge)
		case errors.Is(err, ErrMissingFile):
			badRequest(w, err)
		default:
			log.Printf("%s: read upload: %s\n", ctx.RequestID(), err)
			badRequest(w, ErrReadFile)
		}
		return
	}

	if err := convert.CheckExtension(name); err != nil {
		convertErr(w, err)
		return
	}

	playlist, err := spiff.Unmarshal(data)
	if err != nil {
		if errors.Is(err, spiff.ErrInvalidFormat) {
			convertErr(w, err)
		} else {
			log.Printf("%s: %s: %s\n", ctx.RequestID(), name, err)
			badRequest(w, ErrReadFile)
		}
		return
	}

	result, err := ctx.Converter().Convert(playlist, format)
	if err != nil {
		convertErr(w, err)
		return
	}
	download(w, convert.UploadFileName(name, format), result.Text)
}

// GET /api/users/:user/playlists
func apiUserPlaylists(w http.ResponseWriter, r *http.Request) {
	ctx := contextValue(r)
	list, err := ctx.ListenBrainz().UserPlaylists(r.URL.Query().Get(paramUser))
	if err != nil {
		remoteErr(w, err)
		return
	}
	apiView(w, r, list)
}

// GET /api/users/:user/playlists/createdfor
func apiCreatedFor(w http.ResponseWriter, r *http.Request) {
	ctx := contextValue(r)
	list, err := ctx.ListenBrainz().CreatedFor(r.URL.Query().Get(paramUser))
	if err != nil {
		remoteErr(w, err)
		return
	}
	apiView(w, r, list)
}

// GET /api/users/:user/exports
func apiExports(w http.ResponseWriter, r *http.Request) {
	ctx := contextValue(r)
	m := ctx.Mirror()
	if m == nil {
		handleErr(w, ErrNotConfigured.Error(), http.StatusNotFound)
		return
	}
	apiView(w, r, m.Exports(r.URL.Query().Get(paramUser)))
}

// GET /api/playlists/:id?format=xspf
func apiPlaylistGet(w http.ResponseWriter, r *http.Request) {
	ctx := contextValue(r)
	format, err := requestFormat(r)
	if err != nil {
		convertErr(w, err)
		return
	}
	playlist, _, err := ctx.ListenBrainz().Playlist(r.URL.Query().Get(paramID))
	if err != nil {
		remoteErr(w, err)
		return
	}
	result, err := ctx.Converter().Convert(playlist, format)
	if err != nil {
		remoteErr(w, err)
		return
	}
	download(w, convert.TitleFileName(playlist.Title(), format), result.Text)
}
