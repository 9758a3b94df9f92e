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

// Package listenbrainz fetches user playlists from the ListenBrainz API.
//
// See https://listenbrainz.readthedocs.io/en/latest/users/api/playlist.html
package listenbrainz

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/defsub/spiffy/config"
	"github.com/defsub/spiffy/lib/client"
	"github.com/defsub/spiffy/lib/spiff"
)

var (
	ErrMissingUser     = errors.New("missing user")
	ErrMissingPlaylist = errors.New("missing playlist")
	ErrNotFound        = errors.New("not found")
)

// NetworkError wraps transport and HTTP failures talking to ListenBrainz.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

type ListenBrainz struct {
	config *config.Config
	client *client.Client
}

func NewListenBrainz(config *config.Config) *ListenBrainz {
	return &ListenBrainz{
		config: config,
		client: client.NewClient(&config.Client),
	}
}

type PlaylistInfo struct {
	ID         string `json:"id"`
	Identifier string `json:"identifier"`
	Title      string `json:"title"`
	Creator    string `json:"creator,omitempty"`
	Date       string `json:"date,omitempty"`
}

type playlistsResponse struct {
	Count         int              `json:"count"`
	Offset        int              `json:"offset"`
	PlaylistCount int              `json:"playlist_count"`
	Playlists     []spiff.Playlist `json:"playlists"`
}

// PlaylistID returns the playlist MBID from a playlist identifier URL such
// as https://listenbrainz.org/playlist/<mbid>. A bare ID is returned as is.
func PlaylistID(identifier string) string {
	identifier = strings.TrimRight(strings.TrimSpace(identifier), "/")
	if i := strings.LastIndex(identifier, "/"); i >= 0 {
		return identifier[i+1:]
	}
	return identifier
}

func (lb *ListenBrainz) headers() map[string]string {
	if lb.config.ListenBrainz.Token == "" {
		return nil
	}
	return map[string]string{"Authorization": "Token " + lb.config.ListenBrainz.Token}
}

func (lb *ListenBrainz) endpoint(format string, a ...interface{}) string {
	return strings.TrimRight(lb.config.ListenBrainz.URL, "/") + fmt.Sprintf(format, a...)
}

func wrap(op string, err error) error {
	var statusErr *client.StatusError
	if errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return &NetworkError{Op: op, Err: err}
}

// UserPlaylists lists playlists created by user. Entries without a title
// are skipped.
func (lb *ListenBrainz) UserPlaylists(user string) ([]PlaylistInfo, error) {
	return lb.playlists(user, "/1/user/%s/playlists?count=%d")
}

// CreatedFor lists playlists generated for user, such as weekly jams.
func (lb *ListenBrainz) CreatedFor(user string) ([]PlaylistInfo, error) {
	return lb.playlists(user, "/1/user/%s/playlists/createdfor?count=%d")
}

func (lb *ListenBrainz) playlists(user, path string) ([]PlaylistInfo, error) {
	user = strings.TrimSpace(user)
	if user == "" {
		return nil, ErrMissingUser
	}
	u := lb.endpoint(path, url.PathEscape(user), lb.config.ListenBrainz.PlaylistLimit)
	var result playlistsResponse
	if err := lb.client.GetJsonWith(lb.headers(), u, &result); err != nil {
		return nil, wrap("fetching playlists", err)
	}

	list := []PlaylistInfo{}
	for _, p := range result.Playlists {
		if p.Spiff == nil || !p.Spiff.Title.Valid {
			continue
		}
		list = append(list, PlaylistInfo{
			ID:         PlaylistID(p.Spiff.Identifier.Value),
			Identifier: p.Spiff.Identifier.Value,
			Title:      p.Spiff.Title.Value,
			Creator:    p.Spiff.Creator.Value,
			Date:       p.Spiff.Date.Value,
		})
	}
	return list, nil
}

// Playlist fetches a single playlist as JSPF. The raw response is returned
// along with the decoded playlist.
func (lb *ListenBrainz) Playlist(identifier string) (*spiff.Playlist, []byte, error) {
	id := PlaylistID(identifier)
	if id == "" {
		return nil, nil, ErrMissingPlaylist
	}
	_, data, err := lb.client.GetWith(lb.headers(),
		lb.endpoint("/1/playlist/%s", url.PathEscape(id)))
	if err != nil {
		return nil, nil, wrap("fetching playlist details", err)
	}
	playlist, err := spiff.Unmarshal(data)
	if err != nil {
		return nil, data, err
	}
	return playlist, data, nil
}
