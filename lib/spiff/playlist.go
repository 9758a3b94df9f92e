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

package spiff

import (
	"encoding/json"
	"errors"
	"fmt"
)

// See the following specifications:
//  https://www.xspf.org/xspf-v1.html
//  https://www.xspf.org/jspf/

const (
	ContentType = "application/jspf+json"
	Extension   = "jspf"
)

var (
	ErrInvalidFormat = errors.New("invalid format")
)

type Playlist struct {
	Spiff *Spiff `json:"playlist"`
}

type Spiff struct {
	Title      Text    `json:"title,omitzero"`
	Creator    Text    `json:"creator,omitzero"`
	Annotation Text    `json:"annotation,omitzero"`
	Identifier Text    `json:"identifier,omitzero"`
	Date       Text    `json:"date,omitzero"` // "2005-01-08T17:10:47-05:00",
	Entries    []Entry `json:"track"`
}

type Entry struct {
	Title      Text `json:"title,omitzero"`
	Creator    Text `json:"creator,omitzero"`
	Album      Text `json:"album,omitzero"`
	Identifier Text `json:"identifier,omitzero"`
	Location   Text `json:"location,omitzero"`
	Image      Text `json:"image,omitzero"`
	Duration   Text `json:"duration,omitzero"` // milliseconds
}

func NewPlaylist(title string) *Playlist {
	return &Playlist{&Spiff{Title: NewText(title), Entries: []Entry{}}}
}

// Unmarshal decodes a JSPF document. JSON syntax errors are returned as
// is; values of the wrong type are reported as ErrInvalidFormat.
func Unmarshal(data []byte) (*Playlist, error) {
	var playlist Playlist
	err := json.Unmarshal(data, &playlist)
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		err = fmt.Errorf("%w: %s", ErrInvalidFormat, typeErr)
	}
	return &playlist, err
}

func (playlist *Playlist) Marshal() ([]byte, error) {
	data, err := json.Marshal(playlist)
	return data, err
}

// Validate checks the playlist object and its track list are present.
func (playlist *Playlist) Validate() error {
	if playlist == nil || playlist.Spiff == nil {
		return fmt.Errorf("%w: missing playlist", ErrInvalidFormat)
	}
	if playlist.Spiff.Entries == nil {
		return fmt.Errorf("%w: missing track list", ErrInvalidFormat)
	}
	return nil
}

func (playlist *Playlist) Title() string {
	if playlist == nil || playlist.Spiff == nil {
		return ""
	}
	return playlist.Spiff.Title.Value
}
