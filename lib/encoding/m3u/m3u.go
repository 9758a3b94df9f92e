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

package m3u

import (
	"fmt"
	"io"
)

// See https://en.wikipedia.org/wiki/M3U#Extended_M3U

const (
	ContentType = "audio/x-mpegurl"
	Extension   = "m3u"

	Header          = "#EXTM3U"
	UnknownDuration = -1
)

type Entry struct {
	Duration int // seconds, -1 if unknown
	Title    string
	Location string
}

// Encoder writes extended M3U. Values are written as given, there is
// nothing to escape in this format.
type Encoder struct {
	writer io.Writer
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{writer: w}
}

func (e *Encoder) Header() error {
	_, err := fmt.Fprintf(e.writer, "%s\n", Header)
	return err
}

func (e *Encoder) Encode(entry Entry) error {
	_, err := fmt.Fprintf(e.writer, "#EXTINF:%d,%s\n%s\n",
		entry.Duration, entry.Title, entry.Location)
	return err
}

func (e *Encoder) Footer() error {
	return nil
}
