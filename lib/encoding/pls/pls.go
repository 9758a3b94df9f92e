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

package pls

import (
	"fmt"
	"io"
)

const (
	ContentType   = "audio/x-scpls"
	Extension     = "pls"
	Header        = "[playlist]"
	UnknownLength = -1
	Version       = 2
)

type Entry struct {
	File   string
	Title  string
	Length int
}

// Encoder writes entries numbered from 1. The entry count is written by
// Footer.
type Encoder struct {
	writer io.Writer
	count  int
	err    error
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{writer: w}
}

func (e *Encoder) printf(format string, a ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.writer, format, a...)
}

func (e *Encoder) Header() error {
	e.printf("%s\n", Header)
	return e.err
}

func (e *Encoder) Encode(entry Entry) error {
	e.count++
	e.printf("File%d=%s\n", e.count, entry.File)
	if entry.Title != "" {
		e.printf("Title%d=%s\n", e.count, entry.Title)
	}
	e.printf("Length%d=%d\n", e.count, entry.Length)
	return e.err
}

func (e *Encoder) Footer() error {
	e.printf("NumberOfEntries=%d\n", e.count)
	e.printf("Version=%d\n", Version)
	return e.err
}
