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

package xspf

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

const (
	ContentType = "application/xspf+xml"
	Extension   = "xspf"
	Namespace   = "http://xspf.org/ns/0/"
)

// Track holds the values written for a single track. Empty fields are
// not written.
type Track struct {
	Title    string
	Creator  string
	Location string
}

type Encoder struct {
	writer io.Writer
	err    error
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{writer: w}
}

var escaper = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
	"&", "&amp;",
	"'", "&apos;",
	"\"", "&quot;",
)

// allowed reports whether r is a legal XML 1.0 character.
func allowed(r rune) bool {
	return r == '\t' || r == '\n' || r == '\r' ||
		(r >= 0x20 && r <= 0xD7FF) ||
		(r >= 0xE000 && r <= 0xFFFD) ||
		(r >= 0x10000 && r <= 0x10FFFF)
}

// EscapeText replaces the five XML special characters with their
// predefined entities in a single pass. Characters XML 1.0 does not allow,
// such as C0 controls, are dropped.
func EscapeText(s string) string {
	s = strings.Map(func(r rune) rune {
		if allowed(r) {
			return r
		}
		return -1
	}, s)
	return escaper.Replace(s)
}

func (e *Encoder) printf(format string, a ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.writer, format, a...)
}

func (e *Encoder) element(name, value string) {
	value = EscapeText(value)
	if value == "" {
		return
	}
	e.printf("<%s>%s</%s>\n", name, value, name)
}

func (e *Encoder) Header() error {
	e.printf("%s", xml.Header)
	e.printf("<playlist version=\"0\" xmlns=\"%s\">\n", Namespace)
	e.printf("<trackList>\n")
	return e.err
}

func (e *Encoder) Encode(t Track) error {
	e.printf("<track>\n")
	e.element("title", t.Title)
	e.element("creator", t.Creator)
	e.element("location", t.Location)
	e.printf("</track>\n")
	return e.err
}

func (e *Encoder) Footer() error {
	e.printf("</trackList>\n")
	e.printf("</playlist>")
	return e.err
}
