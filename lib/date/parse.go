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

package date

import (
	"time"
)

const (
	Simple = "2006-01-02"
)

var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-1-2",
	"2006-1",
	"2006",
}

// ParseDate parses JSPF dates, which are XML schema dateTime values such
// as 2023-01-02T00:12:49.117622+00:00, along with plain yyyy-mm-dd,
// yyyy-mm and yyyy. The zero time is returned when nothing matches.
func ParseDate(date string) (t time.Time) {
	if date == "" {
		return t
	}
	for _, layout := range layouts {
		if v, err := time.Parse(layout, date); err == nil {
			return v
		}
	}
	return t
}

// Format returns yyyy-mm-dd, or the empty string for the zero time.
func Format(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(Simple)
}
