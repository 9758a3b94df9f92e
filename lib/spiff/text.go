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
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Text is an optional JSPF text value. Valid is set only when the source
// value was present and non-empty.
type Text struct {
	Value string
	Valid bool
}

func NewText(s string) Text {
	return Text{Value: s, Valid: s != ""}
}

func (t Text) String() string {
	return t.Value
}

func (t Text) IsZero() bool {
	return !t.Valid
}

// UnmarshalJSON accepts strings, numbers, booleans, null and arrays. An
// array yields its first element; JSPF allows identifier and location to
// be lists of URIs. Objects are rejected.
func (t *Text) UnmarshalJSON(data []byte) error {
	var v interface{}
	d := json.NewDecoder(bytes.NewReader(data))
	d.UseNumber()
	if err := d.Decode(&v); err != nil {
		return err
	}
	s, ok, err := textOf(v)
	if err != nil {
		return err
	}
	t.Value, t.Valid = s, ok
	return nil
}

func (t Text) MarshalJSON() ([]byte, error) {
	if !t.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(t.Value)
}

func textOf(v interface{}) (string, bool, error) {
	switch x := v.(type) {
	case nil:
		return "", false, nil
	case string:
		return x, x != "", nil
	case json.Number:
		return x.String(), true, nil
	case bool:
		return strconv.FormatBool(x), true, nil
	case []interface{}:
		if len(x) == 0 {
			return "", false, nil
		}
		return textOf(x[0])
	default:
		return "", false, fmt.Errorf("%w: unexpected %T value", ErrInvalidFormat, v)
	}
}
