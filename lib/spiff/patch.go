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

	jsonpatch "github.com/evanphx/json-patch"
)

const (
	PatchContentType = "application/json-patch+json"
)

func Patch(data []byte, patch []byte) ([]byte, error) {
	jp, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return data, err
	}
	data, err = jp.Apply(data)
	return data, err
}

// Compare reports whether two JSPF documents describe the same playlist.
// Unknown fields and key order are ignored since both sides are decoded
// and re-encoded before comparing.
func Compare(before, after []byte) (bool, error) {
	p1, err := Unmarshal(before)
	if err != nil {
		return false, err
	}
	p2, err := Unmarshal(after)
	if err != nil {
		return false, err
	}

	s1, err := json.Marshal(p1.Spiff)
	if err != nil {
		return false, err
	}
	s2, err := json.Marshal(p2.Spiff)
	if err != nil {
		return false, err
	}

	return jsonpatch.Equal(s1, s2), nil
}
