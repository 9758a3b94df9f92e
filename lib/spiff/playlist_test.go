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
	"errors"
	"strings"
	"testing"
)

func TestUnmarshal(t *testing.T) {
	data := `{"playlist":{"title":"Weekly Jams","track":[
{"title":"Films","creator":"Gary Numan","identifier":"https://musicbrainz.org/recording/1"},
{"title":"Cars","creator":"Gary Numan","identifier":["https://musicbrainz.org/recording/2","x"]},
{"title":1999,"creator":true},
{"title":"","creator":null}
]}}`
	playlist, err := Unmarshal([]byte(data))
	if err != nil {
		t.Fatal(err)
	}
	if err := playlist.Validate(); err != nil {
		t.Fatal(err)
	}
	if playlist.Title() != "Weekly Jams" {
		t.Errorf("wrong title got %s\n", playlist.Title())
	}
	entries := playlist.Spiff.Entries
	if len(entries) != 4 {
		t.Fatalf("expected 4 tracks got %d\n", len(entries))
	}
	if entries[1].Identifier.Value != "https://musicbrainz.org/recording/2" {
		t.Errorf("expected first identifier got %s\n", entries[1].Identifier)
	}
	if !entries[2].Title.Valid || entries[2].Title.Value != "1999" {
		t.Errorf("number title got %+v\n", entries[2].Title)
	}
	if entries[2].Creator.Value != "true" {
		t.Errorf("bool creator got %+v\n", entries[2].Creator)
	}
	if entries[3].Title.Valid || entries[3].Creator.Valid {
		t.Errorf("empty and null should not be valid %+v\n", entries[3])
	}
	if entries[0].Location.Valid {
		t.Error("missing location should not be valid")
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	invalid := []string{
		`{"playlist":"nope"}`,
		`{"playlist":{"track":"nope"}}`,
		`{"playlist":{"track":[1,2]}}`,
		`{"playlist":{"track":[{"title":{"a":"b"}}]}}`,
		`[]`,
	}
	for _, v := range invalid {
		_, err := Unmarshal([]byte(v))
		if !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("%s: expected invalid format got %v\n", v, err)
		}
	}

	_, err := Unmarshal([]byte(`{"playlist":`))
	if err == nil || errors.Is(err, ErrInvalidFormat) {
		t.Errorf("expected syntax error got %v\n", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		data  string
		valid bool
	}{
		{`{}`, false},
		{`null`, false},
		{`{"playlist":null}`, false},
		{`{"playlist":{}}`, false},
		{`{"playlist":{"track":null}}`, false},
		{`{"playlist":{"track":[]}}`, true},
		{`{"playlist":{"title":"x","track":[{}]}}`, true},
	}
	for _, v := range tests {
		playlist, err := Unmarshal([]byte(v.data))
		if err != nil {
			t.Fatalf("%s: %s\n", v.data, err)
		}
		err = playlist.Validate()
		if v.valid && err != nil {
			t.Errorf("%s: expected valid got %s\n", v.data, err)
		}
		if !v.valid && !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("%s: expected invalid format got %v\n", v.data, err)
		}
	}

	if err := NewPlaylist("empty").Validate(); err != nil {
		t.Errorf("new playlist should be valid: %s\n", err)
	}
}

func TestMarshal(t *testing.T) {
	playlist := NewPlaylist("My Title")
	playlist.Spiff.Entries = append(playlist.Spiff.Entries, Entry{
		Title:   NewText("Films"),
		Creator: NewText("Gary Numan"),
	})
	data, err := playlist.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	if !strings.Contains(s, `"title":"Films"`) {
		t.Errorf("missing track title %s\n", s)
	}
	if strings.Contains(s, "identifier") || strings.Contains(s, "null") {
		t.Errorf("absent fields should be omitted %s\n", s)
	}
}

func TestPatch(t *testing.T) {
	data := []byte(`{"playlist":{"title":"a","track":[{"title":"x"}]}}`)
	patch := []byte(`[{"op":"replace","path":"/playlist/title","value":"b"},
{"op":"add","path":"/playlist/track/-","value":{"title":"y"}}]`)
	data, err := Patch(data, patch)
	if err != nil {
		t.Fatal(err)
	}
	playlist, err := Unmarshal(data)
	if err != nil {
		t.Fatal(err)
	}
	if playlist.Title() != "b" {
		t.Errorf("expected patched title got %s\n", playlist.Title())
	}
	if len(playlist.Spiff.Entries) != 2 {
		t.Errorf("expected 2 tracks got %d\n", len(playlist.Spiff.Entries))
	}

	_, err = Patch(data, []byte(`not a patch`))
	if err == nil {
		t.Error("expected patch decode error")
	}
}

func TestCompare(t *testing.T) {
	a := []byte(`{"playlist":{"title":"a","track":[{"title":"x","creator":"y"}]}}`)
	b := []byte(`{"playlist":{"track":[{"creator":"y","title":"x","extension":{}}],"title":"a"}}`)
	c := []byte(`{"playlist":{"title":"a","track":[{"title":"x","creator":"z"}]}}`)

	same, err := Compare(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if !same {
		t.Error("expected equal playlists")
	}
	same, err = Compare(a, c)
	if err != nil {
		t.Fatal(err)
	}
	if same {
		t.Error("expected different playlists")
	}
}
