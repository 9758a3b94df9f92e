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

package convert

import (
	"errors"
	"testing"
)

func TestCheckExtension(t *testing.T) {
	valid := []string{"a.jspf", "A.JSPF", "dir/My Mix.Jspf", "x.y.jspf"}
	for _, v := range valid {
		if err := CheckExtension(v); err != nil {
			t.Errorf("%s: %s\n", v, err)
		}
	}
	invalid := []string{"a.json", "a.xspf", "jspf", "a.jspf.txt", ""}
	for _, v := range invalid {
		if err := CheckExtension(v); !errors.Is(err, ErrUnsupportedExtension) {
			t.Errorf("%s: expected unsupported extension got %v\n", v, err)
		}
	}
}

func TestUploadFileName(t *testing.T) {
	tests := []struct {
		source string
		format Format
		expect string
	}{
		{"weekly.jspf", FormatM3U, "weekly.m3u"},
		{"/tmp/Road Trip.JSPF", FormatXSPF, "Road Trip.xspf"},
		{"my.mix.jspf", FormatM3U, "my.mix.m3u"},
		{".jspf", FormatM3U, "playlist.m3u"},
	}
	for _, v := range tests {
		if got := UploadFileName(v.source, v.format); got != v.expect {
			t.Errorf("%s: expected %s got %s\n", v.source, v.expect, got)
		}
	}
}

func TestTitleFileName(t *testing.T) {
	tests := []struct {
		title  string
		format Format
		expect string
	}{
		{"Weekly Jams for rob, week of 2023-01-02", FormatM3U, "weekly_jams_for_rob__week_of_2023_01_02.m3u"},
		{"Road Trip!", FormatXSPF, "road_trip_.xspf"},
		{"Sigur Rós", FormatM3U, "sigur_r_s.m3u"},
		{"", FormatM3U, "playlist.m3u"},
	}
	for _, v := range tests {
		if got := TitleFileName(v.title, v.format); got != v.expect {
			t.Errorf("%q: expected %s got %s\n", v.title, v.expect, got)
		}
	}
}
