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

package bucket

import (
	"testing"

	"github.com/defsub/spiffy/config"
)

func TestKey(t *testing.T) {
	tests := []struct {
		prefix string
		name   string
		expect string
	}{
		{"", "rob/road_trip.m3u", "rob/road_trip.m3u"},
		{"playlists", "rob/road_trip.m3u", "playlists/rob/road_trip.m3u"},
		{"/playlists/", "rob/road_trip.m3u", "playlists/rob/road_trip.m3u"},
	}
	for _, v := range tests {
		b := Bucket{config: &config.BucketConfig{ObjectPrefix: v.prefix}}
		if got := b.Key(v.name); got != v.expect {
			t.Errorf("%q %q: expected %s got %s\n", v.prefix, v.name, v.expect, got)
		}
	}
}

func TestOpen(t *testing.T) {
	b, err := Open(config.BucketConfig{
		Endpoint:   "http://127.0.0.1:9000",
		Region:     "us-east-1",
		BucketName: "playlists",
	})
	if err != nil {
		t.Fatal(err)
	}
	if b.s3 == nil {
		t.Error("expected s3 client")
	}
}
