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

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestConversionCounters(t *testing.T) {
	c := ConversionsTotal.WithLabelValues("m3u", StatusSuccess)
	before := testutil.ToFloat64(c)
	c.Inc()
	if got := testutil.ToFloat64(c); got != before+1 {
		t.Errorf("expected %f got %f\n", before+1, got)
	}

	TracksConverted.WithLabelValues("xspf").Add(3)
	if got := testutil.ToFloat64(TracksConverted.WithLabelValues("xspf")); got < 3 {
		t.Errorf("expected at least 3 got %f\n", got)
	}
}

func TestMirrorLastSync(t *testing.T) {
	MirrorLastSync.SetToCurrentTime()
	if testutil.ToFloat64(MirrorLastSync) <= 0 {
		t.Error("expected timestamp")
	}
}

func TestHTTPRequests(t *testing.T) {
	HTTPRequestsTotal.WithLabelValues("GET", "playlists", "200").Inc()
	if n := testutil.CollectAndCount(HTTPRequestsTotal, "spiffy_http_requests_total"); n < 1 {
		t.Errorf("expected series got %d\n", n)
	}
}
