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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusSkipped = "skipped"
)

// Conversion metrics
var (
	ConversionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spiffy_conversions_total",
			Help: "Total number of playlist conversions",
		},
		[]string{"format", "status"},
	)

	TracksConverted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spiffy_tracks_converted_total",
			Help: "Total number of tracks written to converted playlists",
		},
		[]string{"format"},
	)

	TracksSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spiffy_tracks_skipped_total",
			Help: "Tracks left out of converted playlists for missing fields",
		},
		[]string{"format"},
	)
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spiffy_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "spiffy_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// Mirror metrics
var (
	MirrorPlaylistsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spiffy_mirror_playlists_total",
			Help: "Playlists processed by mirror syncs",
		},
		[]string{"status"},
	)

	MirrorLastSync = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "spiffy_mirror_last_sync_timestamp_seconds",
			Help: "Unix time of the last completed mirror sync",
		},
	)
)
