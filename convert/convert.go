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

// Package convert turns JSPF playlists into M3U, XSPF or PLS text.
//
// Conversion is synchronous and works only on the in-memory playlist; the
// callers deal with reading files, fetching from ListenBrainz and saving
// the output.
package convert

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/defsub/spiffy/lib/encoding/m3u"
	"github.com/defsub/spiffy/lib/encoding/pls"
	"github.com/defsub/spiffy/lib/encoding/xspf"
	"github.com/defsub/spiffy/lib/log"
	"github.com/defsub/spiffy/lib/spiff"
	"github.com/defsub/spiffy/metrics"
)

type Format string

const (
	FormatM3U  Format = m3u.Extension
	FormatXSPF Format = xspf.Extension
	FormatJSPF Format = spiff.Extension
	FormatPLS  Format = pls.Extension

	// Downloads are always sent as plain text.
	DownloadContentType = "text/plain"
)

var Formats = []Format{FormatM3U, FormatXSPF, FormatJSPF, FormatPLS}

var (
	ErrInvalidFormat        = spiff.ErrInvalidFormat
	ErrUnsupportedFormat    = errors.New("unsupported format")
	ErrUnsupportedExtension = errors.New("unsupported file extension")
)

func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

func (f Format) Extension() string {
	return string(f)
}

func (f Format) Label() string {
	return strings.ToUpper(string(f))
}

// ContentType is the registered media type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatM3U:
		return m3u.ContentType
	case FormatXSPF:
		return xspf.ContentType
	case FormatJSPF:
		return spiff.ContentType
	case FormatPLS:
		return pls.ContentType
	}
	return DownloadContentType
}

type Result struct {
	Format  Format
	Text    string
	Tracks  int // tracks written
	Skipped int // tracks left out
}

// Notifier receives user facing status messages.
type Notifier interface {
	Notify(message string, success bool)
}

type NotifierFunc func(message string, success bool)

func (fn NotifierFunc) Notify(message string, success bool) {
	fn(message, success)
}

type logNotifier struct{}

func (logNotifier) Notify(message string, success bool) {
	log.Println(message)
}

type Converter struct {
	notifier Notifier
}

// NewConverter creates a converter. A nil notifier logs messages.
func NewConverter(notifier Notifier) *Converter {
	if notifier == nil {
		notifier = logNotifier{}
	}
	return &Converter{notifier: notifier}
}

// Convert transcodes the whole playlist into format. Nothing is returned
// on failure; there is no partial output.
func (c *Converter) Convert(playlist *spiff.Playlist, format Format) (Result, error) {
	var result Result
	var err error

	switch format {
	case FormatM3U:
		result, err = toM3U(playlist)
	case FormatXSPF:
		result, err = toXSPF(playlist)
	case FormatJSPF:
		result, err = toJSPF(playlist)
	case FormatPLS:
		result, err = toPLS(playlist)
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	if err != nil {
		log.Printf("invalid JSPF data: %s\n", err)
		metrics.ConversionsTotal.WithLabelValues(string(format), metrics.StatusError).Inc()
		return Result{}, err
	}

	metrics.ConversionsTotal.WithLabelValues(string(format), metrics.StatusSuccess).Inc()
	metrics.TracksConverted.WithLabelValues(string(format)).Add(float64(result.Tracks))
	metrics.TracksSkipped.WithLabelValues(string(format)).Add(float64(result.Skipped))
	c.notifier.Notify(fmt.Sprintf("Conversion to %s successful!", format.Label()), true)
	return result, nil
}

func (c *Converter) ToM3U(playlist *spiff.Playlist) (string, error) {
	result, err := c.Convert(playlist, FormatM3U)
	return result.Text, err
}

func (c *Converter) ToXSPF(playlist *spiff.Playlist) (string, error) {
	result, err := c.Convert(playlist, FormatXSPF)
	return result.Text, err
}

func (c *Converter) ToJSPF(playlist *spiff.Playlist) (string, error) {
	result, err := c.Convert(playlist, FormatJSPF)
	return result.Text, err
}

func (c *Converter) ToPLS(playlist *spiff.Playlist) (string, error) {
	result, err := c.Convert(playlist, FormatPLS)
	return result.Text, err
}

// toM3U writes only tracks having both a title and a creator. The
// identifier is written as is, or as an empty line when missing.
func toM3U(playlist *spiff.Playlist) (Result, error) {
	if err := playlist.Validate(); err != nil {
		return Result{}, err
	}

	var buf bytes.Buffer
	result := Result{Format: FormatM3U}
	encoder := m3u.NewEncoder(&buf)
	if err := encoder.Header(); err != nil {
		return Result{}, err
	}
	for _, t := range playlist.Spiff.Entries {
		if !t.Title.Valid || !t.Creator.Valid {
			result.Skipped++
			continue
		}
		err := encoder.Encode(m3u.Entry{
			Duration: m3u.UnknownDuration,
			Title:    t.Creator.Value + " - " + t.Title.Value,
			Location: t.Identifier.Value,
		})
		if err != nil {
			return Result{}, err
		}
		result.Tracks++
	}
	if err := encoder.Footer(); err != nil {
		return Result{}, err
	}
	result.Text = buf.String()
	return result, nil
}

// toXSPF writes every track; title, creator and location elements are
// included when present. The JSPF identifier becomes the XSPF location.
func toXSPF(playlist *spiff.Playlist) (Result, error) {
	if err := playlist.Validate(); err != nil {
		return Result{}, err
	}

	var buf bytes.Buffer
	result := Result{Format: FormatXSPF}
	encoder := xspf.NewEncoder(&buf)
	if err := encoder.Header(); err != nil {
		return Result{}, err
	}
	for _, t := range playlist.Spiff.Entries {
		err := encoder.Encode(xspf.Track{
			Title:    t.Title.Value,
			Creator:  t.Creator.Value,
			Location: t.Identifier.Value,
		})
		if err != nil {
			return Result{}, err
		}
		result.Tracks++
	}
	if err := encoder.Footer(); err != nil {
		return Result{}, err
	}
	result.Text = buf.String()
	return result, nil
}

func toJSPF(playlist *spiff.Playlist) (Result, error) {
	if err := playlist.Validate(); err != nil {
		return Result{}, err
	}
	data, err := json.MarshalIndent(playlist, "", "  ")
	if err != nil {
		return Result{}, err
	}
	return Result{
		Format: FormatJSPF,
		Text:   string(data) + "\n",
		Tracks: len(playlist.Spiff.Entries),
	}, nil
}

// toPLS writes tracks having an identifier, which becomes the PLS file.
func toPLS(playlist *spiff.Playlist) (Result, error) {
	if err := playlist.Validate(); err != nil {
		return Result{}, err
	}

	var buf bytes.Buffer
	result := Result{Format: FormatPLS}
	encoder := pls.NewEncoder(&buf)
	if err := encoder.Header(); err != nil {
		return Result{}, err
	}
	for _, t := range playlist.Spiff.Entries {
		if !t.Identifier.Valid {
			result.Skipped++
			continue
		}
		title := t.Title.Value
		if t.Title.Valid && t.Creator.Valid {
			title = t.Creator.Value + " - " + t.Title.Value
		} else if t.Creator.Valid {
			title = t.Creator.Value
		}
		err := encoder.Encode(pls.Entry{
			File:   t.Identifier.Value,
			Title:  title,
			Length: pls.UnknownLength,
		})
		if err != nil {
			return Result{}, err
		}
		result.Tracks++
	}
	if err := encoder.Footer(); err != nil {
		return Result{}, err
	}
	result.Text = buf.String()
	return result, nil
}
