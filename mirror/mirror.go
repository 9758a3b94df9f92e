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

// Package mirror keeps converted copies of ListenBrainz playlists on disk
// and, optionally, in an S3 bucket.
package mirror

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/defsub/spiffy/config"
	"github.com/defsub/spiffy/convert"
	"github.com/defsub/spiffy/lib/bucket"
	"github.com/defsub/spiffy/lib/listenbrainz"
	"github.com/defsub/spiffy/lib/log"
	"github.com/defsub/spiffy/lib/spiff"
	"github.com/defsub/spiffy/metrics"
	"gorm.io/gorm"
)

type Stats struct {
	Playlists int
	Exported  int
	Skipped   int
	Failed    int
}

func (s *Stats) add(o Stats) {
	s.Playlists += o.Playlists
	s.Exported += o.Exported
	s.Skipped += o.Skipped
	s.Failed += o.Failed
}

func (s Stats) String() string {
	return fmt.Sprintf("%d playlists, %d exported, %d unchanged, %d failed",
		s.Playlists, s.Exported, s.Skipped, s.Failed)
}

type Mirror struct {
	config    *config.Config
	db        *gorm.DB
	lb        *listenbrainz.ListenBrainz
	converter *convert.Converter
	bucket    *bucket.Bucket
	mu        sync.Mutex
}

func NewMirror(config *config.Config) *Mirror {
	return &Mirror{
		config:    config,
		lb:        listenbrainz.NewListenBrainz(config),
		converter: convert.NewConverter(convert.NotifierFunc(func(string, bool) {})),
	}
}

func (m *Mirror) Open() (err error) {
	err = m.openDB()
	if err != nil {
		return
	}
	if m.config.Mirror.Bucket.Enabled() {
		m.bucket, err = bucket.Open(m.config.Mirror.Bucket)
	}
	return
}

func (m *Mirror) Close() {
	m.closeDB()
}

// Exports returns what has been mirrored for user, ordered by title.
func (m *Mirror) Exports(user string) []Export {
	return m.userExports(user)
}

// SyncAll mirrors playlists for every configured user. A failing user
// does not stop the others.
func (m *Mirror) SyncAll() (Stats, error) {
	var total Stats
	var errs []error
	for _, user := range m.config.Mirror.Users {
		stats, err := m.Sync(user)
		total.add(stats)
		if err != nil {
			log.Printf("mirror %s: %s\n", user, err)
			errs = append(errs, err)
		}
	}
	return total, errors.Join(errs...)
}

// Sync mirrors playlists for user. Playlists whose content has not changed
// since the last export are skipped. Failures for a single playlist are
// logged and counted.
func (m *Mirror) Sync(user string) (Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var stats Stats
	format, err := convert.ParseFormat(m.config.Mirror.Format)
	if err != nil {
		return stats, err
	}

	list, err := m.lb.UserPlaylists(user)
	if err != nil {
		return stats, err
	}
	if m.config.Mirror.CreatedFor {
		more, err := m.lb.CreatedFor(user)
		if err != nil {
			return stats, err
		}
		list = append(list, more...)
	}

	var playlists []listenbrainz.PlaylistInfo
	seen := make(map[string]bool)
	for _, info := range list {
		if info.ID == "" || seen[info.ID] {
			continue
		}
		seen[info.ID] = true
		playlists = append(playlists, info)
	}

	// files already exported for listed playlists stay with them
	claims := make(map[string]string)
	for _, e := range m.userExports(user) {
		if _, ok := claims[e.File]; ok || !seen[e.PlaylistID] || e.File == "" {
			continue
		}
		claims[e.File] = e.PlaylistID
	}

	for _, info := range playlists {
		stats.Playlists++
		exported, err := m.export(user, info, format, claims)
		switch {
		case err != nil:
			log.Printf("mirror %s %q: %s\n", user, info.Title, err)
			metrics.MirrorPlaylistsTotal.WithLabelValues(metrics.StatusError).Inc()
			stats.Failed++
		case exported:
			metrics.MirrorPlaylistsTotal.WithLabelValues(metrics.StatusSuccess).Inc()
			stats.Exported++
		default:
			metrics.MirrorPlaylistsTotal.WithLabelValues(metrics.StatusSkipped).Inc()
			stats.Skipped++
		}
	}

	metrics.MirrorLastSync.SetToCurrentTime()
	log.Printf("mirror %s: %s\n", user, stats)
	return stats, nil
}

func userDir(user string) string {
	return convert.SafeName(strings.TrimSpace(user))
}

// filePath picks the mirror file for a playlist. A playlist keeps the
// file it was last exported to while its title and format still match.
// Otherwise it takes the title based name, suffixed with the playlist ID
// when another playlist holds that name. Claims maps files to playlist IDs.
func filePath(dir, title, id string, format convert.Format,
	stored string, claims map[string]string) string {
	short := id
	if len(short) > 8 {
		short = short[:8]
	}
	plain := filepath.Join(dir, convert.TitleFileName(title, format))
	suffixed := filepath.Join(dir,
		convert.FileName(convert.SafeName(title)+"_"+convert.SafeName(short), format))

	free := func(file string) bool {
		owner, ok := claims[file]
		return !ok || owner == id
	}

	var file string
	switch {
	case (stored == plain || stored == suffixed) && free(stored):
		file = stored
	case free(plain):
		file = plain
	default:
		file = suffixed
	}
	claims[file] = id
	return file
}

func (m *Mirror) export(user string, info listenbrainz.PlaylistInfo,
	format convert.Format, claims map[string]string) (bool, error) {
	playlist, data, err := m.lb.Playlist(info.ID)
	if err != nil {
		return false, err
	}

	title := playlist.Title()
	if title == "" {
		title = info.Title
	}

	e := m.lookupExport(user, info.ID)
	var stored string
	if e != nil {
		stored = e.File
	}
	file := filePath(filepath.Join(m.config.Mirror.Dir, userDir(user)),
		title, info.ID, format, stored, claims)
	name := filepath.Base(file)

	if e != nil && e.Format == string(format) && e.File == file && exists(file) {
		same, err := spiff.Compare(e.Playlist, data)
		if err == nil && same {
			return false, nil
		}
	}

	result, err := m.converter.Convert(playlist, format)
	if err != nil {
		return false, err
	}

	if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
		return false, err
	}
	if err := os.WriteFile(file, []byte(result.Text), 0644); err != nil {
		return false, err
	}

	var key string
	if m.bucket != nil {
		key, err = m.bucket.Put(path.Join(userDir(user), name),
			[]byte(result.Text), format.ContentType())
		if err != nil {
			return false, err
		}
	}

	if e == nil {
		e = &Export{User: user, PlaylistID: info.ID}
	} else if e.File != "" && e.File != file {
		// renamed or reformatted, unless another playlist took the file
		if owner, ok := claims[e.File]; !ok || owner == info.ID {
			os.Remove(e.File)
		}
	}
	e.Title = title
	e.Format = string(format)
	e.File = file
	e.Key = key
	e.Tracks = result.Tracks
	e.Playlist = data
	if e.ID == 0 {
		err = m.createExport(e)
		if err == nil {
			log.Printf("mirror %s: new playlist %q\n", user, title)
		}
	} else {
		err = m.updateExport(e)
	}
	return err == nil, err
}

func exists(file string) bool {
	_, err := os.Stat(file)
	return err == nil
}
