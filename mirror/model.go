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

package mirror

import (
	"github.com/defsub/spiffy/lib/gorm"
)

// Export records the last mirrored state of a remote playlist.
type Export struct {
	gorm.Model
	User       string `gorm:"uniqueIndex:idx_export_playlist;not null" json:"user"`
	PlaylistID string `gorm:"uniqueIndex:idx_export_playlist;not null" json:"id"`
	Title      string `json:"title"`
	Format     string `json:"format"`
	File       string `json:"file"`
	Key        string `json:"key,omitempty"` // bucket object key
	Tracks     int    `json:"tracks"`
	Playlist   []byte `json:"-"` // JSPF as fetched
}
