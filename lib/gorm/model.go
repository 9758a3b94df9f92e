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

package gorm

import (
	"time"

	g "gorm.io/gorm"
)

// Model is gorm.Model with bookkeeping fields hidden from JSON output.
type Model struct {
	ID        uint        `gorm:"primarykey" json:"-"`
	CreatedAt time.Time   `json:"-"`
	UpdatedAt time.Time   `json:"updated"`
	DeletedAt g.DeletedAt `gorm:"index" json:"-"`
}
