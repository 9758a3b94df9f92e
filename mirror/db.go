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
	"errors"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ErrDriverNotSupported = errors.New("driver not supported")

func (m *Mirror) openDB() (err error) {
	var glog logger.Interface
	if m.config.Mirror.DB.LogMode == false {
		glog = logger.Discard
	} else {
		glog = logger.Default
	}
	cfg := &gorm.Config{
		Logger: glog,
	}

	if m.config.Mirror.DB.Driver == "sqlite3" {
		m.db, err = gorm.Open(sqlite.Open(m.config.Mirror.DB.Source), cfg)
	} else {
		err = ErrDriverNotSupported
	}

	if err != nil {
		return
	}

	err = m.db.AutoMigrate(&Export{})
	return
}

func (m *Mirror) closeDB() {
	conn, err := m.db.DB()
	if err != nil {
		return
	}
	conn.Close()
}

func (m *Mirror) userExports(user string) []Export {
	var exports []Export
	m.db.Where("user = ?", user).Order("title").Find(&exports)
	return exports
}

func (m *Mirror) lookupExport(user, id string) *Export {
	var exports []Export
	m.db.Where("user = ? and playlist_id = ?", user, id).Find(&exports)
	if len(exports) == 0 {
		return nil
	}
	return &exports[0]
}

func (m *Mirror) createExport(e *Export) error {
	return m.db.Create(e).Error
}

func (m *Mirror) updateExport(e *Export) error {
	return m.db.Save(e).Error
}
