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

package server

import (
	"time"

	"github.com/defsub/spiffy/config"
	"github.com/defsub/spiffy/lib/log"
	"github.com/defsub/spiffy/mirror"
	"github.com/go-co-op/gocron"
)

func schedule(config *config.Config, m *mirror.Mirror) *gocron.Scheduler {
	scheduler := gocron.NewScheduler(time.UTC)

	_, err := scheduler.Every(config.Mirror.Interval).Do(func() {
		syncMirror(m)
	})
	if err != nil {
		log.Println(err)
		return scheduler
	}

	scheduler.StartAsync()
	return scheduler
}

func syncMirror(m *mirror.Mirror) {
	log.Printf("sync mirror\n")
	stats, err := m.SyncAll()
	if err != nil {
		log.Println(err)
	}
	log.Printf("sync mirror: %s\n", stats)
}
