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

package main

import (
	"fmt"

	"github.com/defsub/spiffy/mirror"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "mirror ListenBrainz playlists once",
	Long: `Convert playlists of the configured mirror users, or those given
with -u, into the mirror directory. Unchanged playlists are skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return syncMirror()
	},
}

var users []string

func syncMirror() error {
	cfg, err := getConfig()
	if err != nil {
		return err
	}
	if len(users) > 0 {
		cfg.Mirror.Users = users
	}
	if len(cfg.Mirror.Users) == 0 {
		return fmt.Errorf("no users to sync")
	}

	m := mirror.NewMirror(cfg)
	err = m.Open()
	if err != nil {
		return err
	}
	defer m.Close()

	stats, err := m.SyncAll()
	for _, u := range cfg.Mirror.Users {
		for _, e := range m.Exports(u) {
			fmt.Printf("%s  %s  %d tracks\n", e.File, e.Title, e.Tracks)
		}
	}
	fmt.Println(stats)
	return err
}

func init() {
	syncCmd.Flags().StringSliceVarP(&users, "user", "u", nil, "ListenBrainz user name")
	rootCmd.AddCommand(syncCmd)
}
