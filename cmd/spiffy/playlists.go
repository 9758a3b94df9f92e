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

	"github.com/defsub/spiffy/lib/date"
	"github.com/defsub/spiffy/lib/listenbrainz"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var playlistsCmd = &cobra.Command{
	Use:   "playlists",
	Short: "list ListenBrainz playlists",
	Long: `List playlists created by a user, or created for a user with
--createdfor. With --select, pick one from a menu to fetch and convert.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return playlists()
	},
}

var user string
var createdFor, selectPlaylist bool

func playlists() error {
	cfg, err := getConfig()
	if err != nil {
		return err
	}
	lb := listenbrainz.NewListenBrainz(cfg)

	var list []listenbrainz.PlaylistInfo
	if createdFor {
		list, err = lb.CreatedFor(user)
	} else {
		list, err = lb.UserPlaylists(user)
	}
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("no playlists")
		return nil
	}

	if !selectPlaylist {
		for _, p := range list {
			fmt.Printf("%s  %-10s  %s\n", p.ID, date.Format(date.ParseDate(p.Date)), p.Title)
		}
		return nil
	}

	prompt := promptui.Select{
		Label: "Playlist",
		Items: list,
		Size:  10,
		Templates: &promptui.SelectTemplates{
			Active:   `> {{ .Title | cyan }}`,
			Inactive: `  {{ .Title }}`,
			Selected: `{{ .Title | green }}`,
			Details:  `{{ .Creator }} {{ .Date }}`,
		},
	}
	i, _, err := prompt.Run()
	if err != nil {
		return err
	}
	return fetch(cfg, list[i].ID)
}

func init() {
	playlistsCmd.Flags().StringVarP(&user, "user", "u", "", "ListenBrainz user name")
	playlistsCmd.Flags().BoolVar(&createdFor, "createdfor", false, "playlists created for the user")
	playlistsCmd.Flags().BoolVar(&selectPlaylist, "select", false, "select a playlist to convert")
	playlistsCmd.Flags().StringVarP(&format, "format", "f", "", "output format (m3u, xspf, jspf, pls)")
	playlistsCmd.Flags().StringVarP(&output, "output", "o", "", "output file or - for stdout")
	playlistsCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(playlistsCmd)
}
