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
	"github.com/defsub/spiffy/config"
	"github.com/defsub/spiffy/convert"
	"github.com/defsub/spiffy/lib/listenbrainz"
	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <id|url>",
	Short: "fetch and convert a ListenBrainz playlist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfig()
		if err != nil {
			return err
		}
		return fetch(cfg, args[0])
	},
}

func fetch(cfg *config.Config, id string) error {
	f, err := outputFormat(cfg)
	if err != nil {
		return err
	}
	lb := listenbrainz.NewListenBrainz(cfg)
	playlist, _, err := lb.Playlist(id)
	if err != nil {
		return err
	}
	result, err := convert.NewConverter(notify).Convert(playlist, f)
	if err != nil {
		return err
	}
	out := output
	if out == "" {
		out = convert.TitleFileName(playlist.Title(), f)
	}
	return writeOutput(out, result.Text)
}

func init() {
	fetchCmd.Flags().StringVarP(&format, "format", "f", "", "output format (m3u, xspf, jspf, pls)")
	fetchCmd.Flags().StringVarP(&output, "output", "o", "", "output file or - for stdout")
	rootCmd.AddCommand(fetchCmd)
}
