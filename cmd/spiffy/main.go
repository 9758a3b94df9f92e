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
	"os"

	"github.com/defsub/spiffy"
	"github.com/defsub/spiffy/config"
	"github.com/defsub/spiffy/convert"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   spiffy.AppName,
	Short: "Spiffy converts JSPF playlists to M3U and XSPF",
	Long: `Spiffy converts JSPF playlists, such as those exported by
ListenBrainz, into M3U or XSPF files. Playlists can be converted from
local files, fetched from ListenBrainz, mirrored periodically or
converted through a small HTTP service.`,
	SilenceUsage: true,
}

var configFile string
var configPath string
var configName string

func getConfig() (*config.Config, error) {
	if configPath == "" {
		configPath = os.Getenv("SPIFFY_HOME")
	}
	if configName == "" {
		configName = os.Getenv("SPIFFY_CONFIG")
	}
	if configFile != "" {
		config.SetConfigFile(configFile)
	} else {
		if configPath == "" {
			configPath = "."
		}
		if configName == "" {
			configName = spiffy.AppName
		}
		config.AddConfigPath(configPath)
		config.SetConfigName(configName)
	}
	return config.GetConfig()
}

// notify prints converter messages for the terminal.
var notify = convert.NotifierFunc(func(message string, success bool) {
	if success {
		fmt.Fprintln(os.Stderr, message)
	} else {
		fmt.Fprintln(os.Stderr, "error:", message)
	}
})

// writeOutput writes text to out, or to stdout when out is "-".
func writeOutput(out, text string) error {
	if out == "-" {
		_, err := fmt.Print(text)
		return err
	}
	err := os.WriteFile(out, []byte(text), 0644)
	if err == nil {
		fmt.Fprintf(os.Stderr, "wrote %s\n", out)
	}
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file")
}
