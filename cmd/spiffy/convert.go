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

	"github.com/defsub/spiffy/config"
	"github.com/defsub/spiffy/convert"
	"github.com/defsub/spiffy/lib/spiff"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert file.jspf",
	Short: "convert a JSPF file",
	Long: `Convert a local JSPF file to M3U, XSPF, PLS or normalized JSPF. The
output is written to the current directory using the input file name
and the new extension, unless -o is given. Use -o - for stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return convertFile(args[0])
	},
}

var format, output, patchFile string

func outputFormat(cfg *config.Config) (convert.Format, error) {
	if format == "" {
		format = cfg.Convert.Format
	}
	return convert.ParseFormat(format)
}

func convertFile(file string) error {
	cfg, err := getConfig()
	if err != nil {
		return err
	}
	f, err := outputFormat(cfg)
	if err != nil {
		return err
	}
	if err := convert.CheckExtension(file); err != nil {
		return err
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	if patchFile != "" {
		patch, err := os.ReadFile(patchFile)
		if err != nil {
			return err
		}
		data, err = spiff.Patch(data, patch)
		if err != nil {
			return fmt.Errorf("%s: %w", patchFile, err)
		}
	}

	playlist, err := spiff.Unmarshal(data)
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	result, err := convert.NewConverter(notify).Convert(playlist, f)
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}

	out := output
	if out == "" {
		out = convert.UploadFileName(file, f)
	}
	return writeOutput(out, result.Text)
}

func init() {
	convertCmd.Flags().StringVarP(&format, "format", "f", "", "output format (m3u, xspf, jspf, pls)")
	convertCmd.Flags().StringVarP(&output, "output", "o", "", "output file or - for stdout")
	convertCmd.Flags().StringVar(&patchFile, "patch", "", "JSON patch applied before converting")
	rootCmd.AddCommand(convertCmd)
}
