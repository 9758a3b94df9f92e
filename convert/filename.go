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

package convert

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/defsub/spiffy/lib/spiff"
)

const (
	DefaultName = "playlist"
)

var unsafeRegexp = regexp.MustCompile(`[^a-zA-Z0-9]`)

// CheckExtension accepts only .jspf file names, ignoring case.
func CheckExtension(name string) error {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	if !strings.EqualFold(ext, spiff.Extension) {
		return fmt.Errorf("%w: %q", ErrUnsupportedExtension, filepath.Base(name))
	}
	return nil
}

// BaseName strips the directory and trailing extension from a file name.
func BaseName(name string) string {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return DefaultName
	}
	return base
}

// SafeName replaces anything other than ASCII letters and digits with
// underscores and lowercases the result.
func SafeName(title string) string {
	name := strings.ToLower(unsafeRegexp.ReplaceAllString(title, "_"))
	if name == "" {
		return DefaultName
	}
	return name
}

func FileName(base string, format Format) string {
	return base + "." + format.Extension()
}

// UploadFileName derives the output name for a converted file upload.
func UploadFileName(source string, format Format) string {
	return FileName(BaseName(source), format)
}

// TitleFileName derives the output name for a fetched playlist.
func TitleFileName(title string, format Format) string {
	return FileName(SafeName(title), format)
}
