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

package config

import (
	"errors"
	"path/filepath"
	"regexp"
	"time"

	"github.com/defsub/spiffy"
	"github.com/spf13/viper"
)

type BucketConfig struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	ObjectPrefix    string
}

func (bc BucketConfig) Enabled() bool {
	return bc.BucketName != ""
}

type DatabaseConfig struct {
	Driver  string
	Source  string
	LogMode bool
}

type ClientConfig struct {
	CacheDir  string
	MaxAge    time.Duration
	UseCache  bool
	UserAgent string
	RateLimit time.Duration
}

func (c *ClientConfig) Merge(o ClientConfig) {
	if o.CacheDir != "" {
		c.CacheDir = o.CacheDir
	}
	c.MaxAge = o.MaxAge
	c.UseCache = o.UseCache
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
	c.RateLimit = o.RateLimit
}

type ListenBrainzConfig struct {
	URL           string
	Token         string
	PlaylistLimit int
}

type ConvertConfig struct {
	Format string
}

type MirrorConfig struct {
	DB         DatabaseConfig
	Dir        string
	Format     string
	Users      []string
	CreatedFor bool
	Interval   time.Duration
	Bucket     BucketConfig
}

type ServerConfig struct {
	Listen    string
	MaxUpload int64
}

type Config struct {
	Client       ClientConfig
	Convert      ConvertConfig
	ListenBrainz ListenBrainzConfig
	Mirror       MirrorConfig
	Server       ServerConfig
}

func configDefaults(v *viper.Viper) {
	v.SetDefault("Client.CacheDir", ".httpcache")
	v.SetDefault("Client.MaxAge", "1h")
	v.SetDefault("Client.UseCache", "false")
	v.SetDefault("Client.UserAgent", userAgent())
	v.SetDefault("Client.RateLimit", "1s")

	v.SetDefault("Convert.Format", "m3u")

	v.SetDefault("ListenBrainz.URL", "https://api.listenbrainz.org") // w/o trailing slash
	v.SetDefault("ListenBrainz.PlaylistLimit", "100")

	v.SetDefault("Mirror.DB.Driver", "sqlite3")
	v.SetDefault("Mirror.DB.Source", "mirror.db")
	v.SetDefault("Mirror.DB.LogMode", "false")
	v.SetDefault("Mirror.Dir", "playlists")
	v.SetDefault("Mirror.Format", "m3u")
	v.SetDefault("Mirror.CreatedFor", "true")
	v.SetDefault("Mirror.Interval", "6h")

	v.SetDefault("Server.Listen", "127.0.0.1:3000")
	v.SetDefault("Server.MaxUpload", 1<<20) // 1 MiB
}

func userAgent() string {
	return spiffy.AppName + "/" + spiffy.Version + " ( " + spiffy.Contact + " ) "
}

var pathRegexp = regexp.MustCompile(`(dir|source)$`)

func readConfig(v *viper.Viper) (*Config, error) {
	var config Config
	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		// defaults only
		err = nil
	}
	if err != nil {
		return &config, err
	}
	if used := v.ConfigFileUsed(); used != "" {
		// relative paths are relative to the config file
		dir := filepath.Dir(used)
		for _, k := range v.AllKeys() {
			if !pathRegexp.MatchString(k) {
				continue
			}
			val, ok := v.Get(k).(string)
			if ok && val != "" && !filepath.IsAbs(val) {
				v.Set(k, filepath.Join(dir, val))
			}
		}
	}
	err = v.Unmarshal(&config)
	return &config, err
}

var configFile, configPath, configName string

func SetConfigFile(path string) {
	configFile = path
}

func AddConfigPath(path string) {
	configPath = path
}

func SetConfigName(name string) {
	configName = name
}

func GetConfig() (*Config, error) {
	v := viper.GetViper()
	if configFile != "" {
		v.SetConfigFile(configFile)
	}
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	if configName != "" {
		v.SetConfigName(configName)
	}
	configDefaults(v)
	return readConfig(v)
}

func LoadConfig(dir string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName(spiffy.AppName)
	configDefaults(v)
	return readConfig(v)
}

// DefaultConfig returns the built-in defaults without reading any file.
func DefaultConfig() *Config {
	var config Config
	v := viper.New()
	configDefaults(v)
	v.Unmarshal(&config)
	return &config
}
