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

package bucket

import (
	"bytes"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/defsub/spiffy/config"
)

type Bucket struct {
	config *config.BucketConfig
	s3     *s3.S3
}

func Open(config config.BucketConfig) (*Bucket, error) {
	creds := credentials.NewStaticCredentials(
		config.AccessKeyID,
		config.SecretAccessKey, "")
	s3Config := &aws.Config{
		Credentials:      creds,
		Endpoint:         aws.String(config.Endpoint),
		Region:           aws.String(config.Region),
		S3ForcePathStyle: aws.Bool(true)}
	session, err := session.NewSession(s3Config)
	if err != nil {
		return nil, err
	}
	bucket := &Bucket{
		s3:     s3.New(session),
		config: &config,
	}
	return bucket, nil
}

// Key returns the object key for name below the configured prefix.
func (b *Bucket) Key(name string) string {
	prefix := strings.TrimLeft(b.config.ObjectPrefix, "/")
	return strings.TrimLeft(path.Join(prefix, name), "/")
}

// Put uploads data as name and returns the object key.
func (b *Bucket) Put(name string, data []byte, contentType string) (string, error) {
	key := b.Key(name)
	_, err := b.s3.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(b.config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	return key, err
}
