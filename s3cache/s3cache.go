/* Copyright (c) 2013 The s3cache AUTHORS. All rights reserved.
 * Copyright (c) 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file in the current directory for license terms
 *
 * Package s3cache provides an implementation of httpcache.Cache that stores
 * and retrieves data using Amazon S3. It is based on the original
 * github.com/sourcegraph/s3cache but uses aws-sdk-go-v2.
 */
package s3cache

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// ObjectAPI is the subset of *s3.Client the cache needs.
type ObjectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput,
		optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput,
		optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput,
		optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type Options struct {
	// Bucket is the name of the S3 bucket, e.g. "mybucket".
	Bucket string

	// Gzip compresses entries in Set and decompresses them in Get. Object
	// keys of compressed entries carry a ".gz" suffix.
	Gzip bool

	LogErrors bool

	// Prefix is the object key prefix; "s3cache" when empty.
	Prefix string
}

// Cache objects store and retrieve data using Amazon S3.
type Cache struct {
	Config aws.Config

	// Client is set up by Init from the default AWS configuration unless
	// the caller supplied one.
	Client ObjectAPI

	opts Options
	ctx  context.Context
}

// New returns a Cache storing entries in opts.Bucket. Init must be called
// before use unless Client is set.
func New(ctx context.Context, opts Options) *Cache {
	if opts.Prefix == "" {
		opts.Prefix = "s3cache"
	}

	return &Cache{
		ctx:  ctx,
		opts: opts,
	}
}

// NewWithClient returns a ready to use Cache on top of client.
func NewWithClient(ctx context.Context, client ObjectAPI, opts Options) *Cache {
	c := New(ctx, opts)
	c.Client = client
	return c
}

func (c *Cache) logf(format string, args ...any) {
	if c.opts.LogErrors {
		log.Printf(format, args...)
	}
}

func (c *Cache) Get(key string) ([]byte, bool) {
	objKey := c.cacheKeyToObjectKey(key)
	resp, err := c.Client.GetObject(c.ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.opts.Bucket),
		Key:    aws.String(objKey),
	})
	if err != nil {
		// NoSuchKey is a plain cache miss
		var apiErr smithy.APIError
		if !(errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey") {
			c.logf("s3cache.get: failed to get object %v%v: %v", c.opts.Bucket,
				objKey, err)
		}
		return nil, false
	}
	defer resp.Body.Close()

	rdr := resp.Body
	if c.opts.Gzip {
		rdr, err = gzip.NewReader(rdr)
		if err != nil {
			c.logf("s3cache.get: failed to open compressed object %v%v: %v",
				c.opts.Bucket, objKey, err)
			return nil, false
		}
		defer rdr.Close()
	}

	data, err := io.ReadAll(rdr)
	if err != nil {
		c.logf("s3cache.get: failed to read object %v%v: %v", c.opts.Bucket,
			objKey, err)
		return nil, false
	}

	return data, true
}

// Set stores the provided data in the cache under the given key.
func (c *Cache) Set(key string, data []byte) {
	objKey := c.cacheKeyToObjectKey(key)
	input := &s3.PutObjectInput{
		Bucket: aws.String(c.opts.Bucket),
		Key:    aws.String(objKey),
		Body:   bytes.NewReader(data),
	}

	if c.opts.Gzip {
		var buf bytes.Buffer
		gw := gzip.NewWriter(&buf)
		if _, err := gw.Write(data); err != nil {
			c.logf("s3cache.set: failed to gzip data for %v%v: %v",
				c.opts.Bucket, objKey, err)
			return
		}
		if err := gw.Close(); err != nil {
			c.logf("s3cache.set: failed to close gzip writer for %v%v: %v",
				c.opts.Bucket, objKey, err)
			return
		}
		input.Body = bytes.NewReader(buf.Bytes())
		input.ContentEncoding = aws.String("gzip")
	}

	if _, err := c.Client.PutObject(c.ctx, input); err != nil {
		c.logf("s3cache.set: put failed for %v%v: %v", c.opts.Bucket, objKey,
			err)
	}
}

func (c *Cache) Delete(key string) {
	objKey := c.cacheKeyToObjectKey(key)
	_, err := c.Client.DeleteObject(c.ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.opts.Bucket),
		Key:    aws.String(objKey),
	})
	if err != nil {
		c.logf("s3cache.delete: delete failed for %v%v: %v", c.opts.Bucket,
			objKey, err)
	}
}

func (c *Cache) cacheKeyToObjectKey(key string) string {
	sum := md5.Sum([]byte(key))
	objKey := fmt.Sprintf("/%v/%v", c.opts.Prefix, hex.EncodeToString(sum[:]))
	if c.opts.Gzip {
		objKey += ".gz"
	}

	return objKey
}

// Init loads the default AWS configuration (environment variables, then
// the shared config and credentials files) and verifies that the bucket
// can be read and listed.
func (c *Cache) Init() error {
	var err error
	c.Config, err = config.LoadDefaultConfig(c.ctx)
	if err != nil {
		return fmt.Errorf("s3cache.init: failed to load AWS config: %w", err)
	}
	client := s3.NewFromConfig(c.Config)

	if _, err = client.HeadBucket(c.ctx, &s3.HeadBucketInput{
		Bucket: aws.String(c.opts.Bucket),
	}); err != nil {
		return fmt.Errorf("s3cache.init: head bucket failed for %s: %w",
			c.opts.Bucket, err)
	}
	if _, err = client.ListObjectsV2(c.ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(c.opts.Bucket),
		MaxKeys: aws.Int32(1),
	}); err != nil {
		return fmt.Errorf("s3cache.init: list objects failed for %s: %w",
			c.opts.Bucket, err)
	}
	c.Client = client

	return nil
}
