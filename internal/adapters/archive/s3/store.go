// Package s3 archives issued reports in an S3-compatible bucket (AWS S3 or MinIO).
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/ivnamo/isoVisor/internal/adapters/archive"
	"github.com/ivnamo/isoVisor/internal/ports"
)

// Config holds the bucket settings. Credentials come from the default AWS chain.
type Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	PathStyle bool
}

type api interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, opts ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

type Store struct {
	client api
	bucket string
	now    func() time.Time
}

// New connects to the bucket described by cfg.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return newStore(client, cfg.Bucket), nil
}

func newStore(client api, bucket string) *Store {
	return &Store{client: client, bucket: bucket, now: time.Now}
}

func (s *Store) Put(ctx context.Context, name string, data []byte, contentType string) (ports.ArchivedReport, error) {
	now := s.now()
	key := archive.NewKey(now, name)
	if contentType == "" {
		contentType = archive.ContentType(name)
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return ports.ArchivedReport{}, fmt.Errorf("put %s: %w", key, err)
	}
	return ports.ArchivedReport{
		Key:         key,
		Name:        archive.NameFromKey(key),
		ContentType: contentType,
		Size:        int64(len(data)),
		CreatedAt:   now,
	}, nil
}

// List returns the archived reports, newest first.
func (s *Store) List(ctx context.Context) ([]ports.ArchivedReport, error) {
	var reports []ports.ArchivedReport
	var token *string
	for {
		out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(s.bucket),
			Prefix:            aws.String(archive.Prefix),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("list archived reports: %w", err)
		}
		for _, obj := range out.Contents {
			key := aws.ToString(obj.Key)
			reports = append(reports, ports.ArchivedReport{
				Key:         key,
				Name:        archive.NameFromKey(key),
				ContentType: archive.ContentType(key),
				Size:        aws.ToInt64(obj.Size),
				CreatedAt:   aws.ToTime(obj.LastModified),
			})
		}
		if aws.ToBool(out.IsTruncated) && out.NextContinuationToken != nil {
			token = out.NextContinuationToken
			continue
		}
		break
	}
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].CreatedAt.After(reports[j].CreatedAt)
	})
	return reports, nil
}
