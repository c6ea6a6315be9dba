// Package covers hands out presigned S3 URLs for book cover images. Covers
// are uploaded and downloaded by clients directly; the server only signs.
package covers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// PresignExpiry bounds the lifetime of every signed URL.
const PresignExpiry = 15 * time.Minute

var ErrDisabled = errors.New("cover storage is not configured")

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}

	now = time.Now
)

type Options struct {
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string
	Bucket    string
}

// Presigner signs cover URLs against one bucket. The zero bucket disables it.
type Presigner struct {
	opts   Options
	client *s3.PresignClient
}

func New(ctx context.Context, opts Options) (*Presigner, error) {
	p := &Presigner{opts: opts}
	if !p.Enabled() {
		return p, nil
	}

	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(opts.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")))
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})
	p.client = s3.NewPresignClient(client)

	return p, nil
}

func (p *Presigner) Enabled() bool {
	return p != nil && p.opts.Bucket != ""
}

// NewKey returns a fresh object key under covers/<year>/<month>/<day>/.
func NewKey() string {
	d := now()
	return fmt.Sprintf("covers/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

// PresignPut returns a new object key and a URL the client may PUT the image to.
func (p *Presigner) PresignPut(ctx context.Context) (string, string, error) {
	if !p.Enabled() {
		return "", "", ErrDisabled
	}

	bucket := p.opts.Bucket
	key := NewKey()

	req, err := presignPutObject(p.client, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(PresignExpiry))
	if err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}

func (p *Presigner) PresignGet(ctx context.Context, key string) (string, error) {
	if !p.Enabled() {
		return "", ErrDisabled
	}

	bucket := p.opts.Bucket

	req, err := presignGetObject(p.client, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(PresignExpiry))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

// Resolve maps a stored cover value to something a browser can load.
// Absolute http(s) URLs and all values on a disabled presigner pass through.
func (p *Presigner) Resolve(ctx context.Context, cover string) (string, error) {
	if cover == "" || isAbsoluteURL(cover) || !p.Enabled() {
		return cover, nil
	}
	return p.PresignGet(ctx, cover)
}

func isAbsoluteURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
