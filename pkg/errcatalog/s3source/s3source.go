// Package s3source loads error catalog resources from Amazon S3 or an
// S3-compatible object store such as MinIO.
//
// Objects directly under the configured prefix are parsed with the parser matching
// their extension; objects in deeper "directories" are ignored, like the files of
// subdirectories are by errcatalog.DirectoryAdapter.
//
//	adapter, err := s3source.New(ctx, s3source.Config{
//		Bucket: "translations",
//		Region: "eu-central-1",
//		Prefix: "errors/",
//	})
//	if err != nil {
//		return err
//	}
//	catalog, err := errcatalog.LoadFrom(ctx, adapter, "en")
package s3source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"slices"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/dmitrymomot/errcatalog/pkg/errcatalog"
)

// Client defines the S3 operations used by Adapter.
type Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// Config contains the location of the resources and the S3 connection settings.
type Config struct {
	Bucket         string
	Region         string
	Prefix         string // Optional: "directory" holding the resource files
	AccessKeyID    string
	SecretKey      string
	Endpoint       string // Optional: for S3-compatible services
	ForcePathStyle bool   // For S3-compatible services like MinIO
}

// Option configures an Adapter.
type Option func(*options)

type options struct {
	client        Client
	httpClient    *http.Client
	configOptions []func(*config.LoadOptions) error
	clientOptions []func(*s3.Options)
	parsers       []errcatalog.Parser
	maxObjectSize int64
}

// WithClient sets a custom pre-configured S3 client.
// Useful for testing with mocks.
func WithClient(client Client) Option {
	return func(o *options) {
		o.client = client
	}
}

// WithHTTPClient sets a custom HTTP client for S3 requests.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithConfigOption adds a custom AWS config option.
func WithConfigOption(option func(*config.LoadOptions) error) Option {
	return func(o *options) {
		o.configOptions = append(o.configOptions, option)
	}
}

// WithClientOption adds a custom S3 client option.
func WithClientOption(option func(*s3.Options)) Option {
	return func(o *options) {
		o.clientOptions = append(o.clientOptions, option)
	}
}

// WithParsers restricts the resource formats. Default is every built-in parser.
func WithParsers(parsers ...errcatalog.Parser) Option {
	return func(o *options) {
		o.parsers = parsers
	}
}

// WithMaxObjectSize limits the size of a single resource object. Default is 4 MiB.
func WithMaxObjectSize(size int64) Option {
	return func(o *options) {
		if size > 0 {
			o.maxObjectSize = size
		}
	}
}

// Adapter implements errcatalog.ResourceAdapter for objects stored in S3.
// It is safe for concurrent use.
type Adapter struct {
	client        Client
	bucket        string
	prefix        string
	parsers       []errcatalog.Parser
	maxObjectSize int64
}

// New creates an adapter reading resources from cfg.Bucket under cfg.Prefix.
func New(ctx context.Context, cfg Config, opts ...Option) (*Adapter, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, ErrInvalidConfig
	}

	o := &options{maxObjectSize: 4 << 20}
	for _, opt := range opts {
		opt(o)
	}
	if len(o.parsers) == 0 {
		o.parsers = errcatalog.DefaultParsers()
	}

	client := o.client
	if client == nil {
		awsOptions := []func(*config.LoadOptions) error{
			config.WithRegion(cfg.Region),
		}
		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			awsOptions = append(awsOptions,
				config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
					cfg.AccessKeyID,
					cfg.SecretKey,
					"",
				)),
			)
		}
		if o.httpClient != nil {
			awsOptions = append(awsOptions, config.WithHTTPClient(o.httpClient))
		}
		awsOptions = append(awsOptions, o.configOptions...)

		awsConfig, err := config.LoadDefaultConfig(ctx, awsOptions...)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedToLoadConfig, err)
		}

		client = s3.NewFromConfig(awsConfig, func(so *s3.Options) {
			if cfg.Endpoint != "" {
				so.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			so.UsePathStyle = cfg.ForcePathStyle
			for _, opt := range o.clientOptions {
				opt(so)
			}
		})
	}

	prefix := strings.TrimPrefix(cfg.Prefix, "/")
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	return &Adapter{
		client:        client,
		bucket:        cfg.Bucket,
		prefix:        prefix,
		parsers:       o.parsers,
		maxObjectSize: o.maxObjectSize,
	}, nil
}

// Load implements the errcatalog.ResourceAdapter interface.
// Any object that cannot be read or parsed fails the whole load.
func (a *Adapter) Load(ctx context.Context) ([]errcatalog.LocaleResource, error) {
	keys, err := a.listKeys(ctx)
	if err != nil {
		return nil, err
	}

	var resources []errcatalog.LocaleResource
	found := false
	for _, key := range keys {
		parser := errcatalog.ParserFor(key, a.parsers...)
		if parser == nil {
			continue
		}
		found = true

		content, err := a.read(ctx, key)
		if err != nil {
			return nil, err
		}
		parsed, err := errcatalog.ParseResource(ctx, parser, a.source(key), content)
		if err != nil {
			return nil, err
		}
		resources = append(resources, parsed...)
	}

	if !found {
		return nil, fmt.Errorf("%w in s3://%s/%s", errcatalog.ErrNoResourceFiles, a.bucket, a.prefix)
	}
	return resources, nil
}

// listKeys returns the keys of the objects directly under the prefix, sorted.
func (a *Adapter) listKeys(ctx context.Context) ([]string, error) {
	paginator := s3.NewListObjectsV2Paginator(a.client, &s3.ListObjectsV2Input{
		Bucket:    aws.String(a.bucket),
		Prefix:    aws.String(a.prefix),
		Delimiter: aws.String("/"),
	})

	var keys []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, classifyS3Error(err, "list resources")
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			name := strings.TrimPrefix(key, a.prefix)
			if name == "" || strings.Contains(name, "/") {
				continue
			}
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)
	return keys, nil
}

func (a *Adapter) read(ctx context.Context, key string) ([]byte, error) {
	out, err := a.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, classifyS3Error(err, "get resource")
	}
	defer func() { _ = out.Body.Close() }()

	content, err := io.ReadAll(io.LimitReader(out.Body, a.maxObjectSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFailedToReadObject, a.source(key), err)
	}
	if int64(len(content)) > a.maxObjectSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrFailedToReadObject, a.source(key), a.maxObjectSize)
	}
	return content, nil
}

func (a *Adapter) source(key string) string {
	return "s3://" + path.Join(a.bucket, key)
}

// classifyS3Error converts S3 errors to package errors.
func classifyS3Error(err error, operation string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s operation", ErrOperationTimeout, operation)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %s operation", ErrOperationCanceled, operation)
	}

	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return fmt.Errorf("%w: %s", ErrObjectNotFound, err)
	}

	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return ErrBucketNotFound
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		switch code {
		case "AccessDenied":
			return fmt.Errorf("%w: %s operation", ErrAccessDenied, operation)
		case "SlowDown", "ServiceUnavailable":
			return fmt.Errorf("%w: %s operation", ErrServiceUnavailable, operation)
		case "NoSuchKey":
			return fmt.Errorf("%w: %s", ErrObjectNotFound, err)
		case "NoSuchBucket":
			return ErrBucketNotFound
		default:
			return fmt.Errorf("%s operation failed (code: %s): %w", operation, code, err)
		}
	}

	return fmt.Errorf("%s operation failed: %w", operation, err)
}
