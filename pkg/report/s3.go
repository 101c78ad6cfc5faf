package report

import (
	"bytes"
	"context"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dd0wney/cluso-graphstats/pkg/analyzer"
)

// ReportName is the object name used for uploaded reports.
const ReportName = "degree_distribution.csv"

// ObjectPutter is the part of the S3 client the sink uses.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Options configures the S3 client. Empty fields fall back to the default
// AWS credential and region chain.
type S3Options struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
}

// NewS3Client builds an S3 client from opts.
func NewS3Client(ctx context.Context, opts S3Options) (*s3.Client, error) {
	var loaders []func(*awsconfig.LoadOptions) error
	if opts.Region != "" {
		loaders = append(loaders, awsconfig.WithRegion(opts.Region))
	}
	if opts.AccessKeyID != "" {
		loaders = append(loaders, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = opts.UsePathStyle
	}), nil
}

// S3Sink uploads the report to <prefix>/<run-id>/degree_distribution.csv.
type S3Sink struct {
	client ObjectPutter
	bucket string
	prefix string
}

// NewS3Sink returns a sink writing into bucket under prefix.
func NewS3Sink(client ObjectPutter, bucket, prefix string) *S3Sink {
	return &S3Sink{client: client, bucket: bucket, prefix: prefix}
}

func (s *S3Sink) Name() string { return "s3" }

// Target returns the s3:// URI for a run.
func (s *S3Sink) Target(runID string) string {
	return "s3://" + s.bucket + "/" + s.key(runID)
}

func (s *S3Sink) key(runID string) string {
	return path.Join(s.prefix, runID, ReportName)
}

func (s *S3Sink) Write(ctx context.Context, runID string, d analyzer.DegreeDistribution) error {
	var buf bytes.Buffer
	if err := WriteDistribution(&buf, d); err != nil {
		return &SinkError{Sink: s.Name(), Target: s.Target(runID), Cause: err}
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.key(runID)),
		Body:          bytes.NewReader(buf.Bytes()),
		ContentLength: aws.Int64(int64(buf.Len())),
		ContentType:   aws.String("text/csv"),
		Metadata:      map[string]string{"run-id": runID},
	})
	if err != nil {
		return &SinkError{Sink: s.Name(), Target: s.Target(runID), Cause: err}
	}
	return nil
}
