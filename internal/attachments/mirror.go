package attachments

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/disasterpulse/datasync/internal/config"
	"github.com/disasterpulse/datasync/internal/logging"
	"github.com/disasterpulse/datasync/internal/models"
)

// S3API is the subset of the S3 client the mirror uses.
type S3API interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Mirror copies report attachments into an S3 bucket.
type Mirror struct {
	s3     S3API
	bucket string
	client *http.Client
	logger logging.Logger
}

// NewMirror builds a Mirror against the configured S3-compatible backend
// (MinIO in development, hence static credentials and a base endpoint).
func NewMirror(cfg *config.Config, logger logging.Logger) (*Mirror, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3RootUser,
			cfg.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return &Mirror{
		s3:     client,
		bucket: cfg.S3Bucket,
		client: &http.Client{Timeout: 60 * time.Second},
		logger: logger,
	}, nil
}

// NewMirrorWithClient is the test constructor: it accepts prebuilt S3 and
// HTTP clients.
func NewMirrorWithClient(s3c S3API, bucket string, httpClient *http.Client, logger logging.Logger) *Mirror {
	return &Mirror{s3: s3c, bucket: bucket, client: httpClient, logger: logger}
}

// MirrorReport uploads the report's attachments that are not in the bucket
// yet. Each attachment fails independently; failures are logged as warnings
// and never propagate. Returns the number of fresh uploads.
func (m *Mirror) MirrorReport(ctx context.Context, rep *models.Report) int {
	atts, err := Parse(rep.File)
	if err != nil {
		m.logger.Warn(ctx, "skipping attachments with undecodable file list", "report", rep.ID, "error", err.Error())
		return 0
	}

	uploaded := 0
	for _, att := range atts {
		if att.URL == "" {
			continue
		}
		key := ObjectKey(rep.ID, att)

		if _, err := m.s3.HeadObject(ctx, &s3.HeadObjectInput{
			Bucket: aws.String(m.bucket),
			Key:    aws.String(key),
		}); err == nil {
			// already mirrored
			continue
		}

		data, contentType, err := m.download(ctx, att.URL)
		if err != nil {
			m.logger.Warn(ctx, "attachment download failed", "report", rep.ID, "url", att.URL, "error", err.Error())
			continue
		}

		if _, err := m.s3.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(m.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(data),
			ContentType: aws.String(contentType),
		}); err != nil {
			m.logger.Warn(ctx, "attachment upload failed", "report", rep.ID, "key", key, "error", err.Error())
			continue
		}

		m.logger.Debug(ctx, "attachment mirrored", "report", rep.ID, "key", key, "bytes", len(data))
		uploaded++
	}
	return uploaded
}

func (m *Mirror) download(ctx context.Context, rawURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("download failed: %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return data, contentType, nil
}
