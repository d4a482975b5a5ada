// Package storage archives uploaded documents in a Cloudflare R2 bucket
// through the S3 API.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/muhammadolammi/cvmatch/internal/documents"
)

type R2Config struct {
	AccountID string
	Bucket    string
	AccessKey string
	SecretKey string
}

// Validate reports a missing field.
func (c R2Config) Validate() error {
	var missing []string
	if c.AccountID == "" {
		missing = append(missing, "account id")
	}
	if c.Bucket == "" {
		missing = append(missing, "bucket")
	}
	if c.AccessKey == "" {
		missing = append(missing, "access key")
	}
	if c.SecretKey == "" {
		missing = append(missing, "secret key")
	}
	if len(missing) > 0 {
		return fmt.Errorf("incomplete r2 config: missing %s", strings.Join(missing, ", "))
	}
	return nil
}

// Endpoint is the account's S3-compatible endpoint.
func (c R2Config) Endpoint() string {
	return fmt.Sprintf("https://%s.r2.cloudflarestorage.com", c.AccountID)
}

type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Archiver writes documents under "<analysis id>/<role>/<file name>".
type Archiver struct {
	client putObjectAPI
	bucket string
}

// NewR2Archiver builds an S3 client for the R2 account.
func NewR2Archiver(ctx context.Context, cfg R2Config) (*Archiver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	awsConfig, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("error creating aws config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint())
	})
	return &Archiver{client: client, bucket: cfg.Bucket}, nil
}

// ObjectKey returns where a document of the given analysis is stored.
func ObjectKey(analysisID uuid.UUID, doc *documents.Document) string {
	name := path.Base(strings.ReplaceAll(doc.Name, `\`, "/"))
	if name == "." || name == ".." || name == "/" || name == "" {
		name = "document"
	}
	return path.Join(analysisID.String(), string(doc.Role), name)
}

// Archive uploads doc and returns its object key.
func (a *Archiver) Archive(ctx context.Context, analysisID uuid.UUID, doc *documents.Document) (string, error) {
	if doc == nil {
		return "", errors.New("nil document")
	}
	key := ObjectKey(analysisID, doc)
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(doc.Data),
		ContentType:   aws.String(doc.MIMEType),
		ContentLength: aws.Int64(int64(len(doc.Data))),
		Metadata: map[string]string{
			"analysis-id": analysisID.String(),
			"role":        string(doc.Role),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to put object: %w", err)
	}
	return key, nil
}
