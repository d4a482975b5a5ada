package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muhammadolammi/cvmatch/internal/documents"
)

type fakeS3 struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.input = in
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.body = body
	return &s3.PutObjectOutput{}, nil
}

func TestArchive(t *testing.T) {
	t.Parallel()

	client := &fakeS3{}
	a := &Archiver{client: client, bucket: "uploads"}
	id := uuid.MustParse("6f1c2a8e-4b1d-4c55-9a53-2a7c0f1e9b10")
	doc := &documents.Document{Role: documents.RoleCV, Name: "Jane Doe.pdf", MIMEType: documents.MIMEPDF, Data: []byte("%PDF-1.4")}

	key, err := a.Archive(context.Background(), id, doc)
	require.NoError(t, err)

	assert.Equal(t, "6f1c2a8e-4b1d-4c55-9a53-2a7c0f1e9b10/cv/Jane Doe.pdf", key)
	assert.Equal(t, "uploads", aws.ToString(client.input.Bucket))
	assert.Equal(t, key, aws.ToString(client.input.Key))
	assert.Equal(t, documents.MIMEPDF, aws.ToString(client.input.ContentType))
	assert.Equal(t, doc.Data, client.body)
}

func TestArchive_Error(t *testing.T) {
	t.Parallel()

	a := &Archiver{client: &fakeS3{err: errors.New("access denied")}, bucket: "uploads"}
	doc := &documents.Document{Role: documents.RoleJobDescription, Name: "jd.pdf"}

	_, err := a.Archive(context.Background(), uuid.New(), doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}

func TestObjectKey_StripsDirectories(t *testing.T) {
	t.Parallel()

	id := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	key := ObjectKey(id, &documents.Document{Role: documents.RoleJobDescription, Name: `..\..\etc\passwd`})
	assert.Equal(t, "00000000-0000-0000-0000-000000000001/jd/passwd", key)

	key = ObjectKey(id, &documents.Document{Role: documents.RoleCV, Name: ""})
	assert.Equal(t, "00000000-0000-0000-0000-000000000001/cv/document", key)
}

func TestR2Config(t *testing.T) {
	t.Parallel()

	cfg := R2Config{AccountID: "acc", Bucket: "b", AccessKey: "k"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "secret key")

	cfg.SecretKey = "s"
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "https://acc.r2.cloudflarestorage.com", cfg.Endpoint())
}
