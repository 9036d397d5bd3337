package s3publish

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aalvaropc/invoicer/internal/domain"
)

type upload struct {
	bucket, key, contentType, body string
}

type fakeUploader struct {
	s3manageriface.UploaderAPI
	uploads []upload
	fail    error
}

func (f *fakeUploader) UploadWithContext(_ aws.Context, in *s3manager.UploadInput, _ ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.uploads = append(f.uploads, upload{
		bucket:      aws.StringValue(in.Bucket),
		key:         aws.StringValue(in.Key),
		contentType: aws.StringValue(in.ContentType),
		body:        string(b),
	})
	return &s3manager.UploadOutput{Location: "https://example/" + aws.StringValue(in.Key)}, nil
}

func writeArtifacts(t *testing.T) domain.Artifacts {
	t.Helper()
	dir := t.TempDir()
	art := domain.Artifacts{
		PDFPath:  filepath.Join(dir, "invoice-ACME-202403-01.pdf"),
		HTMLPath: filepath.Join(dir, "index.html"),
		CSSPath:  filepath.Join(dir, "style.css"),
	}
	require.NoError(t, os.WriteFile(art.PDFPath, []byte("%PDF"), 0o644))
	require.NoError(t, os.WriteFile(art.HTMLPath, []byte("<html>"), 0o644))
	require.NoError(t, os.WriteFile(art.CSSPath, []byte("body{}"), 0o644))
	return art
}

func TestPublish_UploadsEveryArtifact(t *testing.T) {
	fake := &fakeUploader{}
	p, err := New(domain.PublishSettings{Bucket: "invoices", Prefix: "/2024/"}, WithUploader(fake))
	require.NoError(t, err)

	locs, err := p.Publish(context.Background(), writeArtifacts(t))
	require.NoError(t, err)

	require.Len(t, fake.uploads, 3)
	assert.Equal(t, upload{"invoices", "2024/ACME-202403-01/invoice-ACME-202403-01.pdf", "application/pdf", "%PDF"}, fake.uploads[0])
	assert.Equal(t, "2024/ACME-202403-01/index.html", fake.uploads[1].key)
	assert.Equal(t, "text/html; charset=utf-8", fake.uploads[1].contentType)
	assert.Equal(t, "text/css; charset=utf-8", fake.uploads[2].contentType)
	assert.Equal(t, "https://example/2024/ACME-202403-01/style.css", locs[2])
}

func TestPublish_UploadFailure(t *testing.T) {
	fake := &fakeUploader{fail: errors.New("access denied")}
	p, err := New(domain.PublishSettings{Bucket: "invoices"}, WithUploader(fake))
	require.NoError(t, err)

	_, err = p.Publish(context.Background(), writeArtifacts(t))
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindPublish))
	assert.ErrorIs(t, err, domain.ErrPublishFailed)
}

func TestNew_RequiresBucket(t *testing.T) {
	_, err := New(domain.PublishSettings{Enabled: true})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindConfig))
}
