// Package s3publish uploads committed invoice artifacts to an S3 bucket.
package s3publish

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"

	"github.com/aalvaropc/invoicer/internal/domain"
	"github.com/aalvaropc/invoicer/internal/ports"
)

type Publisher struct {
	uploader s3manageriface.UploaderAPI
	bucket   string
	prefix   string
}

type Option func(*Publisher)

// WithUploader replaces the SDK uploader, mainly for tests.
func WithUploader(u s3manageriface.UploaderAPI) Option {
	return func(p *Publisher) { p.uploader = u }
}

// New builds a publisher for target. Credentials come from the usual AWS
// environment (env vars, shared config, instance role).
func New(target domain.PublishSettings, opts ...Option) (*Publisher, error) {
	if strings.TrimSpace(target.Bucket) == "" {
		return nil, &domain.OpError{
			Op:   "s3publish.new",
			Kind: domain.KindConfig,
			Err:  fmt.Errorf("%w: publish.bucket is required when publishing is enabled", domain.ErrInvalidConfig),
		}
	}

	p := &Publisher{
		bucket: target.Bucket,
		prefix: strings.Trim(target.Prefix, "/"),
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.uploader == nil {
		cfg := &aws.Config{}
		if target.Region != "" {
			cfg.Region = aws.String(target.Region)
		}
		sess, err := session.NewSession(cfg)
		if err != nil {
			return nil, &domain.OpError{
				Op:   "s3publish.session",
				Kind: domain.KindConfig,
				Err:  err,
			}
		}
		p.uploader = s3manager.NewUploader(sess)
	}

	return p, nil
}

var _ ports.Publisher = (*Publisher)(nil)

// Publish uploads the PDF, HTML and stylesheet under <prefix>/<invoice>/.
func (p *Publisher) Publish(ctx context.Context, art domain.Artifacts) ([]string, error) {
	folder := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(art.PDFPath), "invoice-"), ".pdf")

	var locations []string
	for _, file := range []string{art.PDFPath, art.HTMLPath, art.CSSPath} {
		if file == "" {
			continue
		}
		loc, err := p.upload(ctx, file, p.key(folder, filepath.Base(file)))
		if err != nil {
			return locations, err
		}
		locations = append(locations, loc)
	}
	return locations, nil
}

func (p *Publisher) key(folder, name string) string {
	if p.prefix == "" {
		return path.Join(folder, name)
	}
	return path.Join(p.prefix, folder, name)
}

func (p *Publisher) upload(ctx context.Context, file, key string) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", &domain.OpError{
			Op:   "s3publish.open",
			Kind: domain.KindPublish,
			Path: file,
			Err:  fmt.Errorf("%w: %v", domain.ErrPublishFailed, err),
		}
	}
	defer f.Close()

	out, err := p.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(contentType(file)),
	})
	if err != nil {
		return "", &domain.OpError{
			Op:   "s3publish.upload",
			Kind: domain.KindPublish,
			Path: file,
			Err:  fmt.Errorf("%w: %v", domain.ErrPublishFailed, err),
		}
	}

	if out != nil && out.Location != "" {
		return out.Location, nil
	}
	return fmt.Sprintf("s3://%s/%s", p.bucket, key), nil
}

func contentType(file string) string {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".pdf":
		return "application/pdf"
	case ".html":
		return "text/html; charset=utf-8"
	case ".css":
		return "text/css; charset=utf-8"
	}
	if t := mime.TypeByExtension(filepath.Ext(file)); t != "" {
		return t
	}
	return "application/octet-stream"
}
