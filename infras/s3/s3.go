package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"net/url"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"

	"roombooking/config"
	"roombooking/infras/otel"
	"roombooking/shared/constant"
)

const region = "auto"

// S3 stores generated files in an S3 compatible bucket.
type S3 interface {
	// Upload writes data under directory/fileName and returns its public URL.
	// Browsers are told to download it as fileName.
	Upload(ctx context.Context, directory, fileName, contentType string, data []byte) (url string, err error)
}

type s3Impl struct {
	client *s3.Client
	bucket string
	public string
	otel   otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) S3 {
	creds := credentials.NewStaticCredentialsProvider(
		cfg.External.S3.AccessKeyID,
		cfg.External.S3.SecretAccessKey,
		"",
	)

	awsCfg, err := awsConfig.LoadDefaultConfig(context.Background(),
		awsConfig.WithCredentialsProvider(creds),
		awsConfig.WithRegion(region),
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to load AWS configuration")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.External.S3.APIEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.External.S3.APIEndpoint)
		}

		o.UsePathStyle = true
	})

	return &s3Impl{
		client: client,
		bucket: cfg.External.S3.BucketName,
		public: cfg.External.S3.PublicDomain,
		otel:   otel,
	}
}

func (svc *s3Impl) Upload(ctx context.Context, directory, fileName, contentType string, data []byte) (link string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".Upload")
	defer scope.End()
	defer scope.TraceIfError(&err)

	key := path.Join(directory, fileName)

	scope.SetAttributes(map[string]any{
		"s3.key":    key,
		"s3.bucket": svc.bucket,
		"s3.size":   len(data),
	})

	_, err = svc.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:             aws.String(svc.bucket),
		Key:                aws.String(key),
		Body:               bytes.NewReader(data),
		ContentType:        aws.String(contentType),
		ContentLength:      aws.Int64(int64(len(data))),
		ContentDisposition: aws.String(mime.FormatMediaType("attachment", map[string]string{"filename": fileName})),
	})
	if err != nil {
		log.Error().Err(err).Str("bucket", svc.bucket).Str("key", key).Msg("failed to upload file to S3")

		return constant.Empty, fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return publicURL(svc.public, key), nil
}

// publicURL joins the public domain and the object key. Without a domain the
// bare key is returned.
func publicURL(domain, key string) string {
	if domain == "" {
		return key
	}

	link, err := url.JoinPath(domain, key)
	if err != nil {
		return domain + "/" + key
	}

	return link
}
