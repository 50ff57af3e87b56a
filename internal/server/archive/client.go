package archive

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var loadDefaultAWSConfig = config.LoadDefaultConfig

// S3Settings locates the bucket. BaseEndpoint points at MinIO or another
// S3-compatible server and may be empty for AWS itself.
type S3Settings struct {
	Region       string
	AccessKey    string
	SecretKey    string
	BaseEndpoint string
}

// NewS3Client builds a path-style S3 client with static credentials.
func NewS3Client(ctx context.Context, st S3Settings) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(st.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			st.AccessKey,
			st.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if st.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(st.BaseEndpoint)
		}
		o.UsePathStyle = true
	}), nil
}
