package storage

import (
	"context"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Rogue-Bear-Innovations/kochrezepte-back/internal/config"
)

var (
	Module = fx.Provide(
		NewImageStore,
	)

	ErrUnsupportedImage = errors.New("unsupported image type")

	imageExtensions = map[string]string{
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".png":  "image/png",
		".webp": "image/webp",
	}
)

type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ImageStore uploads recipe images to an S3 bucket.
type ImageStore struct {
	client ObjectPutter
	bucket string
	logger *zap.SugaredLogger
}

// NewImageStore returns nil when no bucket is configured, which disables uploads.
func NewImageStore(cfg *config.Config, logger *zap.SugaredLogger) (*ImageStore, error) {
	if cfg.S3Bucket == "" {
		logger.Info("S3 bucket not configured, image upload disabled.")
		return nil, nil
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
	}
	if cfg.S3AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, errors.Wrap(err, "load aws config")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewImageStoreWithClient(client, cfg.S3Bucket, logger), nil
}

func NewImageStoreWithClient(client ObjectPutter, bucket string, logger *zap.SugaredLogger) *ImageStore {
	return &ImageStore{
		client: client,
		bucket: bucket,
		logger: logger,
	}
}

// ImageKey builds the object key for a new image of a recipe.
func ImageKey(recipeID uuid.UUID, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := imageExtensions[ext]; !ok {
		return "", errors.Wrapf(ErrUnsupportedImage, "extension %q", ext)
	}
	return path.Join("recipes", recipeID.String(), uuid.New().String()+ext), nil
}

// Upload stores the image and returns its object key.
func (s *ImageStore) Upload(ctx context.Context, recipeID uuid.UUID, filename string, body io.Reader) (string, error) {
	key, err := ImageKey(recipeID, filename)
	if err != nil {
		return "", err
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(imageExtensions[path.Ext(key)]),
	})
	if err != nil {
		return "", errors.Wrap(err, "put object")
	}

	s.logger.Infow("recipe image uploaded", "recipeId", recipeID, "key", key)
	return key, nil
}
