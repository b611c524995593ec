package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Rogue-Bear-Innovations/kochrezepte-back/internal/config"
)

type fakePutter struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.input = in
	raw, _ := io.ReadAll(in.Body)
	f.body = string(raw)
	return &s3.PutObjectOutput{}, nil
}

func TestImageStoreUpload(t *testing.T) {
	ctx := context.Background()
	recipeID := uuid.New()

	t.Run("stores under the recipe prefix", func(t *testing.T) {
		putter := &fakePutter{}
		store := NewImageStoreWithClient(putter, "kochrezepte", zap.NewNop().Sugar())

		key, err := store.Upload(ctx, recipeID, "Strudel.JPG", strings.NewReader("jpeg bytes"))
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(key, "recipes/"+recipeID.String()+"/"))
		assert.True(t, strings.HasSuffix(key, ".jpg"))
		assert.Equal(t, "kochrezepte", aws.ToString(putter.input.Bucket))
		assert.Equal(t, key, aws.ToString(putter.input.Key))
		assert.Equal(t, "image/jpeg", aws.ToString(putter.input.ContentType))
		assert.Equal(t, "jpeg bytes", putter.body)
	})

	t.Run("rejects unknown extensions", func(t *testing.T) {
		putter := &fakePutter{}
		store := NewImageStoreWithClient(putter, "kochrezepte", zap.NewNop().Sugar())

		_, err := store.Upload(ctx, recipeID, "notes.txt", strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrUnsupportedImage)
		assert.Nil(t, putter.input)
	})

	t.Run("propagates client errors", func(t *testing.T) {
		store := NewImageStoreWithClient(&fakePutter{err: errors.New("boom")}, "kochrezepte", zap.NewNop().Sugar())

		_, err := store.Upload(ctx, recipeID, "a.png", strings.NewReader("x"))
		assert.Error(t, err)
	})
}

func TestNewImageStoreDisabledWithoutBucket(t *testing.T) {
	store, err := NewImageStore(&config.Config{}, zap.NewNop().Sugar())
	require.NoError(t, err)
	assert.Nil(t, store)
}
