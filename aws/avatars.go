package aws

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
)

const avatarKeyCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// AvatarStore keeps user avatars in a single S3 bucket under random keys.
// Keys double as the external ID that gets stored on the user record
type AvatarStore struct {
	S3 *S3Client

	// PublicURL is the bucket's public base, avatar URLs are PublicURL/key
	PublicURL string
}

func NewAvatarStore(s *S3Client, publicURL string) *AvatarStore {
	return &AvatarStore{
		S3:        s,
		PublicURL: strings.TrimSuffix(publicURL, "/"),
	}
}

func (a *AvatarStore) Upload(ctx context.Context, data []byte) (id, url string, err error) {
	key, err := gonanoid.Generate(avatarKeyCharset, 16)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate avatar key, %w", err)
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return "", "", fmt.Errorf("unsupported avatar content type %s", contentType)
	}

	_, err = a.S3.C.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      a.S3.Bucket,
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload avatar to S3, %w", err)
	}

	zap.L().Debug("Avatar uploaded", zap.String("key", key), zap.String("content_type", contentType))

	return key, a.PublicURL + "/" + key, nil
}

func (a *AvatarStore) Delete(ctx context.Context, id string) error {
	_, err := a.S3.C.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: a.S3.Bucket,
		Key:    aws.String(id),
	})
	if err != nil {
		return fmt.Errorf("failed to delete avatar from S3, %w", err)
	}

	return nil
}
