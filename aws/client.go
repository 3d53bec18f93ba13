package aws

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const defaultAudioContentType = "audio/mpeg"

// Client archives synthesized audio in an S3 bucket.
type Client struct {
	bucket   string
	region   string
	uploader *s3manager.Uploader
	s3Client *s3.S3
}

func NewClient(region, bucket string) (*Client, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	log.Info().
		Str("bucket", bucket).
		Str("region", region).
		Msg("AWS session created successfully")

	return &Client{
		bucket:   bucket,
		region:   region,
		uploader: s3manager.NewUploader(sess),
		s3Client: s3.New(sess),
	}, nil
}

// UploadAudio stores audioData under audio/<speaker>/<uuid>.<ext> and returns its public URL.
func (c *Client) UploadAudio(ctx context.Context, audioData []byte, speaker string) (string, error) {
	contentType := audioContentType(audioData)
	key := objectKey(speaker, contentType, uuid.NewString())

	log.Info().
		Str("bucket", c.bucket).
		Str("key", key).
		Str("content_type", contentType).
		Int("content_size", len(audioData)).
		Msg("Starting S3 upload")

	uploadInput := &s3manager.UploadInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(audioData),
		ContentType: aws.String(contentType),
	}

	result, err := c.uploader.UploadWithContext(ctx, uploadInput)
	if err != nil {
		log.Error().
			Err(err).
			Str("bucket", c.bucket).
			Str("key", key).
			Msg("S3 upload failed")
		return "", fmt.Errorf("failed to upload audio to S3: %w", err)
	}

	_, aclErr := c.s3Client.PutObjectAclWithContext(ctx, &s3.PutObjectAclInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
		ACL:    aws.String(s3.ObjectCannedACLPublicRead),
	})
	if aclErr != nil {
		log.Warn().
			Err(aclErr).
			Str("bucket", c.bucket).
			Str("key", key).
			Msg("Failed to set public-read ACL on uploaded object, file may not be publicly accessible")
	}

	publicURL := PublicURL(c.bucket, c.region, key)

	log.Info().
		Str("s3_url", publicURL).
		Str("s3_location", result.Location).
		Msg("Audio uploaded to S3 successfully")

	return publicURL, nil
}

func PublicURL(bucket, region, key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, key)
}

func objectKey(speaker, contentType, id string) string {
	return fmt.Sprintf("audio/%s/%s%s", speaker, id, extensionFor(contentType))
}

// audioContentType sniffs the payload and falls back to mp3, which is what the gateway produces.
func audioContentType(audioData []byte) string {
	detected := http.DetectContentType(audioData)
	if strings.HasPrefix(detected, "audio/") {
		return detected
	}
	return defaultAudioContentType
}

func extensionFor(contentType string) string {
	switch strings.ToLower(contentType) {
	case "audio/wave", "audio/wav":
		return ".wav"
	case "audio/ogg", "application/ogg":
		return ".ogg"
	case "audio/aiff":
		return ".aiff"
	default:
		return ".mp3"
	}
}
