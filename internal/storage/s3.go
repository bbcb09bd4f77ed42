// Package storage issues presigned S3 upload URLs. The server never
// proxies file bytes; clients PUT straight to the bucket.
package storage

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

type UploadData struct {
	SignedRequest string `json:"signedRequest"`
	URL           string `json:"url"`
}

// PresignUpload returns a 60-second presigned PUT URL for the named
// file plus the public URL the object will have once uploaded. Keys
// are prefixed with a fresh uuid so repeated uploads of the same
// filename never collide.
func PresignUpload(ctx context.Context, fileName, fileType string) (UploadData, error) {
	bucket := os.Getenv("AWS_S3_BUCKET_NAME")
	region := os.Getenv("AWS_S3_REGION")

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return UploadData{}, fmt.Errorf("load aws config: %w", err)
	}
	presigner := s3.NewPresignClient(s3.NewFromConfig(cfg))

	key := uuid.NewString() + "-" + fileName
	req, err := presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		ContentType: aws.String(fileType),
	}, s3.WithPresignExpires(60*time.Second))
	if err != nil {
		return UploadData{}, fmt.Errorf("presign put: %w", err)
	}

	return UploadData{
		SignedRequest: req.URL,
		URL:           fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, key),
	}, nil
}
