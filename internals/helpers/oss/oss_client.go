package helper

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"

	"unitrack_backend/internals/configs"
)

var (
	clientOnce sync.Once
	bucket     *oss.Bucket
	clientErr  error
)

// Bucket returns the shared OSS bucket handle, initialized lazily from ENV.
func Bucket() (*oss.Bucket, error) {
	clientOnce.Do(func() {
		if configs.OSSEndpoint == "" || configs.OSSBucket == "" {
			clientErr = fmt.Errorf("OSS is not configured (OSS_ENDPOINT/OSS_BUCKET)")
			return
		}
		client, err := oss.New(configs.OSSEndpoint, configs.OSSAccessKey, configs.OSSSecretKey)
		if err != nil {
			clientErr = err
			return
		}
		bucket, clientErr = client.Bucket(configs.OSSBucket)
	})
	return bucket, clientErr
}

// ObjectKey builds "<base>/<scope>/<name>" with a clean scope path.
func ObjectKey(scope, name string) string {
	scope = strings.Trim(strings.TrimSpace(scope), "/")
	return strings.Trim(configs.OSSBaseFolder, "/") + "/" + scope + "/" + name
}

// SignedURL issues a time-limited GET URL for a stored object.
func SignedURL(objectKey string, ttl time.Duration) (string, error) {
	b, err := Bucket()
	if err != nil {
		return "", err
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return b.SignURL(objectKey, oss.HTTPGet, int64(ttl.Seconds()))
}

// DeleteObject removes a stored object. Missing objects are not an error.
func DeleteObject(objectKey string) error {
	b, err := Bucket()
	if err != nil {
		return err
	}
	return b.DeleteObject(objectKey)
}
