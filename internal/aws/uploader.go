package aws

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// Uploader는 이미지 업로드를 담당합니다.
// S3 버킷이 설정되어 있으면 S3로, 아니면 로컬 static 디렉터리로 저장합니다.
// (개발 환경은 버킷 없이 동작해야 함)
type Uploader struct {
	bucket   string
	localDir string
	uploader *s3manager.Uploader
}

// NewUploader는 새 Uploader를 생성합니다. bucket이 비어 있으면 로컬 모드입니다.
func NewUploader(bucket, region, localDir string) (*Uploader, error) {
	u := &Uploader{
		bucket:   bucket,
		localDir: localDir,
	}

	if bucket != "" {
		sess, err := session.NewSession(&aws.Config{
			Region: aws.String(region),
		})
		if err != nil {
			return nil, fmt.Errorf("AWS 세션 생성 실패: %w", err)
		}
		u.uploader = s3manager.NewUploader(sess)
	}

	return u, nil
}

// Upload는 파일을 저장하고 접근 가능한 URL을 반환합니다.
func (u *Uploader) Upload(key string, body io.Reader, contentType string) (string, error) {
	if u.uploader != nil {
		return u.uploadToS3(key, body, contentType)
	}
	return u.uploadToLocal(key, body)
}

func (u *Uploader) uploadToS3(key string, body io.Reader, contentType string) (string, error) {
	out, err := u.uploader.Upload(&s3manager.UploadInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		log.Printf("[ERROR] S3 업로드 실패 (key: %s): %v", key, err)
		return "", err
	}
	return out.Location, nil
}

func (u *Uploader) uploadToLocal(key string, body io.Reader) (string, error) {
	path := filepath.Join(u.localDir, key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		log.Printf("[ERROR] 로컬 업로드 실패 (path: %s): %v", path, err)
		return "", err
	}

	// main.go의 app.Static("/static", ...) 경로로 서빙됩니다.
	return "/static/uploads/" + filepath.ToSlash(key), nil
}
