package job

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recordingStorage struct {
	deleted []string
	failOn  string
}

func (s *recordingStorage) Upload(_ context.Context, objectName string, _ io.Reader, _ int64, _ string) (string, error) {
	return objectName, nil
}

func (s *recordingStorage) Delete(_ context.Context, objectName string) error {
	if objectName == s.failOn {
		return fmt.Errorf("delete %s failed", objectName)
	}
	s.deleted = append(s.deleted, objectName)
	return nil
}

func (s *recordingStorage) PublicURL(objectName string) string {
	return "https://cdn.test/bucket/" + objectName
}

func (s *recordingStorage) ObjectNameFromURL(_ string) string {
	return ""
}

func entryAt(createdAt time.Time) string {
	return fmt.Sprintf(`{"created_at":%d}`, createdAt.Unix())
}

func TestMediaCleanupReapsOnlyExpiredEntries(t *testing.T) {
	storage := &recordingStorage{}
	cleanup := NewMediaCleanupJob(storage)
	now := time.Now()

	entries := map[string]string{
		"stale.jpg":  entryAt(now.Add(-25 * time.Hour)),
		"fresh.jpg":  entryAt(now.Add(-1 * time.Hour)),
		"border.jpg": entryAt(now.Add(-24 * time.Hour)),
	}

	count := cleanup.reap(context.Background(), entries, now)

	assert.Equal(t, 1, count)
	assert.Equal(t, []string{"stale.jpg"}, storage.deleted)
}

func TestMediaCleanupSkipsMalformedMeta(t *testing.T) {
	storage := &recordingStorage{}
	cleanup := NewMediaCleanupJob(storage)
	now := time.Now()

	entries := map[string]string{
		"broken.jpg": "not-json",
		"stale.jpg":  entryAt(now.Add(-48 * time.Hour)),
	}

	count := cleanup.reap(context.Background(), entries, now)

	assert.Equal(t, 1, count)
	assert.NotContains(t, storage.deleted, "broken.jpg")
}

func TestMediaCleanupContinuesPastDeleteFailure(t *testing.T) {
	storage := &recordingStorage{failOn: "locked.jpg"}
	cleanup := NewMediaCleanupJob(storage)
	now := time.Now()

	entries := map[string]string{
		"locked.jpg": entryAt(now.Add(-30 * time.Hour)),
		"stale.jpg":  entryAt(now.Add(-30 * time.Hour)),
	}

	count := cleanup.reap(context.Background(), entries, now)

	assert.Equal(t, 1, count)
	assert.Equal(t, []string{"stale.jpg"}, storage.deleted)
}
