package job

import (
	"Atelier/internal/pkg/consts"
	"Atelier/internal/pkg/redis"
	"Atelier/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/goccy/go-json"
)

const mediaTempTTL = 24 * time.Hour

// MediaCleanupJob 回收登记在临时清单里、超过 24 小时仍未落库的媒体对象
type MediaCleanupJob struct {
	storage service.MediaStorage
}

func NewMediaCleanupJob(storage service.MediaStorage) *MediaCleanupJob {
	return &MediaCleanupJob{storage: storage}
}

func (s *MediaCleanupJob) Run() {
	ctx := context.Background()
	log.Info("start media cleanup job")

	allMedia, err := redis.HGetAll(ctx, consts.MediaTempKey)
	if err != nil {
		log.Error("failed to get media temp hash", "err", err)
		return
	}

	count := s.reap(ctx, allMedia, time.Now())
	if count > 0 {
		log.Info("media cleanup job finished", "cleaned_count", count)
	}
}

// reap 逐条检查登记时间，删除过期对象并摘除登记，返回清理数量。
// 元数据损坏的条目跳过不删，避免误伤仍被引用的对象
func (s *MediaCleanupJob) reap(ctx context.Context, entries map[string]string, now time.Time) int {
	deadline := now.Add(-mediaTempTTL).Unix()
	count := 0

	for objectName, val := range entries {
		var meta struct {
			CreatedAt int64 `json:"created_at"`
		}
		if err := json.Unmarshal([]byte(val), &meta); err != nil {
			log.Warn("invalid media meta format", "object", objectName)
			continue
		}

		if meta.CreatedAt >= deadline {
			continue
		}

		if err := s.storage.Delete(ctx, objectName); err != nil {
			log.Error("failed to delete expired media object", "object", objectName, "err", err)
			continue
		}

		if err := redis.HDel(ctx, consts.MediaTempKey, objectName); err != nil {
			log.Error("failed to remove media entry from redis", "object", objectName, "err", err)
		}

		count++
		log.Info("cleanup expired media object", "object", objectName)
	}

	return count
}
