// file: services/stats_service.go
package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/syedmaroofhussain3-blip/university-hub/database"
	"github.com/syedmaroofhussain3-blip/university-hub/models"
	"gorm.io/gorm"
)

// EventStats 活动报名统计，活动详情页和干部审批页都会用到
type EventStats struct {
	EventID    uint32 `json:"event_id"`
	Capacity   uint   `json:"capacity"`
	Registered int64  `json:"registered"`
	Approved   int64  `json:"approved"`
	Pending    int64  `json:"pending"`
	SpotsLeft  int64  `json:"spots_left"` // -1 表示不限名额
}

func statsCacheKey(eventID uint32) string {
	return fmt.Sprintf("eventstats:%d", eventID)
}

// GetEventStats 查询活动报名统计，带 Redis 旁路缓存（15 秒 TTL）
func GetEventStats(db *gorm.DB, eventID uint32) (EventStats, error) {
	cacheKey := statsCacheKey(eventID)

	// 1. 先查缓存
	if database.RDB != nil {
		val, err := database.RDB.Get(database.Ctx, cacheKey).Result()
		if err == nil {
			var stats EventStats
			if json.Unmarshal([]byte(val), &stats) == nil {
				return stats, nil
			}
		}
	}

	var ev models.Event
	if err := db.First(&ev, eventID).Error; err != nil {
		return EventStats{}, err
	}

	stats := EventStats{EventID: ev.ID, Capacity: ev.Capacity}
	regs := db.Model(&models.Registration{}).Where("event_id = ?", ev.ID)
	if err := regs.Count(&stats.Registered).Error; err != nil {
		return EventStats{}, err
	}
	db.Model(&models.Registration{}).Where("event_id = ? AND status = ?", ev.ID, models.StatusApproved).Count(&stats.Approved)
	db.Model(&models.Registration{}).Where("event_id = ? AND status = ?", ev.ID, models.StatusPending).Count(&stats.Pending)

	if ev.Capacity == 0 {
		stats.SpotsLeft = -1
	} else {
		stats.SpotsLeft = int64(ev.Capacity) - stats.Registered
		if stats.SpotsLeft < 0 {
			stats.SpotsLeft = 0
		}
	}

	// 2. 缓存未命中，把结果写回 Redis
	if database.RDB != nil {
		if jsonData, err := json.Marshal(stats); err == nil {
			database.RDB.Set(database.Ctx, cacheKey, jsonData, 15*time.Second)
		}
	}

	return stats, nil
}

// InvalidateEventStats 报名数据有任何写入后清掉对应缓存，保证统计及时
func InvalidateEventStats(eventID uint32) {
	if database.RDB == nil {
		return
	}
	database.RDB.Del(database.Ctx, statsCacheKey(eventID))
}
