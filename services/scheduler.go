// services/scheduler.go
package services

import (
	"log"
	"time"

	"digimarket/models"

	"github.com/go-co-op/gocron/v2"
)

// StartPublishScheduler activates products whose publish_at has passed.
// Runs every minute; clears publish_at once the product goes live.
func (s *ProductService) StartPublishScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			var products []models.Product
			now := time.Now()
			err := s.DB.Where("status = ? AND publish_at IS NOT NULL AND publish_at <= ?",
				models.StatusInactive, now).
				Find(&products).Error
			if err != nil {
				log.Printf("[Scheduler] DB error: %v", err)
				return
			}

			for _, p := range products {
				p.Status = models.StatusActive
				p.PublishAt = nil
				if err := s.DB.Save(&p).Error; err != nil {
					log.Printf("[Scheduler] Failed to activate product %s: %v", p.ID, err)
				} else {
					log.Printf("✅ Auto-activated product: %s", p.Name)
				}
			}
		}),
	)
}
