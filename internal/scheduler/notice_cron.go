package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/Temirlan472/Office_Board/internal/models"
	"github.com/Temirlan472/Office_Board/internal/realtime"
	"github.com/Temirlan472/Office_Board/internal/repository"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// PublishAnnouncer periodically announces notices whose publish time has
// arrived to connected clients. Best-effort: a missed tick only delays the
// push, the API already shows the notice.
type PublishAnnouncer struct {
	noticeRepo *repository.NoticeRepository
	hub        *realtime.Hub

	mu      sync.Mutex
	lastRun time.Time
}

func NewPublishAnnouncer(noticeRepo *repository.NoticeRepository, hub *realtime.Hub) *PublishAnnouncer {
	return &PublishAnnouncer{
		noticeRepo: noticeRepo,
		hub:        hub,
		lastRun:    time.Now(),
	}
}

// Run announces every notice published since the previous tick.
func (a *PublishAnnouncer) Run(ctx context.Context) error {
	a.mu.Lock()
	from := a.lastRun
	now := time.Now()
	a.lastRun = now
	a.mu.Unlock()

	notices, err := a.noticeRepo.FindPublishedBetween(ctx, from, now)
	if err != nil {
		return err
	}

	for _, notice := range notices {
		payload := map[string]interface{}{
			"type":      "notice_published",
			"notice_id": notice.ID.Hex(),
			"title":     notice.Title,
			"target":    notice.Target,
		}
		if notice.Target == models.NoticeTargetIndividual {
			a.hub.SendToUser(notice.EmployeeID, payload)
		} else {
			a.hub.Broadcast(payload)
		}
	}

	if len(notices) > 0 {
		logrus.WithField("count", len(notices)).Info("Announced newly published notices")
	}
	return nil
}

// StartNoticeCronJobs schedules the publish announcer.
func StartNoticeCronJobs(spec string, announcer *PublishAnnouncer) *cron.Cron {
	c := cron.New()

	c.AddFunc(spec, func() {
		if err := announcer.Run(context.Background()); err != nil {
			logrus.WithError(err).Error("Publish announcer run failed")
		}
	})

	c.Start()
	return c
}
