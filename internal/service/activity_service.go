package service

import (
	"log"
	"time"

	"go-saristore-pos/internal/model"
	"go-saristore-pos/internal/repository"
	"go-saristore-pos/internal/ws"

	"github.com/google/uuid"
)

// ActivityLogger records what happened in the store: one row in the activity
// log plus a live event on the websocket feed. Both are fire-and-forget;
// business operations never fail because logging did.
type ActivityLogger interface {
	Log(actorID uuid.UUID, actorName, action, details, kind string)
	Recent(limit int) ([]model.ActivityLog, error)
}

type activityLogger struct {
	repo repository.ActivityRepository
	hub  *ws.Hub
}

func NewActivityLogger(repo repository.ActivityRepository, hub *ws.Hub) ActivityLogger {
	return &activityLogger{repo: repo, hub: hub}
}

func (a *activityLogger) Log(actorID uuid.UUID, actorName, action, details, kind string) {
	go func() {
		entry := &model.ActivityLog{
			Action:  action,
			Details: details,
			Kind:    kind,
		}
		if actorID != uuid.Nil {
			id := actorID
			entry.UserID = &id
			entry.CreatedBy = actorID.String()
		}
		if err := a.repo.Create(entry); err != nil {
			log.Printf("activity log write failed: %v", err)
		}

		a.hub.Publish(map[string]interface{}{
			"type":    "activity",
			"kind":    kind,
			"action":  action,
			"details": details,
			"user":    actorName,
			"at":      time.Now(),
		})
	}()
}

func (a *activityLogger) Recent(limit int) ([]model.ActivityLog, error) {
	return a.repo.FindRecent(limit)
}
