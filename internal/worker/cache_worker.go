package worker

import (
	"context"

	"github.com/spec-kit/blog-service/internal/cache"
	"github.com/spec-kit/blog-service/internal/events"
	"github.com/spec-kit/blog-service/internal/service"
)

// StartNotificationWorker registers notification handlers.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}

// StartCacheInvalidationWorker drops cached post listings whenever a
// post mutation event is published.
func StartCacheInvalidationWorker(dispatcher events.Dispatcher, postCache *cache.PostCache) {
	if dispatcher == nil || postCache == nil {
		return
	}
	invalidate := func(ctx context.Context, _ events.Event) error {
		postCache.Invalidate(ctx)
		return nil
	}
	dispatcher.Subscribe(events.EventPostCreated, invalidate)
	dispatcher.Subscribe(events.EventPostUpdated, invalidate)
	dispatcher.Subscribe(events.EventPostDeleted, invalidate)
}
