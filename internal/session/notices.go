package session

import (
	"context"
	"sync"

	"internhub/internal/domain/entity"
)

const maxPendingNotices = 20

// noticeBuffer keeps the latest notices for one browser session until they are read.
type noticeBuffer struct {
	mu      sync.Mutex
	notices []entity.Notice
}

// Notify implements service.Notifier.
func (b *noticeBuffer) Notify(_ context.Context, notice entity.Notice) {
	b.push(notice)
}

func (b *noticeBuffer) push(notice entity.Notice) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.notices = append(b.notices, notice)
	if overflow := len(b.notices) - maxPendingNotices; overflow > 0 {
		b.notices = append([]entity.Notice(nil), b.notices[overflow:]...)
	}
}

func (b *noticeBuffer) drain() []entity.Notice {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := b.notices
	b.notices = nil

	return out
}
