package workers

import (
	"context"
	"time"

	"stagematch_backend/internal/email"
	"stagematch_backend/internal/logger"
	"stagematch_backend/internal/repositories"

	"gorm.io/gorm"
)

// EmailWorker доставляет письма из очереди через SMTP провайдер.
// Письмо с исчерпанным лимитом попыток помечается как failed и больше
// не выбирается.
type EmailWorker struct {
	db          *gorm.DB
	emailRepo   repositories.EmailRepository
	provider    email.Provider
	interval    time.Duration
	maxAttempts int
	batchSize   int
}

func NewEmailWorker(db *gorm.DB, emailRepo repositories.EmailRepository, provider email.Provider, pollInterval time.Duration, maxAttempts int) *EmailWorker {
	if pollInterval <= 0 {
		pollInterval = 30 * time.Second
	}
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	return &EmailWorker{
		db:          db,
		emailRepo:   emailRepo,
		provider:    provider,
		interval:    pollInterval,
		maxAttempts: maxAttempts,
		batchSize:   20,
	}
}

// Start запускает цикл доставки
func (w *EmailWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *EmailWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Email worker остановлен")
			return
		case <-ticker.C:
			w.processBatch()
		}
	}
}

// processBatch доставляет одну пачку писем. Сбой одного письма не
// прерывает обработку остальных.
func (w *EmailWorker) processBatch() {
	pending, err := w.emailRepo.FindPending(w.db, w.batchSize)
	if err != nil {
		logger.WithError(err).Error("Email worker: не удалось прочитать очередь")
		return
	}

	for i := range pending {
		item := &pending[i]

		sendErr := w.provider.Send(&email.Email{
			To:       item.ToEmail,
			Subject:  item.Subject,
			TextBody: item.TextBody,
			HTMLBody: item.HTMLBody,
		})

		if sendErr == nil {
			if err := w.emailRepo.MarkSent(w.db, item.ID); err != nil {
				logger.WithError(err).Error("Email worker: не удалось пометить письмо отправленным", "email_id", item.ID)
			}
			continue
		}

		attempts := item.Attempts + 1
		terminal := attempts >= w.maxAttempts
		if err := w.emailRepo.MarkFailed(w.db, item.ID, attempts, sendErr.Error(), terminal); err != nil {
			logger.WithError(err).Error("Email worker: не удалось записать ошибку доставки", "email_id", item.ID)
			continue
		}

		if terminal {
			logger.WithError(sendErr).Error("Email worker: письмо не доставлено, попытки исчерпаны",
				"email_id", item.ID, "attempts", attempts)
		} else {
			logger.WithError(sendErr).Warn("Email worker: доставка не удалась, письмо останется в очереди",
				"email_id", item.ID, "attempts", attempts)
		}
	}
}
