package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"shippertrip_backend/internal/email"
	"shippertrip_backend/internal/logger"
	"shippertrip_backend/internal/metrics"
	"shippertrip_backend/internal/models"
	"shippertrip_backend/internal/repositories"
	"shippertrip_backend/internal/services"
	"shippertrip_backend/internal/services/dto"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const alertWorkerName = "alert_worker"

type AlertWorkerOptions struct {
	Interval       time.Duration
	NotifyMinScore int
	BatchSize      int
	// PublicURL - база для ссылок в письмах, может быть пустой
	PublicURL string
}

// AlertWorker периодически прогоняет все алерты через матчинг и
// уведомляет владельцев о новых совпадениях
type AlertWorker struct {
	db               *gorm.DB
	alertRepo        repositories.AlertRepository
	deliveryRepo     repositories.AlertDeliveryRepository
	notificationRepo repositories.NotificationRepository
	matching         services.MatchingService
	mailer           email.Provider
	opts             AlertWorkerOptions

	// не даем двум прогонам (тикер и ручной запуск) идти одновременно
	running sync.Mutex
}

func NewAlertWorker(
	db *gorm.DB,
	alertRepo repositories.AlertRepository,
	deliveryRepo repositories.AlertDeliveryRepository,
	notificationRepo repositories.NotificationRepository,
	matching services.MatchingService,
	mailer email.Provider,
	opts AlertWorkerOptions,
) *AlertWorker {
	if opts.Interval <= 0 {
		opts.Interval = 15 * time.Minute
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 100
	}
	return &AlertWorker{
		db:               db,
		alertRepo:        alertRepo,
		deliveryRepo:     deliveryRepo,
		notificationRepo: notificationRepo,
		matching:         matching,
		mailer:           mailer,
		opts:             opts,
	}
}

// Start запускает периодическую проверку алертов
func (w *AlertWorker) Start(ctx context.Context) {
	go w.loop(ctx)
}

func (w *AlertWorker) loop(ctx context.Context) {
	ticker := time.NewTicker(w.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Alert worker stopped")
			return
		case <-ticker.C:
			report, err := w.RunOnce(ctx)
			logger.WorkerLog(alertWorkerName, "run", err,
				"alerts_processed", report.AlertsProcessed,
				"alerts_failed", report.AlertsFailed,
				"notifications_sent", report.NotificationsSent,
			)
		}
	}
}

// RunOnce обходит все алерты пачками. Ошибка одного алерта не прерывает
// прогон; ошибка чтения пачки или отмена контекста прерывают.
func (w *AlertWorker) RunOnce(ctx context.Context) (*dto.AlertRunReport, error) {
	w.running.Lock()
	defer w.running.Unlock()

	ctx = logger.WithAlertRun(ctx, uuid.NewString())
	report := &dto.AlertRunReport{}
	db := w.conn(ctx)
	afterID := ""

	for {
		batch, err := w.alertRepo.ListBatch(db, afterID, w.opts.BatchSize)
		if err != nil {
			metrics.OperationErrorsTotal.WithLabelValues("alert_batch").Inc()
			return report, fmt.Errorf("load alerts: %w", err)
		}

		for i := range batch {
			if err := ctx.Err(); err != nil {
				return report, err
			}
			sent, err := w.processAlert(ctx, db, &batch[i])
			if err != nil {
				report.AlertsFailed++
				metrics.AlertEvaluationsTotal.WithLabelValues("failed").Inc()
				logger.CtxWorkerLog(ctx, alertWorkerName, "evaluate", err, "alert_id", batch[i].ID)
				continue
			}
			report.AlertsProcessed++
			report.NotificationsSent += sent
			metrics.AlertEvaluationsTotal.WithLabelValues("ok").Inc()
		}

		if len(batch) < w.opts.BatchSize {
			return report, nil
		}
		afterID = batch[len(batch)-1].ID
	}
}

func (w *AlertWorker) processAlert(ctx context.Context, db *gorm.DB, alert *models.Alert) (int, error) {
	result, err := w.matching.EvaluateAlert(ctx, db, alert)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, match := range result.Matches {
		// совпадения отсортированы по убыванию оценки
		if match.Score < w.opts.NotifyMinScore {
			break
		}
		delivered, err := w.deliver(ctx, db, alert, match)
		if err != nil {
			return sent, err
		}
		if delivered {
			sent++
		}
	}
	return sent, nil
}

// deliver записывает отметку и уведомление в одной транзакции.
// Если пара (алерт, листинг) уже была, ничего не делает.
func (w *AlertWorker) deliver(ctx context.Context, db *gorm.DB, alert *models.Alert, match *dto.RankedMatch) (bool, error) {
	delivery := &models.AlertDelivery{
		ID:          uuid.NewString(),
		AlertID:     alert.ID,
		ListingID:   match.ID,
		ListingType: match.Type,
		Score:       match.Score,
		CreatedAt:   time.Now(),
	}
	notification := alertMatchNotification(alert, match)

	inserted := false
	err := inTransaction(db, func(tx *gorm.DB) error {
		ok, err := w.deliveryRepo.Record(tx, delivery)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		inserted = true
		return w.notificationRepo.Create(tx, notification)
	})
	if err != nil || !inserted {
		return false, err
	}

	metrics.AlertNotificationsTotal.Inc()
	w.sendEmail(ctx, alert, match)
	return true, nil
}

// sendEmail - письмо вторично: ошибка только логируется
func (w *AlertWorker) sendEmail(ctx context.Context, alert *models.Alert, match *dto.RankedMatch) {
	if w.mailer == nil || alert.User == nil || alert.User.Email == "" {
		return
	}

	from, to := matchRoute(match)
	data := email.TemplateData{
		"Name":        alert.User.Name,
		"ListingType": match.Type,
		"From":        from,
		"To":          to,
		"Score":       match.Score,
	}
	if w.opts.PublicURL != "" {
		data["URL"] = fmt.Sprintf("%s/%ss/%s", w.opts.PublicURL, match.Type, match.ID)
	}

	err := w.mailer.SendTemplate(ctx, []string{alert.User.Email}, "New match for your alert", email.TemplateAlertMatch, data)
	if err != nil {
		metrics.EmailsSentTotal.WithLabelValues("failed").Inc()
		logger.CtxWorkerLog(ctx, alertWorkerName, "send_email", err, "alert_id", alert.ID, "listing_id", match.ID)
		return
	}
	metrics.EmailsSentTotal.WithLabelValues("sent").Inc()
}

func alertMatchNotification(alert *models.Alert, match *dto.RankedMatch) *models.Notification {
	data, _ := json.Marshal(map[string]interface{}{
		"alert_id":     alert.ID,
		"listing_id":   match.ID,
		"listing_type": match.Type,
		"score":        match.Score,
	})
	from, to := matchRoute(match)
	return &models.Notification{
		UserID:  alert.UserID,
		Type:    models.NotificationTypeAlertMatch,
		Title:   "New match for your alert",
		Message: fmt.Sprintf("%s - %s, score %d", from, to, match.Score),
		Data:    datatypes.JSON(data),
	}
}

func matchRoute(match *dto.RankedMatch) (string, string) {
	switch {
	case match.Trip != nil:
		return match.Trip.From.City, match.Trip.To.City
	case match.Announcement != nil:
		return match.Announcement.From.City, match.Announcement.To.City
	}
	return "", ""
}

func (w *AlertWorker) conn(ctx context.Context) *gorm.DB {
	if w.db == nil {
		return nil
	}
	return w.db.WithContext(ctx)
}

func inTransaction(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.Transaction(fn)
}
