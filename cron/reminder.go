package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"agendly/config"
	"agendly/models"
	"agendly/utils"
)

const TypeReminderSend = "reminder:send"

// ReminderPayload is the task body for a scheduling reminder.
type ReminderPayload struct {
	SchedulingID string `json:"schedulingId"`
	TenantID     string `json:"tenantId"`
	WorkerID     string `json:"workerId"`
	ClientID     string `json:"clientId"`
	Date         string `json:"date"`
	StartTime    string `json:"startTime"`
}

func queueOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// AsynqReminderScheduler enqueues reminder tasks to fire shortly before a
// scheduling starts. It satisfies scheduling.ReminderScheduler.
type AsynqReminderScheduler struct {
	client *asynq.Client
	lead   time.Duration
}

// NewAsynqReminderScheduler builds the production reminder enqueuer.
func NewAsynqReminderScheduler() *AsynqReminderScheduler {
	lead := time.Duration(config.AppConfig.ReminderLeadMinutes) * time.Minute
	if lead <= 0 {
		lead = time.Hour
	}
	return &AsynqReminderScheduler{
		client: asynq.NewClient(queueOpts()),
		lead:   lead,
	}
}

// ScheduleReminder enqueues a reminder for the scheduling. Schedulings that
// start sooner than the lead window get no reminder.
func (s *AsynqReminderScheduler) ScheduleReminder(ctx context.Context, sch *models.Scheduling) error {
	day, err := time.ParseInLocation("2006-01-02", sch.Date, time.Local)
	if err != nil {
		return fmt.Errorf("invalid scheduling date %q: %w", sch.Date, err)
	}
	startAt := day.Add(time.Duration(sch.Start) * time.Minute)
	fireAt := startAt.Add(-s.lead)
	if !fireAt.After(time.Now()) {
		return nil
	}

	payload, err := json.Marshal(ReminderPayload{
		SchedulingID: sch.ID,
		TenantID:     sch.TenantID,
		WorkerID:     sch.WorkerID,
		ClientID:     sch.ClientID,
		Date:         sch.Date,
		StartTime:    fmt.Sprintf("%02d:%02d", sch.Start/60, sch.Start%60),
	})
	if err != nil {
		return fmt.Errorf("marshal reminder payload: %w", err)
	}

	task := asynq.NewTask(TypeReminderSend, payload)
	if _, err := s.client.EnqueueContext(ctx, task, asynq.ProcessAt(fireAt)); err != nil {
		return fmt.Errorf("enqueue reminder for scheduling %s: %w", sch.ID, err)
	}
	return nil
}

// Close releases the underlying asynq client.
func (s *AsynqReminderScheduler) Close() error {
	return s.client.Close()
}

// InitReminderWorker runs the asynq worker in the background. Delivery is a
// log line here; outbound messaging is handled by an external collaborator
// consuming the same queue.
func InitReminderWorker() {
	logger := utils.GetLogger()

	srv := asynq.NewServer(
		queueOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeReminderSend, handleReminderTask)

	go func() {
		logger.Info("starting reminder worker")
		if err := srv.Run(mux); err != nil {
			logger.Error("reminder worker stopped", zap.Error(err))
		}
	}()
}

func handleReminderTask(ctx context.Context, task *asynq.Task) error {
	logger := utils.GetLogger()

	var p ReminderPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		logger.Error("invalid reminder payload", zap.Error(err))
		return err
	}

	logger.Info("scheduling reminder due",
		zap.String("schedulingID", p.SchedulingID),
		zap.String("tenantID", p.TenantID),
		zap.String("workerID", p.WorkerID),
		zap.String("clientID", p.ClientID),
		zap.String("date", p.Date),
		zap.String("startTime", p.StartTime),
	)
	return nil
}
