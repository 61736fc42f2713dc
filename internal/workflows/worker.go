package workflows

import (
	"go.temporal.io/sdk/workflow"

	"github.com/chainpass/ticketing/internal/notification"
)

// WorkerNotification defines the workflows run by the notification worker
//
//go:generate mockgen -source=worker.go -destination=../mocks/worker_notification.go -package=mocks -mock_names=WorkerNotification=MockWorkerNotification
type WorkerNotification interface {
	// DeliverTicketEmail sends an approved attendee their signed ticket
	DeliverTicketEmail(ctx workflow.Context, req notification.TicketEmailRequest) error
}

// workerNotification is the concrete implementation of WorkerNotification
type workerNotification struct {
	executor Executor
}

// NewWorkerNotification creates a new notification worker instance
func NewWorkerNotification(executor Executor) WorkerNotification {
	return &workerNotification{
		executor: executor,
	}
}
