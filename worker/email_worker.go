package worker

import (
	"context"
	"fmt"
	"log"
	"time"

	"scholarly-checkout-api/queue"
	"scholarly-checkout-api/services/email"
)

// Worker drains the email job queue so SMTP latency never sits on the
// checkout request path.
type Worker struct {
	queue        *queue.Queue
	emailService email.EmailSender
	shutdown     chan struct{}
	isRunning    bool
}

func NewWorker(q *queue.Queue, es email.EmailSender) *Worker {
	return &Worker{
		queue:        q,
		emailService: es,
		shutdown:     make(chan struct{}),
	}
}

// Start begins processing jobs.
func (w *Worker) Start(concurrency int) {
	w.isRunning = true

	for i := 0; i < concurrency; i++ {
		go w.processJobs(i)
	}
	go w.pollDelayedJobs()

	log.Printf("Started %d worker goroutines", concurrency)
}

// Stop signals the worker to stop processing jobs.
func (w *Worker) Stop() {
	if !w.isRunning {
		return
	}

	log.Println("Stopping worker...")
	close(w.shutdown)
	w.isRunning = false
}

func (w *Worker) processJobs(workerID int) {
	log.Printf("Worker %d starting", workerID)

	for {
		select {
		case <-w.shutdown:
			log.Printf("Worker %d shutting down", workerID)
			return
		default:
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			job, err := w.queue.Dequeue(ctx, 5*time.Second)
			cancel()

			if err != nil {
				log.Printf("Worker %d: Error dequeuing job: %v", workerID, err)
				time.Sleep(time.Second)
				continue
			}

			if job == nil {
				time.Sleep(100 * time.Millisecond)
				continue
			}

			log.Printf("Worker %d processing job %s of type %s", workerID, job.ID, job.Type)

			jobErr := w.processJob(job)
			if jobErr != nil {
				log.Printf("Worker %d: Error processing job %s: %v", workerID, job.ID, jobErr)

				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				failErr := w.queue.FailJob(ctx, job)
				cancel()

				if failErr != nil {
					log.Printf("Worker %d: Error marking job %s as failed: %v", workerID, job.ID, failErr)
				}

				time.Sleep(time.Second)
				continue
			}

			ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
			completeErr := w.queue.CompleteJob(ctx, job)
			cancel()

			if completeErr != nil {
				log.Printf("Worker %d: Error marking job %s as complete: %v", workerID, job.ID, completeErr)
			}
		}
	}
}

// pollDelayedJobs promotes retry-scheduled jobs back onto the main queue.
func (w *Worker) pollDelayedJobs() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-w.shutdown:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := w.queue.ProcessDelayedJobs(ctx); err != nil {
				log.Printf("Error processing delayed jobs: %v", err)
			}
			cancel()
		}
	}
}

func (w *Worker) processJob(job *queue.Job) error {
	switch job.Type {
	case queue.JobTypeSendVerificationEmail:
		return w.processVerificationEmail(job)
	case queue.JobTypeSendOrderConfirmation, queue.JobTypeSendWelcomeEmail:
		return w.processOrderConfirmation(job)
	default:
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
}

func (w *Worker) processVerificationEmail(job *queue.Job) error {
	to, ok := job.Data["email"].(string)
	if !ok || to == "" {
		return fmt.Errorf("missing email in job data")
	}
	code, ok := job.Data["code"].(string)
	if !ok || code == "" {
		return fmt.Errorf("missing code in job data")
	}

	return w.emailService.SendVerificationEmail(to, code)
}

func (w *Worker) processOrderConfirmation(job *queue.Job) error {
	to, ok := job.Data["email"].(string)
	if !ok || to == "" {
		return fmt.Errorf("missing email in job data")
	}
	firstName, _ := job.Data["first_name"].(string)
	planName, _ := job.Data["plan_name"].(string)
	total, _ := job.Data["total"].(string)

	return w.emailService.SendOrderConfirmationEmail(to, firstName, planName, total)
}
