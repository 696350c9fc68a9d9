package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/hbnb/hbnb-api/config"
	"github.com/hbnb/hbnb-api/pkg/helpers"
	"github.com/hbnb/hbnb-api/pkg/mailer"
)

// Worker that drains the email queue and sends through Mailgun. Messages are
// acked only after a successful send; failed sends are requeued once.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env)

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("failed to connect to rabbitmq: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("failed to open channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	q, err := ch.QueueDeclare(cfg.RabbitMQEmailQueue, true, false, false, false, nil)
	if err != nil {
		log.Fatalf("failed to declare queue: %v", err)
	}
	if err := ch.Qos(5, 0, false); err != nil {
		log.Fatalf("failed to set qos: %v", err)
	}

	msgs, err := ch.Consume(q.Name, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("failed to consume: %v", err)
	}

	mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for d := range msgs {
			handleDelivery(logger, mg, d)
		}
	}()

	logger.Infof("email worker consuming from %q", q.Name)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down email worker")
	_ = ch.Close()
	<-done
}

func handleDelivery(logger *logrus.Logger, mg *mailer.Mailgun, d amqp.Delivery) {
	var job mailer.EmailJob
	if err := json.Unmarshal(d.Body, &job); err != nil {
		logger.Errorf("dropping malformed email job: %v", err)
		_ = d.Nack(false, false)
		return
	}

	subject, text := job.Subject, job.Text
	if job.Template != "" {
		s, t, err := mailer.Render(job.Template, job.Data)
		if err != nil {
			logger.Errorf("dropping email job with bad template: %v", err)
			_ = d.Nack(false, false)
			return
		}
		subject, text = s, t
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := mg.Send(ctx, job.To, subject, text, job.HTML); err != nil {
		logger.Errorf("failed to send email to %s: %v", job.To, err)
		// Requeue once; redelivered messages that fail again are dropped.
		_ = d.Nack(false, !d.Redelivered)
		return
	}
	_ = d.Ack(false)
}
