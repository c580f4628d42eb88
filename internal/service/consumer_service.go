package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"mockbot-be/internal/entity"
	"mockbot-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains activity events off the in-process bus and
// persists them to the activity log table.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var envelope eventEnvelope
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		log.Printf("[ERROR] Failed to unmarshal activity event: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	occurredAt, err := time.Parse(time.RFC3339, envelope.OccurredAt)
	if err != nil {
		occurredAt = time.Now()
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	err = uow.ActivityLogRepository().Create(ctx, &entity.ActivityLog{
		Id:         uuid.New(),
		EventType:  envelope.EventType,
		Payload:    envelope.Payload,
		OccurredAt: occurredAt,
	})
	if err != nil {
		log.Printf("[ERROR] Failed to persist activity event %s: %v", envelope.EventType, err)
		msg.Nack() // Nack for retriable errors
		return
	}

	msg.Ack()
}
