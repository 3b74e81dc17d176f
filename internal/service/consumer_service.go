// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"time"

	"apto-gateway-be/internal/constant"
	"apto-gateway-be/internal/dto"
	"apto-gateway-be/internal/pkg/logger"
	"apto-gateway-be/internal/pkg/whatsapp"
	"apto-gateway-be/internal/repository/specification"
	"apto-gateway-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the OTP dispatch queue and delivers codes over
// WhatsApp. Delivery failures are Nacked so the queue retries them.
type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	uowFactory     unitofwork.RepositoryFactory
	whatsappSender whatsapp.ISender
	logger         logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	whatsappSender whatsapp.ISender,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		uowFactory:     uowFactory,
		whatsappSender: whatsappSender,
		logger:         log,
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
	var payload dto.PublishOtpMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		cs.logger.Error("otp_consumer", "Failed to unmarshal message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.logger.Info("otp_consumer", "Dispatching OTP", map[string]interface{}{"user_id": payload.UserId.String()})

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: payload.UserId})
	if err != nil {
		cs.logger.Error("otp_consumer", "Failed to load user", map[string]interface{}{"user_id": payload.UserId.String(), "error": err.Error()})
		msg.Nack() // Nack for retriable errors
		return
	}
	if user == nil {
		cs.logger.Warn("otp_consumer", "User not found", map[string]interface{}{"user_id": payload.UserId.String()})
		msg.Ack() // Account deleted? Ack.
		return
	}
	if payload.Purpose == constant.OtpPurposeRegister && user.PhoneVerified {
		// Verified while the message sat in the queue.
		msg.Ack()
		return
	}

	sendCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if err := cs.whatsappSender.SendOTP(sendCtx, payload.Phone, payload.Code); err != nil {
		cs.logger.Error("otp_consumer", "Failed to send OTP", map[string]interface{}{"user_id": payload.UserId.String(), "error": err.Error()})
		msg.Nack()
		return
	}

	cs.logger.Info("otp_consumer", "OTP delivered", map[string]interface{}{"user_id": payload.UserId.String()})
	msg.Ack()
}
