package push

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

type FCMProvider struct {
	client *messaging.Client
}

func NewFCMProvider(ctx context.Context, projectID, credentialsFile string) (*FCMProvider, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	var conf *firebase.Config
	if projectID != "" {
		conf = &firebase.Config{ProjectID: projectID}
	}

	app, err := firebase.NewApp(ctx, conf, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}

	return &FCMProvider{
		client: client,
	}, nil
}

func (f *FCMProvider) SendNotification(ctx context.Context, request *NotificationRequest) (*NotificationResponse, error) {
	message, err := buildMessage(request)
	if err != nil {
		return &NotificationResponse{Success: false, Error: err.Error()}, err
	}

	response, err := f.client.Send(ctx, message)
	if err != nil {
		return &NotificationResponse{
			Success: false,
			Error:   err.Error(),
		}, err
	}

	return &NotificationResponse{
		MessageID: response,
		Success:   true,
	}, nil
}

func buildMessage(request *NotificationRequest) (*messaging.Message, error) {
	message := &messaging.Message{
		Data: request.Data,
	}

	switch {
	case request.Token != "":
		message.Token = request.Token
	case request.Topic != "":
		message.Topic = request.Topic
	default:
		return nil, fmt.Errorf("notification has no token or topic")
	}

	if request.Title != "" || request.Body != "" {
		message.Notification = &messaging.Notification{
			Title: request.Title,
			Body:  request.Body,
		}
	}

	priority := request.Priority
	if priority == "" {
		priority = "high"
	}
	message.Android = &messaging.AndroidConfig{
		Priority:    priority,
		CollapseKey: request.CollapseKey,
	}

	// iOS delivery goes through the same topic
	message.APNS = &messaging.APNSConfig{
		Payload: &messaging.APNSPayload{
			Aps: &messaging.Aps{
				Sound:            "default",
				ContentAvailable: true,
			},
		},
	}

	return message, nil
}
