package push

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessageTopic(t *testing.T) {
	msg, err := buildMessage(&NotificationRequest{
		Topic: "user_7",
		Title: "Booking confirmed",
		Body:  "Your booking #3 is confirmed",
		Data:  map[string]string{"bookingId": "3"},
	})
	require.NoError(t, err)

	assert.Equal(t, "user_7", msg.Topic)
	assert.Empty(t, msg.Token)
	require.NotNil(t, msg.Notification)
	assert.Equal(t, "Booking confirmed", msg.Notification.Title)
	assert.Equal(t, "high", msg.Android.Priority)
	assert.Equal(t, "3", msg.Data["bookingId"])
	require.NotNil(t, msg.APNS)
}

func TestBuildMessageRequiresTarget(t *testing.T) {
	_, err := buildMessage(&NotificationRequest{Title: "x"})
	assert.Error(t, err)
}

func TestBuildMessageDataOnly(t *testing.T) {
	msg, err := buildMessage(&NotificationRequest{Token: "abc", Priority: "normal", Data: map[string]string{"k": "v"}})
	require.NoError(t, err)
	assert.Equal(t, "abc", msg.Token)
	assert.Nil(t, msg.Notification)
	assert.Equal(t, "normal", msg.Android.Priority)
}
