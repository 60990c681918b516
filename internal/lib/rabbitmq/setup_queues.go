package rabbitmq

// QueueConfig binds a queue to a routing key on the notifications exchange.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetNotificationQueues lists the queues consumed by the notification sender.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "reminder.due", RoutingKey: "due"},
	}
}
