package dto

const (
	EventVotingSubmitted = "voting_submitted"
)

type KafkaMessage struct {
	EventID   string      `json:"event_id"`
	EventType string      `json:"event_type"`
	Data      interface{} `json:"data"`
}
