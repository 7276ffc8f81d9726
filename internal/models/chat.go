package models

import "time"

// ChatMessage 聊天消息，sender 为 "user" 或 "bot"
type ChatMessage struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}
