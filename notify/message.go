package notify

import "github.com/nlopes/slack"

// Message is the JSON body posted to a Slack incoming webhook.
type Message struct {
	Username    string             `json:"username"`
	IconURL     string             `json:"icon_url"`
	Channel     string             `json:"channel"`
	Attachments []slack.Attachment `json:"attachments"`
	Text        string             `json:"text"`
}
