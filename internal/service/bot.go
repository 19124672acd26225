package service

import (
	"math/rand"
	"regexp"
	"strings"
)

// The bot is a static pattern-matcher: first matching keyword bucket
// wins, and the reply is picked at random within the bucket.
var botRules = []struct {
	pattern *regexp.Regexp
	replies []string
}{
	{
		pattern: regexp.MustCompile(`\b(hi|hello|hey|greetings)\b`),
		replies: []string{
			"Hi there! How can I assist you today?",
			"Hello! What can I help you with?",
			"Hey! I'm here to help. What's on your mind?",
		},
	},
	{
		pattern: regexp.MustCompile(`\b(help|support)\b`),
		replies: []string{
			"I can help you with:\n• Submitting support tickets\n• Account issues\n• Technical questions\n• Billing inquiries\n\nWhat would you like help with?",
		},
	},
	{
		pattern: regexp.MustCompile(`\b(ticket|issue|problem)\b`),
		replies: []string{
			"I can help you create a support ticket! Would you like to go to the ticket submission page, or would you prefer to describe your issue here first?",
		},
	},
	{
		pattern: regexp.MustCompile(`\b(billing|payment|invoice|charge)\b`),
		replies: []string{
			"For billing questions, I recommend creating a ticket through our ticket system. This ensures your inquiry is handled by our billing team securely.",
		},
	},
	{
		pattern: regexp.MustCompile(`\b(technical|bug|error|broken)\b`),
		replies: []string{
			"I'd be happy to help with technical issues! Can you describe the problem you're experiencing in more detail?",
		},
	},
	{
		pattern: regexp.MustCompile(`\b(account|login|password|profile)\b`),
		replies: []string{
			"For account-related questions, please visit the Account page or create a support ticket for personalized assistance.",
		},
	},
}

var botDefaultReplies = []string{
	"I understand. Let me help you with that. Could you provide more details?",
	"Thanks for reaching out! Can you tell me more about what you need?",
	"I'm here to help! Could you elaborate on your question?",
}

// GenerateBotReply produces the canned response for a user message.
func GenerateBotReply(userMessage string) string {
	message := strings.ToLower(userMessage)

	for _, rule := range botRules {
		if rule.pattern.MatchString(message) {
			return rule.replies[rand.Intn(len(rule.replies))]
		}
	}
	return botDefaultReplies[rand.Intn(len(botDefaultReplies))]
}
