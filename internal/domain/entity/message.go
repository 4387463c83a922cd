package entity

import (
	"strconv"
	"strings"
)

// MessageKind tags an inbound message as chat or as a control command.
type MessageKind int

const (
	// KindChat is an ordinary chat line relayed to every session
	KindChat MessageKind = iota
	// KindExchange is an exchange-rate request
	KindExchange
)

const exchangeCommand = "exchange"

// Message is the parsed form of one inbound text message. Days is only
// meaningful for KindExchange.
type Message struct {
	Kind MessageKind
	Text string
	Days int
}

// ParseMessage classifies a raw inbound message. A message whose first
// whitespace-delimited token equals "exchange" (case-insensitive) is a
// control command; the second token, when it parses as a positive integer,
// is the requested day span, otherwise the span defaults to 1. Anything
// else, including words that merely begin with "exchange", is chat.
func ParseMessage(raw string) Message {
	fields := strings.Fields(raw)
	if len(fields) == 0 || !strings.EqualFold(fields[0], exchangeCommand) {
		return Message{Kind: KindChat, Text: raw}
	}

	days := 1
	if len(fields) > 1 {
		if n, err := strconv.Atoi(fields[1]); err == nil && n > 0 {
			days = n
		}
	}

	return Message{Kind: KindExchange, Text: raw, Days: days}
}
