package web

// messages.go maps technical errors to user-facing messages with support
// codes. Users quote the code to support staff for faster diagnosis.
//
// Code ranges:
//
//	AUTH001-AUTH099 - session and identity provider failures
//	BE001-BE099     - inventory backend failures
//	EXP001-EXP099   - document export failures

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wareroom/stockview/internal/gateway"
	"github.com/wareroom/stockview/internal/session"
)

// UserMessage is what an end user sees when an operation fails.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern maps a technical error substring (case-insensitive) to a
// user message. The first matching pattern wins, so specific patterns come
// before general ones.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	{
		pattern: "session lookup",
		msg: UserMessage{
			Message: "Your session could not be verified",
			Action:  "Please log in again",
			Code:    "AUTH002",
		},
	},
	{
		pattern: "unexpected status",
		msg: UserMessage{
			Message: "The inventory service answered with an error",
			Action:  "Please try again in a few moments",
			Code:    "BE002",
		},
	},
	{
		pattern: "decode response",
		msg: UserMessage{
			Message: "The inventory service sent an unreadable response",
			Action:  "Please try again; contact support if this persists",
			Code:    "BE003",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "The inventory service is unreachable",
			Action:  "Please try again in a few moments",
			Code:    "BE001",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "The inventory service took too long to answer",
			Action:  "Please try again",
			Code:    "BE004",
		},
	},
	{
		pattern: "export table",
		msg: UserMessage{
			Message: "The document could not be generated from this table",
			Action:  "Reload the page and try the download again",
			Code:    "EXP001",
		},
	},
}

var defaultMessage = UserMessage{
	Message: "Something went wrong",
	Action:  "Please try again; contact support if this persists",
	Code:    "GEN001",
}

// MapError converts a technical error to a user-friendly message.
// Sentinel errors are checked first, then message patterns.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	if errors.Is(err, session.ErrUnauthenticated) {
		return UserMessage{
			Message: "Please log in to continue",
			Action:  "You will be redirected to the login page",
			Code:    "AUTH001",
		}
	}
	var statusErr *gateway.StatusError
	if errors.As(err, &statusErr) {
		return UserMessage{
			Message: "The inventory service answered with an error",
			Action:  "Please try again in a few moments",
			Code:    "BE002",
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display:
// "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}
