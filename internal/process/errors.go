package process

// errors.go maps technical errors to user-friendly messages with support
// codes. When a user reports an error code, support staff can look it up
// here to find the triggering pattern and the suggested remedy.
//
// Patterns are matched case-insensitively with strings.Contains; the first
// match wins, so more specific patterns come before general ones.

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// Input validation (VAL001-VAL099)
	{
		pattern: "missing required column",
		msg: UserMessage{
			Message: "A required column is missing from the CSV",
			Action:  "Ensure the export contains 'Variant SKU' and 'Variant Inventory Qty' columns",
			Code:    "VAL001",
		},
	},
	{
		pattern: "no valid inventory data",
		msg: UserMessage{
			Message: "No rows could be processed",
			Action:  "Check that Variant SKU values follow the base-size format, e.g. 'sku-1234-41'",
			Code:    "VAL002",
		},
	},

	// File handling (FILE001-FILE099)
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds the maximum size limit",
			Action:  "Split the export into smaller files",
			Code:    "FILE001",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Please select a CSV file to upload",
			Code:    "FILE002",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The uploaded file is empty",
			Action:  "Please upload a CSV file with a header row and data rows",
			Code:    "FILE003",
		},
	},
	{
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "File is not a valid CSV",
			Action:  "Ensure the file is comma-separated with consistent quoting",
			Code:    "FILE004",
		},
	},
	{
		pattern: "open input",
		msg: UserMessage{
			Message: "The input file could not be opened",
			Action:  "Check that the path exists and is readable",
			Code:    "FILE005",
		},
	},

	// Database / history (DB001-DB099)
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to the history database",
			Action:  "Please try again in a few moments",
			Code:    "DB001",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Try a smaller file or try again later",
			Code:    "DB002",
		},
	},

	// Request lifecycle (REQ001-REQ099)
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try a smaller file or check your connection",
			Code:    "REQ002",
		},
	},
}

// MapError converts a technical error to a user-friendly message.
// Unmatched errors fall back to ERR000; check the server logs for the
// original error when that code shows up.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{Message: "Success", Code: ""}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return UserMessage{
		Message: "An unexpected error occurred",
		Action:  "Please try again or contact support",
		Code:    "ERR000",
	}
}

// FormatUserError renders a UserMessage as a single line for CLI output.
func FormatUserError(msg UserMessage) string {
	if msg.Action != "" {
		return fmt.Sprintf("%s (%s). %s", msg.Message, msg.Code, msg.Action)
	}
	return fmt.Sprintf("%s (%s)", msg.Message, msg.Code)
}
