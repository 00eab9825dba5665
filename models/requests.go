package models

// Open_Widget_Request creates a widget for a caller.
type Open_Widget_Request struct {
	Audience Audience `json:"audience" binding:"required"`
	// User_Name is the display name used in the introduction.
	User_Name string `json:"user_name,omitempty"`
}

// Input_Request replaces the draft input of a widget.
type Input_Request struct {
	Text string `json:"text"`
}

// Submit_Request submits a message. When Text is empty the current draft
// input is submitted instead.
type Submit_Request struct {
	Text string `json:"text,omitempty"`
}

// Suggestion_Request reports a quick-reply chip click.
type Suggestion_Request struct {
	Text string `json:"text" binding:"required"`
}

// Action_Request reports an action button click.
type Action_Request struct {
	Action string `json:"action" binding:"required"`
}
