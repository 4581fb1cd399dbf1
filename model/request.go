package model

// Request is one inbound chat message as seen by the delivery layer.
// Message identifiers are transport-specific and kept opaque.
type Request struct {
	ID         string // correlation id for logs
	Text       string
	ParentText string // text of the message this one replies to, if any
	MessageID  string
	ParentID   string // empty when the message is not a reply
	SenderName string
	BotName    string // the transport's own account, for "/cmd@name"
}

// IsReply reports whether the message was sent as a reply.
func (r Request) IsReply() bool {
	return r.ParentID != ""
}
