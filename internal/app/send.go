package app

import (
	"go.uber.org/zap"

	"github.com/interpretive-systems/studybuddy/internal/chat"
	"github.com/interpretive-systems/studybuddy/internal/notify"
)

// ReplyFailedText fills the placeholder of an exchange that failed.
const ReplyFailedText = "Sorry, I couldn't get a response. Please try again."

// SendResult is the outcome of a chat job.
type SendResult struct {
	Pending chat.Pending
	Reply   chat.Reply
	Err     error
}

// BeginSend starts an exchange in the current course and returns the job that
// fetches the reply. It returns false when there is no current course, the
// text is blank or the course is already waiting for a reply.
func (c *Controller) BeginSend(text string) (func() SendResult, bool) {
	if c.closed {
		return nil, false
	}
	p, ok := c.chat.Begin(c.currentID, text)
	if !ok {
		return nil, false
	}
	responder, timeout := c.responder, c.chatTimeout
	return func() SendResult {
		ctx, cancel := c.callContext(timeout)
		defer cancel()
		reply, err := responder.Respond(ctx, chat.Request{
			Message:   p.Text,
			CourseID:  p.CourseID,
			SessionID: p.SessionID,
		})
		return SendResult{Pending: p, Reply: reply, Err: err}
	}, true
}

// CompleteSend fills the exchange's placeholder and unlocks the demo assets
// the first time an exchange finishes.
func (c *Controller) CompleteSend(res SendResult) {
	if c.closed {
		return
	}
	content := res.Reply.Message
	if res.Err != nil {
		c.log.Error("chat failed", zap.String("course", res.Pending.CourseID), zap.Error(res.Err))
		content = ReplyFailedText
		c.notify("Message failed", "The assistant did not answer. Please try again.", notify.VariantDestructive)
	} else {
		c.chat.SetSessionID(res.Pending.CourseID, res.Reply.SessionID)
	}
	if !c.chat.Complete(res.Pending, content) {
		c.log.Debug("reply for a cleared conversation dropped", zap.String("course", res.Pending.CourseID))
	}
	if c.demo.Unlock() {
		c.log.Info("demo assets unlocked")
	}
}

// Send runs an exchange synchronously.
func (c *Controller) Send(text string) (SendResult, bool) {
	job, ok := c.BeginSend(text)
	if !ok {
		return SendResult{}, false
	}
	res := job()
	c.CompleteSend(res)
	return res, true
}

// SetInput replaces the chat input buffer.
func (c *Controller) SetInput(v string) { c.chat.SetInput(v) }

// ClearChat empties the current course's conversation.
func (c *Controller) ClearChat() { c.chat.Clear(c.currentID) }

// Sending reports whether the current course waits for a reply.
func (c *Controller) Sending() bool { return c.chat.IsSending(c.currentID) }
