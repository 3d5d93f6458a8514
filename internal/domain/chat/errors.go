package chat

import "errors"

var (
	ErrMissingContent    = errors.New("message content is required")
	ErrReceiverNotFound  = errors.New("receiver not found")
	ErrCannotMessageSelf = errors.New("cannot send a message to yourself")
)
