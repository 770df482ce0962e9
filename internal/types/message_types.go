package types

import "chat-engine/internal/models"

type CommandType string

const (
	CmdSelectChat  CommandType = "select_chat"
	CmdTogglePin   CommandType = "toggle_pin"
	CmdToggleMute  CommandType = "toggle_mute"
	CmdCreateGroup CommandType = "create_group"
	CmdSetQuery    CommandType = "set_query"
	CmdSetCategory CommandType = "set_category"

	CmdSend        CommandType = "send"
	CmdStartReply  CommandType = "start_reply"
	CmdCancelReply CommandType = "cancel_reply"
	CmdEdit        CommandType = "edit"
	CmdDelete      CommandType = "delete"
	CmdReact       CommandType = "react"
	CmdForward     CommandType = "forward"
	CmdClearChat   CommandType = "clear_chat"

	CmdEnterSelect   CommandType = "enter_select"
	CmdExitSelect    CommandType = "exit_select"
	CmdToggleSelect  CommandType = "toggle_select"
	CmdBulkCopy      CommandType = "bulk_copy"
	CmdBulkDelete    CommandType = "bulk_delete"
	CmdBeginForward  CommandType = "begin_forward"
	CmdForwardSelect CommandType = "forward_selection"
	CmdCancelForward CommandType = "cancel_forward"

	CmdConfirm CommandType = "confirm"
	CmdCancel  CommandType = "cancel"

	CmdOpenSearch   CommandType = "open_search"
	CmdCloseSearch  CommandType = "close_search"
	CmdSearch       CommandType = "search"
	CmdSelectResult CommandType = "select_result"
	CmdScrolled     CommandType = "scrolled"

	CmdResizePress   CommandType = "resize_press"
	CmdResizeMove    CommandType = "resize_move"
	CmdResizeRelease CommandType = "resize_release"
)

// Command is one user intent sent by a client. Only the fields its Type
// needs are read.
type Command struct {
	Type         CommandType     `json:"type"`
	ChatID       string          `json:"chatId,omitempty"`
	MessageID    string          `json:"messageId,omitempty"`
	IDs          []string        `json:"ids,omitempty"`
	Text         string          `json:"text,omitempty"`
	Content      *models.Content `json:"content,omitempty"`
	Emoji        string          `json:"emoji,omitempty"`
	Targets      []string        `json:"targets,omitempty"`
	ReplyTo      string          `json:"replyTo,omitempty"`
	Query        string          `json:"query,omitempty"`
	Name         string          `json:"name,omitempty"`
	Participants []string        `json:"participants,omitempty"`
	Category     string          `json:"category,omitempty"`
	Token        uint64          `json:"token,omitempty"`
	X            int             `json:"x,omitempty"`
}
