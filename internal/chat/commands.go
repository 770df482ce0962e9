package chat

import (
	"fmt"
	"slices"
	"strings"

	"chat-engine/internal/models"
	"chat-engine/internal/search"
	"chat-engine/internal/types"
)

// apply runs one command against the store. The returned event, if any, is
// an answer for the issuing client only; state changes reach everyone
// through the store's change notification.
func (h *Hub) apply(cmd types.Command) (*types.Event, error) {
	s := h.store

	switch cmd.Type {
	case types.CmdSelectChat:
		return nil, s.SetActiveChat(cmd.ChatID)
	case types.CmdTogglePin:
		return nil, s.TogglePin(cmd.ChatID)
	case types.CmdToggleMute:
		return nil, s.ToggleMute(cmd.ChatID)
	case types.CmdCreateGroup:
		_, err := s.CreateGroup(cmd.Name, cmd.Participants)
		return nil, err
	case types.CmdSetQuery:
		s.SetChatQuery(cmd.Query)
	case types.CmdSetCategory:
		s.SetCategory(cmd.Category)

	case types.CmdSend:
		content := models.TextContent(ExpandShortcut(cmd.Text))
		if cmd.Content != nil {
			content = *cmd.Content
		}
		_, err := s.SendMessage(cmd.ChatID, content, cmd.ReplyTo)
		return nil, err
	case types.CmdStartReply:
		return nil, s.StartReply(cmd.MessageID)
	case types.CmdCancelReply:
		s.CancelReply()
	case types.CmdEdit:
		_, err := s.EditMessage(cmd.ChatID, cmd.MessageID, cmd.Text)
		return nil, err
	case types.CmdDelete:
		_, err := s.DeleteMessage(cmd.ChatID, cmd.MessageID)
		return nil, err
	case types.CmdReact:
		res, err := s.ToggleReaction(cmd.ChatID, cmd.MessageID, cmd.Emoji)
		if err != nil || !res.PickerRequested {
			return nil, err
		}
		return &types.Event{Type: types.EventPicker, PickerRequested: true, MessageID: cmd.MessageID}, nil
	case types.CmdForward:
		c, err := s.Chat(cmd.ChatID)
		if err != nil {
			return nil, err
		}
		picked := make([]models.Message, 0, len(cmd.IDs))
		for _, m := range c.Messages {
			if slices.Contains(cmd.IDs, m.ID) {
				picked = append(picked, m)
			}
		}
		s.ForwardMessages(cmd.Targets, picked)
	case types.CmdClearChat:
		return nil, s.RequestClearChat(cmd.ChatID)

	case types.CmdEnterSelect:
		s.EnterSelectMode()
	case types.CmdExitSelect:
		s.ExitSelectMode()
	case types.CmdToggleSelect:
		return nil, s.ToggleSelection(cmd.MessageID)
	case types.CmdBulkCopy:
		text, err := s.BulkCopy()
		if err != nil || text == "" {
			return nil, err
		}
		return &types.Event{Type: types.EventClipboard, Clipboard: text}, nil
	case types.CmdBulkDelete:
		return nil, s.RequestBulkDelete()
	case types.CmdBeginForward:
		_, err := s.BeginBulkForward()
		return nil, err
	case types.CmdForwardSelect:
		s.ForwardSelection(cmd.Targets)
	case types.CmdCancelForward:
		s.CancelForward()

	case types.CmdConfirm:
		return nil, s.ConfirmPending()
	case types.CmdCancel:
		s.CancelPending()

	case types.CmdOpenSearch:
		s.OpenSearch()
	case types.CmdCloseSearch:
		s.CloseSearch()
	case types.CmdSearch:
		found, err := s.Search(cmd.Query)
		if err != nil {
			return nil, err
		}
		return &types.Event{Type: types.EventResults, Results: found}, nil
	case types.CmdSelectResult:
		tok, err := s.SelectResult(cmd.MessageID)
		if err != nil {
			return nil, err
		}
		return &types.Event{Type: types.EventNavigate, ScrollTargetID: cmd.MessageID, Token: uint64(tok)}, nil
	case types.CmdScrolled:
		s.ScrolledIntoView(search.Token(cmd.Token))

	// The sidebar lives outside the store, so these refresh by hand.
	case types.CmdResizePress:
		h.sidebar.Press(cmd.X)
	case types.CmdResizeMove:
		h.sidebar.Move(cmd.X)
		h.markDirty()
	case types.CmdResizeRelease:
		h.sidebar.Release()
		h.markDirty()

	default:
		return nil, fmt.Errorf("unknown command %q", cmd.Type)
	}
	return nil, nil
}

var shortcuts = map[string]string{
	"/shrug":      "¯\\_(ツ)_/¯",
	"/tableflip":  "(╯°□°）╯︵ ┻━┻",
	"/unflip":     "┬─┬ノ( º _ ºノ)",
	"/lenny":      "( ͡° ͜ʖ ͡°)",
	"/disapprove": "ಠ_ಠ",
	"/coffee":     "☕",
}

// ExpandShortcut appends the emoticon for a leading slash shortcut, so
// "/shrug fine" becomes "fine ¯\_(ツ)_/¯". Other text is returned as is.
func ExpandShortcut(text string) string {
	if !strings.HasPrefix(text, "/") {
		return text
	}
	cmd, rest, _ := strings.Cut(text, " ")
	suffix, ok := shortcuts[cmd]
	if !ok {
		return text
	}
	return strings.TrimSpace(rest + " " + suffix)
}
