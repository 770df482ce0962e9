package main

import (
	"fmt"
	"strings"

	"chat-engine/internal/attachment"
	"chat-engine/internal/chat"
	"chat-engine/internal/models"
	"chat-engine/internal/search"

	"github.com/spf13/cobra"
)

func newChatsCmd(g *globalFlags) *cobra.Command {
	var query, category string
	cmd := &cobra.Command{
		Use:   "chats",
		Short: "List chats, pinned first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openStore(cmd.Context(), g)
			if err != nil {
				return err
			}
			s.SetChatQuery(query)
			s.SetCategory(category)

			chats := s.SortedFilteredChats()
			if len(chats) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no chats match")
				return nil
			}
			for _, c := range chats {
				printChat(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "filter by name")
	cmd.Flags().StringVar(&category, "category", "all", "filter by category")
	return cmd
}

func newShowCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show <chat-id>",
		Short: "Print a chat's messages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(cmd.Context(), g)
			if err != nil {
				return err
			}
			c, err := s.Chat(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s, %d participants)\n", c.Name, c.Type, len(c.Participants))
			for _, m := range c.Messages {
				printMessage(out, m, s.Actor())
			}
			return nil
		},
	}
}

func newSearchCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "search <chat-id> <query>",
		Short: "Find messages in a chat by text or file name",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(cmd.Context(), g)
			if err != nil {
				return err
			}
			c, err := s.Chat(args[0])
			if err != nil {
				return err
			}
			found := search.Match(c.Messages, strings.Join(args[1:], " "))
			fmt.Fprintf(cmd.OutOrStdout(), "%d result(s)\n", len(found))
			for _, m := range found {
				printMessage(cmd.OutOrStdout(), m, s.Actor())
			}
			return nil
		},
	}
}

func newSendCmd(g *globalFlags) *cobra.Command {
	var file, replyTo string
	cmd := &cobra.Command{
		Use:   "send <chat-id> [text...]",
		Short: "Send a text message or a file and print the result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(cmd.Context(), g)
			if err != nil {
				return err
			}

			content := models.TextContent(chat.ExpandShortcut(strings.Join(args[1:], " ")))
			if file != "" {
				a, err := attachment.FromFile(file)
				if err != nil {
					return err
				}
				content = a.Content()
			}

			msg, err := s.SendMessage(args[0], content, replyTo)
			if err != nil {
				return err
			}
			printMessage(cmd.OutOrStdout(), msg, s.Actor())
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "attach a local file instead of text")
	cmd.Flags().StringVar(&replyTo, "reply", "", "message id to reply to")
	return cmd
}

func newReactCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "react <chat-id> <message-id> <emoji>",
		Short: "Toggle a reaction and print the message",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(cmd.Context(), g)
			if err != nil {
				return err
			}
			res, err := s.ToggleReaction(args[0], args[1], args[2])
			if err != nil {
				return err
			}
			if res.PickerRequested {
				fmt.Fprintln(cmd.OutOrStdout(), "pick an emoji to react with")
				return nil
			}
			c, _ := s.Chat(args[0])
			printMessage(cmd.OutOrStdout(), c.Messages[models.IndexOf(c.Messages, args[1])], s.Actor())
			return nil
		},
	}
}

func newForwardCmd(g *globalFlags) *cobra.Command {
	var ids, targets []string
	cmd := &cobra.Command{
		Use:   "forward <chat-id>",
		Short: "Forward messages from one chat into others",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(cmd.Context(), g)
			if err != nil {
				return err
			}
			c, err := s.Chat(args[0])
			if err != nil {
				return err
			}
			var picked []models.Message
			for _, id := range ids {
				if i := models.IndexOf(c.Messages, id); i >= 0 {
					picked = append(picked, c.Messages[i])
				}
			}
			n := s.ForwardMessages(targets, picked)
			fmt.Fprintf(cmd.OutOrStdout(), "forwarded %d message(s)\n", n)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&ids, "ids", nil, "message ids to forward")
	cmd.Flags().StringSliceVar(&targets, "to", nil, "target chat ids")
	return cmd
}
