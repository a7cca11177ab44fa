package commands

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Test199T/vita-wise-ai-sub001/internal/domain"
)

var (
	promptColor    = color.New(color.FgCyan, color.Bold)
	assistantColor = color.New(color.FgGreen)
	noticeColor    = color.New(color.FgRed)
)

var chatCmd = &cobra.Command{
	Use:   "chat [session-id]",
	Short: "Chat with the VitaWise assistant",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := app.Chat.LoadSessions(ctx); err != nil {
			return err
		}

		if len(args) == 1 {
			if err := app.Chat.Select(ctx, args[0]); err != nil {
				if errors.Is(err, domain.ErrInvalidSessionID) {
					noticeColor.Println("Not a valid session id, starting a new conversation.")
				} else {
					return err
				}
			}
		}

		fmt.Println("VitaWise chat. /new, /list, /switch <id>, /delete <id>, /image <path> <text>, /quit")
		scanner := bufio.NewScanner(os.Stdin)
		for {
			promptColor.Print("you> ")
			if !scanner.Scan() {
				return scanner.Err()
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if strings.HasPrefix(line, "/") {
				if quit := runChatCommand(cmd, line); quit {
					return nil
				}
				continue
			}

			reply, err := app.Chat.Send(ctx, line, "", nil)
			if err != nil {
				return err
			}
			printReply(reply)
		}
	},
}

// runChatCommand handles slash commands; returns true on /quit
func runChatCommand(cmd *cobra.Command, line string) bool {
	ctx := cmd.Context()
	fields := strings.Fields(line)

	switch fields[0] {
	case "/quit", "/exit":
		return true

	case "/new":
		app.Chat.NewChat()
		fmt.Println("Started a new conversation.")

	case "/list":
		for _, s := range app.Chat.Sessions() {
			fmt.Printf("%s  %s\n", s.ID, s.Title)
		}

	case "/switch":
		if len(fields) != 2 {
			noticeColor.Println("Usage: /switch <session-id>")
			return false
		}
		if err := app.Chat.Select(ctx, fields[1]); err != nil {
			if errors.Is(err, domain.ErrInvalidSessionID) {
				noticeColor.Println("Not a valid session id, starting a new conversation.")
			} else {
				noticeColor.Println(err.Error())
			}
			return false
		}
		for _, m := range app.Chat.Messages() {
			printMessage(m)
		}

	case "/delete":
		if len(fields) != 2 {
			noticeColor.Println("Usage: /delete <session-id>")
			return false
		}
		id, err := domain.ParseSessionID(fields[1])
		if err != nil {
			noticeColor.Println("Not a valid session id.")
			return false
		}
		if err := app.Chat.Delete(ctx, id); err != nil {
			noticeColor.Println(err.Error())
			return false
		}
		fmt.Println("Session deleted.")

	case "/image":
		if len(fields) < 3 {
			noticeColor.Println("Usage: /image <path> <text>")
			return false
		}
		path := fields[1]
		text := strings.Join(fields[2:], " ")
		file, err := os.Open(path)
		if err != nil {
			noticeColor.Printf("Cannot open %s: %v\n", path, err)
			return false
		}
		defer file.Close()
		reply, err := app.Chat.Send(ctx, text, filepath.Base(path), file)
		if err != nil {
			noticeColor.Println(err.Error())
			return false
		}
		printReply(reply)

	default:
		noticeColor.Printf("Unknown command %s\n", fields[0])
	}
	return false
}

func printReply(reply *domain.Message) {
	if strings.HasPrefix(reply.Content, "⚠️") {
		noticeColor.Println(reply.Content)
		return
	}
	assistantColor.Printf("assistant> %s\n", reply.Content)
}

func printMessage(m domain.Message) {
	if m.Sender == domain.SenderUser {
		promptColor.Printf("you> ")
		fmt.Println(m.Content)
		return
	}
	printReply(&m)
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
