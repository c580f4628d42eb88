package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"mockbot-be/pkg/client"
)

// A line-based front end for the chat session controller, mostly
// useful for exercising a running backend without the web client.
func main() {
	baseURL := flag.String("base-url", "http://localhost:5000", "backend base URL")
	role := flag.String("role", "", "start a role-based interview instead of skill selection")
	token := flag.String("token", "", "bearer token for saving sessions")
	flag.Parse()

	store := client.NewMemoryStore()
	if *token != "" {
		store.Set(client.KeyToken, *token)
	}

	api := client.NewHTTPClient(*baseURL, 30*time.Second)
	ctrl := client.NewController(store, api, client.Options{
		Notify: func(level, message string) {
			fmt.Printf("[%s] %s\n", strings.ToUpper(level), message)
		},
	})

	phase := ctrl.Start(*role)
	printTranscript(ctrl)

	if phase == client.PhaseSelect {
		fmt.Println("\nAvailable skills:")
		for _, s := range client.Skills {
			fmt.Printf("  %-14s %s\n", s.Id, s.Desc)
		}
		fmt.Println("\nType /skill <id> to begin, or /help for commands.")
	}

	scanner := bufio.NewScanner(os.Stdin)
	ctx := context.Background()

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case line == "/quit":
			return
		case line == "/help":
			fmt.Println("/skill <id>  choose a skill\n/again       another question\n/harder      a harder question\n/save        save to the server\n/export      print the transcript\n/new         start over\n/quit        exit")
		case strings.HasPrefix(line, "/skill "):
			id := strings.TrimSpace(strings.TrimPrefix(line, "/skill "))
			if err := ctrl.ChooseSkill(ctx, id); err != nil {
				fmt.Printf("[ERROR] %v\n", err)
				continue
			}
			printLast(ctrl)
		case line == "/again":
			if err := ctrl.PracticeAgain(ctx); err != nil {
				fmt.Printf("[ERROR] %v\n", err)
				continue
			}
			printLast(ctrl)
		case line == "/harder":
			if err := ctrl.HarderQuestion(ctx); err != nil {
				fmt.Printf("[ERROR] %v\n", err)
				continue
			}
			printLast(ctrl)
		case line == "/save":
			saved, err := ctrl.Save(ctx)
			if err != nil {
				fmt.Printf("[ERROR] %v\n", err)
				continue
			}
			fmt.Printf("Saved session %s\n", saved.Id)
		case line == "/export":
			if err := ctrl.Export(os.Stdout); err != nil {
				fmt.Printf("[ERROR] %v\n", err)
			}
		case line == "/new":
			ctrl.StartNew()
			printTranscript(ctrl)
		default:
			if err := ctrl.Send(ctx, line); err != nil {
				fmt.Printf("[ERROR] %v\n", err)
				continue
			}
			printLast(ctrl)
		}
	}
}

func printTranscript(ctrl *client.Controller) {
	for _, msg := range ctrl.Messages() {
		printMessage(msg)
	}
}

func printLast(ctrl *client.Controller) {
	messages := ctrl.Messages()
	if len(messages) == 0 {
		return
	}
	printMessage(messages[len(messages)-1])
}

func printMessage(msg client.ChatMessage) {
	speaker := "MockBot"
	if msg.Type == client.MessageTypeUser {
		speaker = "You"
	}
	fmt.Printf("%s: %s\n", speaker, msg.Content)
}
