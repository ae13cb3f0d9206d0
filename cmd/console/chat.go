package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/freshmart/admin-console/internal/chat"
	"github.com/freshmart/admin-console/internal/console"
	"github.com/freshmart/admin-console/pkg/metrics"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open the customer service panel",
	Long: `Open the interactive customer service panel.

The panel refreshes the conversation list every few seconds and renders the
open conversation's timeline. Commands:

  select <id>   switch to a conversation
  send <text>   reply in the open conversation
  img <url>     send an image by URL
  quit          close the panel`,
	RunE: runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	ops := console.NewOpsServer(cli.cfg.Ops.ListenAddr, cli.registry, cli.logg)
	ops.Start(ctx)
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer shutdownCancel()
		_ = ops.Shutdown(shutdownCtx)
	}()

	poller, err := chat.NewPoller(chat.PollerParams{
		Service:   cli.chat,
		Cursors:   chat.NewReadCursors(),
		Logger:    cli.logg,
		Metrics:   metrics.NewPollMetrics(cli.registry),
		Interval:  cli.cfg.Chat.PollInterval,
		Threshold: cli.cfg.Chat.SeparatorThreshold,
		OnUpdate: func(snap chat.Snapshot) {
			console.RenderSnapshot(os.Stdout, snap)
		},
	})
	if err != nil {
		return err
	}

	panel, err := console.NewPanel(poller)
	if err != nil {
		return err
	}
	if err := panel.Activate(ctx); err != nil {
		return err
	}
	defer panel.Deactivate()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		verb, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)

		switch verb {
		case "quit", "exit":
			return nil
		case "select":
			id, convErr := strconv.ParseInt(rest, 10, 64)
			if convErr != nil {
				fmt.Fprintln(os.Stderr, "usage: select <id>")
				continue
			}
			if err := panel.Select(ctx, id); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		case "send":
			if err := panel.Send(ctx, rest, ""); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		case "img":
			if err := panel.Send(ctx, "", rest); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		default:
			fmt.Fprintln(os.Stderr, "commands: select <id>, send <text>, img <url>, quit")
		}

		if !panel.Available() {
			fmt.Fprintln(os.Stderr, "customer service is not available on this backend")
			return nil
		}
	}
	return scanner.Err()
}
