package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"chatkeys/internal/action"
	"chatkeys/internal/config"
	"chatkeys/internal/control"
	"chatkeys/internal/input"
	"chatkeys/internal/keys"
	"chatkeys/internal/network"
	"chatkeys/internal/protocol"

	"github.com/spf13/cobra"
)

var (
	sendAddr    string
	sendToken   string
	sendSender  string
	sendChannel string
	sendWatch   bool
	sendTimeout time.Duration

	checkCmd = &cobra.Command{
		Use:   "check",
		Short: "Validate the configuration and print the action table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runCheck(cmd.OutOrStdout(), cfg, input.NewInjector())
		},
	}

	keysCmd = &cobra.Command{
		Use:   "keys",
		Short: "List every key name and alias accepted in the configuration",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printKeys(cmd.OutOrStdout())
		},
	}

	sendCmd = &cobra.Command{
		Use:   "send <text>...",
		Short: "Send a chat message to a running chatkeys",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSend(cmd.Context(), cmd.OutOrStdout(), strings.Join(args, " "))
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of chatkeys",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "chatkeys version %s\n", version)
		},
	}
)

func init() {
	sendCmd.Flags().StringVar(&sendAddr, "addr", config.DefaultIngestAddr, "Address of the ingest server")
	sendCmd.Flags().StringVar(&sendToken, "token", "", "Bearer token of the ingest server")
	sendCmd.Flags().StringVar(&sendSender, "sender", "cli", "Sender name shown in the chat echo")
	sendCmd.Flags().StringVar(&sendChannel, "channel", "", "Channel the message belongs to")
	sendCmd.Flags().BoolVarP(&sendWatch, "watch", "w", false, "Keep the connection open and print dispatched actions")
	sendCmd.Flags().DurationVar(&sendTimeout, "timeout", 5*time.Second, "Connect and reply timeout")
}

// runCheck builds everything the service would build at startup and prints
// the result.
func runCheck(out io.Writer, cfg *config.Config, emitter input.Emitter) error {
	table, err := action.Build(cfg)
	if err != nil {
		return err
	}
	ctrl, err := control.ResolveKeys(cfg.ControlKeys.Exit, cfg.ControlKeys.Pause)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Channel: %s\n", cfg.Channel)
	fmt.Fprintf(out, "Control keys: exit=%s pause=%s\n", ctrl.Exit, ctrl.Pause)
	fmt.Fprintf(out, "Settle: %s, default hold: %s\n", cfg.Settle(), cfg.DefaultHold())
	if addr := cfg.IngestAddr(); addr != "" {
		fmt.Fprintf(out, "Ingest: %s\n", addr)
	} else {
		fmt.Fprintln(out, "Ingest: off")
	}
	fmt.Fprintln(out)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ACTION\tKEYS\tHOLD")
	for _, name := range table.Names() {
		a, _ := table.Lookup(name)
		names := make([]string, len(a.Inputs))
		for i, in := range a.Inputs {
			names[i] = in.String()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", name, strings.Join(names, "+"), a.Hold)
	}
	tw.Flush()

	if missing := input.Unsupported(emitter, table.Inputs()); len(missing) > 0 {
		return fmt.Errorf("%w: keys not supported on this platform: %v", action.ErrBuild, missing)
	}
	fmt.Fprintln(out, "\nConfiguration OK")
	return nil
}

func printKeys(out io.Writer) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tALSO ACCEPTED")
	for _, k := range keys.AllKeys() {
		names := keys.Names(k)
		fmt.Fprintf(tw, "%s\t%s\n", names[0], strings.Join(names[1:], " "))
	}
	fmt.Fprintln(tw, "Unknown(N)\traw platform key code N")
	tw.Flush()
}

func runSend(ctx context.Context, out io.Writer, text string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	dialCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	client, err := network.Dial(dialCtx, sendAddr, sendToken)
	if err != nil {
		return err
	}
	defer client.Close()

	client.OnDispatch = func(p protocol.DispatchPayload) {
		fmt.Fprintf(out, "dispatched %s (%s, %dms)\n", p.Action, strings.Join(p.Keys, "+"), p.HoldMS)
	}

	if err := client.SendChat(dialCtx, protocol.ChatPayload{
		Sender:  sendSender,
		Text:    text,
		Channel: sendChannel,
	}); err != nil {
		return err
	}
	fmt.Fprintf(out, "sent %q\n", text)

	if !sendWatch {
		return nil
	}
	return client.Watch(ctx)
}
