package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/fundex/pkg/client"
)

func newGetCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one fund",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.api.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return renderJSON(cmd.OutOrStdout(), f)
			}
			return renderFund(cmd.OutOrStdout(), f)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func newUpdateCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "update <id> field=value...",
		Short: "Replace fields of a fund",
		Long: `Update sends the given fields as one partial update. Values are raw
text; the server coerces them, so tag fields accept a comma-separated list.

Example:
  fundctl update 7f3c vintage=2021 "strategies=Buyout, Growth"`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := client.Patch{}
			for _, arg := range args[1:] {
				field, value, err := parseAssignment(arg)
				if err != nil {
					return err
				}
				p = p.Set(field, value)
			}

			f, err := a.api.Update(cmd.Context(), args[0], p)
			if err != nil {
				return err
			}
			if asJSON {
				return renderJSON(cmd.OutOrStdout(), f)
			}
			return renderFund(cmd.OutOrStdout(), f)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the updated fund as JSON")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a fund",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.api.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			return renderSuccess(cmd.OutOrStdout(), "Deleted %s", args[0])
		},
	}
}

func newEditCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a fund interactively with autosave",
		Long: `Edit reads field=value lines from stdin. Edits are saved once input has
been quiet for the autosave delay; remaining edits are saved at end of input.
Blank lines and lines starting with # are ignored.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if _, err := a.api.Get(cmd.Context(), id); err != nil {
				return err
			}

			out := &syncWriter{w: cmd.OutOrStdout()}
			delay := a.cfg.GetDuration(cfgKeyAutosaveDelay)
			if cmd.Flags().Changed("delay") {
				delay, _ = cmd.Flags().GetDuration("delay")
			}

			saver := a.api.Autosaver(id,
				client.WithDelay(delay),
				client.WithOnSave(func(_ client.Fund, err error) {
					if err != nil {
						fmt.Fprintln(out, "Save failed:", err)
						return
					}
					_ = renderSuccess(out, "Saved")
				}),
			)

			if err := readEdits(cmd.InOrStdin(), saver.Mark); err != nil {
				_, _ = saver.Close(cmd.Context())
				return err
			}

			pending := saver.Pending()
			if _, err := saver.Close(cmd.Context()); err != nil {
				return err
			}
			if pending {
				return renderSuccess(out, "Saved")
			}
			return nil
		},
	}
	cmd.Flags().Duration("delay", client.DefaultAutosaveDelay, "quiet period before autosave")
	return cmd
}

// readEdits parses field=value lines and hands each one to mark.
func readEdits(r io.Reader, mark func(client.Patch)) error {
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		field, value, err := parseAssignment(text)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		mark(client.Patch{}.Set(field, value))
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read edits: %w", err)
	}
	return nil
}

func parseAssignment(s string) (field, value string, err error) {
	field, value, ok := strings.Cut(s, "=")
	field = strings.TrimSpace(field)
	if !ok || field == "" {
		return "", "", fmt.Errorf("invalid assignment %q (expected field=value)", s)
	}
	return field, value, nil
}

// syncWriter serializes writes from the autosave timer and the command.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
