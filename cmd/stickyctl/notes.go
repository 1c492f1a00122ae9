package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var errNoteNotFound = errors.New("note not found")

func (c *cli) listCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all notes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			notes, err := c.store.GetAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing notes: %w", err)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, notes)
			}

			for _, n := range notes {
				fmt.Fprintf(out, "%d\t%s\t(%d,%d)\t%s\n", n.ID, n.Color, n.Position.X, n.Position.Y, summary(n.Text))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output in JSON format")
	return cmd
}

func (c *cli) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			note, err := c.store.Get(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("reading note %d: %w", id, err)
			}
			if note == nil {
				return fmt.Errorf("%w: %d", errNoteNotFound, id)
			}

			return writeJSON(cmd.OutOrStdout(), note)
		},
	}
}

func (c *cli) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if err := c.store.Delete(cmd.Context(), id); err != nil {
				return fmt.Errorf("deleting note %d: %w", id, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Note deleted: %d\n", id)
			return nil
		},
	}
}

func (c *cli) clearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.store.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clearing notes: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "All notes deleted")
			return nil
		},
	}
}

func (c *cli) exportCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every note to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "yaml" {
				return fmt.Errorf("unsupported format %q (want json or yaml)", format)
			}

			notes, err := c.store.GetAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("exporting notes: %w", err)
			}

			out := cmd.OutOrStdout()
			if format == "yaml" {
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(notes); err != nil {
					return fmt.Errorf("encoding yaml: %w", err)
				}
				return enc.Close()
			}
			return writeJSON(out, notes)
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "export format: json or yaml")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid note id %q", arg)
	}
	return id, nil
}

// summary returns the first line of text, shortened for table output.
func summary(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	if r := []rune(line); len(r) > 40 {
		return string(r[:37]) + "..."
	}
	return line
}
