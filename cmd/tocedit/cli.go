package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/pkeller/tocedit/internal/config"
	"github.com/pkeller/tocedit/internal/editor"
	"github.com/pkeller/tocedit/internal/errors"
	"github.com/pkeller/tocedit/internal/snapshot"
	"github.com/pkeller/tocedit/internal/storage"
	"github.com/pkeller/tocedit/internal/toc"
	"github.com/pkeller/tocedit/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(store storage.Store, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "tocedit",
		Usage:   "Theory-of-change document editor",
		Version: Version,
		Commands: []*cli.Command{
			showCmd(store, cfg),
			statusCmd(store, cfg),
			reasonCmd(store, cfg),
			tagCmd(store, cfg),
			assumptionCmd(store, cfg),
			outcomeCmd(store, cfg),
			itemCmd(store, cfg),
			saveCmd(store, cfg),
			serveCmd(store, cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// loadEditor restores the editing session from storage: the working state
// if one exists, otherwise the snapshot, otherwise the seed document.
func loadEditor(store storage.Store, cfg *config.Config) *editor.Editor {
	doc, dirty := snapshot.LoadSession(store, cfg.SnapshotKey, toc.Seed())
	return editor.Restore(doc, dirty, editor.NewULIDGenerator())
}

// persist writes the working state back after a CLI mutation.
func persist(store storage.Store, cfg *config.Config, ed *editor.Editor) error {
	return snapshot.StoreWorking(store, cfg.SnapshotKey, snapshot.WorkingState{
		Document: ed.Document(),
		Dirty:    ed.Dirty(),
	})
}

// mutationResult is the JSON shape mutating commands print.
type mutationResult struct {
	Changed bool `json:"changed"`
	Dirty   bool `json:"dirty"`
	Record  any  `json:"record,omitempty"`
}

// finishMutation persists the working state and prints the result.
func finishMutation(store storage.Store, cfg *config.Config, ed *editor.Editor, changed bool, record any) error {
	if err := persist(store, cfg, ed); err != nil {
		return outputError(err)
	}
	return outputJSON(mutationResult{Changed: changed, Dirty: ed.Dirty(), Record: record})
}

// showCmd creates the show command.
func showCmd(store storage.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Print the current document state",
		Action: func(c *cli.Context) error {
			ed := loadEditor(store, cfg)
			return outputJSON(map[string]any{
				"document": ed.Document(),
				"dirty":    ed.Dirty(),
			})
		},
	}
}

// statusCmd creates the status command.
func statusCmd(store storage.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Print the dirty flag and last save time",
		Action: func(c *cli.Context) error {
			ed := loadEditor(store, cfg)
			return outputJSON(map[string]any{
				"dirty":    ed.Dirty(),
				"saved_at": ed.Document().Meta.SavedAt,
			})
		},
	}
}

// reasonCmd creates the reason command.
func reasonCmd(store storage.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "reason",
		Usage:     "Set the reason statement (argument or stdin)",
		ArgsUsage: "[text]",
		Action: func(c *cli.Context) error {
			text := c.Args().First()
			if text == "" && stdinHasData() {
				var err error
				text, err = readStdin()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
			}
			ed := loadEditor(store, cfg)
			changed := ed.SetReason(text)
			return finishMutation(store, cfg, ed, changed, nil)
		},
	}
}

// tagCmd creates the tag command group.
func tagCmd(store storage.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "tag",
		Usage: "Manage audience tags",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Add a tag (case-insensitive duplicates are ignored)",
				ArgsUsage: "<value>",
				Action: func(c *cli.Context) error {
					ed := loadEditor(store, cfg)
					changed := ed.AddTag(c.Args().First())
					return finishMutation(store, cfg, ed, changed, ed.Tags())
				},
			},
			{
				Name:      "remove",
				Usage:     "Remove the tag at a position (0-based)",
				ArgsUsage: "<index>",
				Action: func(c *cli.Context) error {
					index, err := strconv.Atoi(c.Args().First())
					if err != nil {
						return outputError(errors.NewInvalidRequest("index must be an integer"))
					}
					ed := loadEditor(store, cfg)
					changed := ed.RemoveTag(index)
					return finishMutation(store, cfg, ed, changed, ed.Tags())
				},
			},
		},
	}
}

// assumptionCmd creates the assumption command group.
func assumptionCmd(store storage.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "assumption",
		Usage: "Manage the assumptions table",
		Subcommands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Add an assumption row",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "Assumption description"},
					&cli.StringFlag{Name: "certainty", Aliases: []string{"c"}, Usage: "Very certain|Moderately certain|Uncertain"},
				},
				Action: func(c *cli.Context) error {
					ed := loadEditor(store, cfg)
					a, changed := ed.AddAssumption(c.String("description"), toc.ParseCertainty(c.String("certainty")))
					var record any
					if changed {
						record = a
					}
					return finishMutation(store, cfg, ed, changed, record)
				},
			},
			{
				Name:      "update",
				Usage:     "Update an assumption row",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "New description"},
					&cli.StringFlag{Name: "certainty", Aliases: []string{"c"}, Usage: "New certainty rating"},
				},
				Action: func(c *cli.Context) error {
					id := c.Args().First()
					if id == "" {
						return outputError(errors.NewInvalidRequest("id is required"))
					}
					var description *string
					if c.IsSet("description") {
						d := c.String("description")
						description = &d
					}
					var certainty *toc.Certainty
					if c.IsSet("certainty") {
						cc := toc.ParseCertainty(c.String("certainty"))
						certainty = &cc
					}
					ed := loadEditor(store, cfg)
					changed := ed.UpdateAssumption(id, description, certainty)
					return finishMutation(store, cfg, ed, changed, nil)
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete an assumption row",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					ed := loadEditor(store, cfg)
					changed := ed.DeleteAssumption(c.Args().First())
					return finishMutation(store, cfg, ed, changed, nil)
				},
			},
			{
				Name:  "list",
				Usage: "List assumptions, one page at a time",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "page", Aliases: []string{"p"}, Value: 1, Usage: "Page number (1-based)"},
				},
				Action: func(c *cli.Context) error {
					ed := loadEditor(store, cfg)
					ed.SetPage(c.Int("page"))
					return outputJSON(map[string]any{
						"items":  ed.VisibleAssumptions(),
						"window": ed.AssumptionWindow(),
					})
				},
			},
		},
	}
}

// outcomeCmd creates the outcome command group.
func outcomeCmd(store storage.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "outcome",
		Usage: "Manage the direct-outcome tree",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Add a direct outcome",
				ArgsUsage: "<title>",
				Action: func(c *cli.Context) error {
					ed := loadEditor(store, cfg)
					o, changed := ed.AddOutcome(c.Args().First())
					var record any
					if changed {
						record = o
					}
					return finishMutation(store, cfg, ed, changed, record)
				},
			},
			{
				Name:      "update",
				Usage:     "Rename a direct outcome",
				ArgsUsage: "<id> <title>",
				Action: func(c *cli.Context) error {
					ed := loadEditor(store, cfg)
					changed := ed.UpdateOutcome(c.Args().Get(0), c.Args().Get(1))
					return finishMutation(store, cfg, ed, changed, nil)
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a direct outcome and all its sub-outcomes",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					ed := loadEditor(store, cfg)
					subs, changed := ed.DeleteOutcome(c.Args().First())
					if err := persist(store, cfg, ed); err != nil {
						return outputError(err)
					}
					return outputJSON(map[string]any{
						"changed":      changed,
						"dirty":        ed.Dirty(),
						"subs_removed": subs,
					})
				},
			},
			{
				Name:      "toggle",
				Usage:     "Expand or collapse an outcome",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					ed := loadEditor(store, cfg)
					changed := ed.ToggleExpanded(c.Args().First())
					return finishMutation(store, cfg, ed, changed, nil)
				},
			},
			{
				Name:      "sub-add",
				Usage:     "Add a sub-outcome under an outcome",
				ArgsUsage: "<outcome-id> <text>",
				Action: func(c *cli.Context) error {
					ed := loadEditor(store, cfg)
					s, changed := ed.AddChild(c.Args().Get(0), c.Args().Get(1))
					var record any
					if changed {
						record = s
					}
					return finishMutation(store, cfg, ed, changed, record)
				},
			},
			{
				Name:      "sub-delete",
				Usage:     "Delete a sub-outcome",
				ArgsUsage: "<outcome-id> <sub-id>",
				Action: func(c *cli.Context) error {
					ed := loadEditor(store, cfg)
					changed := ed.DeleteChild(c.Args().Get(0), c.Args().Get(1))
					return finishMutation(store, cfg, ed, changed, nil)
				},
			},
		},
	}
}

// itemCmd creates the item command group for the flat outcome lists.
func itemCmd(store storage.Store, cfg *config.Config) *cli.Command {
	listFlag := &cli.StringFlag{
		Name:     "list",
		Aliases:  []string{"l"},
		Usage:    "Target list: indirect|ultimate",
		Required: true,
	}
	return &cli.Command{
		Name:  "item",
		Usage: "Manage the indirect and ultimate outcome lists",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Add a record",
				ArgsUsage: "<text>",
				Flags:     []cli.Flag{listFlag},
				Action: func(c *cli.Context) error {
					col, err := parseList(c.String("list"))
					if err != nil {
						return outputError(err)
					}
					ed := loadEditor(store, cfg)
					r, changed := ed.AddItem(col, c.Args().First())
					var record any
					if changed {
						record = r
					}
					return finishMutation(store, cfg, ed, changed, record)
				},
			},
			{
				Name:      "update",
				Usage:     "Replace a record's text",
				ArgsUsage: "<id> <text>",
				Flags:     []cli.Flag{listFlag},
				Action: func(c *cli.Context) error {
					col, err := parseList(c.String("list"))
					if err != nil {
						return outputError(err)
					}
					ed := loadEditor(store, cfg)
					changed := ed.UpdateItem(col, c.Args().Get(0), c.Args().Get(1))
					return finishMutation(store, cfg, ed, changed, nil)
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a record",
				ArgsUsage: "<id>",
				Flags:     []cli.Flag{listFlag},
				Action: func(c *cli.Context) error {
					col, err := parseList(c.String("list"))
					if err != nil {
						return outputError(err)
					}
					ed := loadEditor(store, cfg)
					changed := ed.DeleteItem(col, c.Args().First())
					return finishMutation(store, cfg, ed, changed, nil)
				},
			},
			{
				Name:  "list",
				Usage: "List records with the preview window applied",
				Flags: []cli.Flag{
					listFlag,
					&cli.BoolFlag{Name: "all", Aliases: []string{"a"}, Usage: "Show all records, not just the preview"},
				},
				Action: func(c *cli.Context) error {
					col, err := parseList(c.String("list"))
					if err != nil {
						return outputError(err)
					}
					ed := loadEditor(store, cfg)
					if c.Bool("all") {
						ed.ToggleExpandedView(col)
					}
					return outputJSON(map[string]any{
						"items":   ed.VisibleItems(col),
						"preview": ed.ItemPreview(col),
					})
				},
			},
		},
	}
}

// saveCmd creates the save command.
func saveCmd(store storage.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "save",
		Usage: "Write the snapshot and clear the dirty flag",
		Action: func(c *cli.Context) error {
			ed := loadEditor(store, cfg)
			if !ed.Dirty() {
				return outputJSON(map[string]any{
					"saved":  false,
					"reason": "no unsaved changes",
				})
			}
			doc, err := snapshot.Save(store, cfg.SnapshotKey, ed.Document(), time.Now())
			if err != nil {
				return outputError(err)
			}
			ed.MarkSaved(doc.Meta.SavedAt)
			if err := snapshot.ClearWorking(store, cfg.SnapshotKey); err != nil {
				// The snapshot is already written; the save succeeded.
				_ = persist(store, cfg, ed)
				return outputJSON(map[string]any{
					"saved":    true,
					"saved_at": doc.Meta.SavedAt,
					"warning":  "saved, but clearing the working state failed: " + err.Error(),
				})
			}
			return outputJSON(map[string]any{
				"saved":    true,
				"saved_at": doc.Meta.SavedAt,
			})
		},
	}
}

// serveCmd creates the serve command for the web UI.
func serveCmd(store storage.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the web UI",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Aliases: []string{"b"}, Usage: "Bind address (default from config)"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Usage: "Port (default from config)"},
		},
		Action: func(c *cli.Context) error {
			bind := cfg.WebBind
			if c.IsSet("bind") {
				bind = c.String("bind")
			}
			port := cfg.WebPort
			if c.IsSet("port") {
				port = c.Int("port")
			}
			ed := loadEditor(store, cfg)
			srv := web.NewServer(ed, store, cfg, Version, bind, port)
			return web.Run(srv)
		},
	}
}

// parseList maps a CLI list name onto an editable collection.
func parseList(s string) (editor.Collection, error) {
	switch s {
	case "indirect":
		return editor.CollectionIndirect, nil
	case "ultimate":
		return editor.CollectionUltimate, nil
	}
	return "", errors.NewInvalidRequest("list must be one of: indirect, ultimate")
}

// outputJSON prints v as indented JSON to stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if eErr, ok := err.(*errors.EditorError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", eErr.Code, eErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin.
func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
