package client

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-note-vault/models"
)

const timeLayout = "2006-01-02 15:04"

func (a *App) newNoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "note",
		Aliases: []string{"notes"},
		Short:   "Add, read, tag and search notes",
	}
	cmd.AddCommand(
		a.newNoteAddCmd(),
		a.newNoteGetCmd(),
		a.newNoteListCmd(),
		a.newNoteEditCmd(),
		a.newNoteRemoveCmd(),
		a.newNoteTagCmd(),
		a.newNoteFavoriteCmd(),
		a.newNoteSearchCmd(),
	)
	return cmd
}

func (a *App) newNoteAddCmd() *cobra.Command {
	var title, content string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a note",
		Long:  "Adds a note. Without --content the body is read from stdin.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			login, err := a.login()
			if err != nil {
				return err
			}
			services, err := a.svc(ctx)
			if err != nil {
				return err
			}
			if err = requireUnlocked(services.AccountService.Status(ctx)); err != nil {
				return err
			}

			if !cmd.Flags().Changed("content") {
				if content, err = a.prompt.readAll(); err != nil {
					return err
				}
			}

			note, err := services.NoteService.Create(ctx, login, title, content)
			if err != nil {
				return err
			}

			fmt.Fprintln(a.out, note.ID)
			if !note.Encrypted {
				a.print.warn("Note stored without encryption")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "Note title")
	cmd.Flags().StringVarP(&content, "content", "m", "", "Note body (default: read stdin)")
	return cmd
}

func (a *App) newNoteGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Print a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			login, err := a.login()
			if err != nil {
				return err
			}
			services, err := a.svc(ctx)
			if err != nil {
				return err
			}

			note, err := services.NoteService.Get(ctx, login, args[0])
			if err != nil {
				return err
			}
			if !note.Accessible {
				a.print.warn("This note cannot be opened with the current session key")
				a.print.hint("Sign in again, or run `%s passphrase set --salt <salt>` with the passphrase and salt it was written under", appName)
				return nil
			}

			if note.Title != "" {
				fmt.Fprintf(a.out, "# %s\n", note.Title)
			}
			if len(note.Tags) > 0 {
				fmt.Fprintf(a.out, "tags: %s\n", strings.Join(note.Tags, ", "))
			}
			if note.Title != "" || len(note.Tags) > 0 {
				fmt.Fprintln(a.out)
			}
			fmt.Fprint(a.out, note.Content)
			if !strings.HasSuffix(note.Content, "\n") {
				fmt.Fprintln(a.out)
			}
			return nil
		},
	}
}

func (a *App) newNoteListCmd() *cobra.Command {
	var filter models.NoteFilter

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List notes, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			login, err := a.login()
			if err != nil {
				return err
			}
			services, err := a.svc(ctx)
			if err != nil {
				return err
			}

			notes, err := services.NoteService.List(ctx, login, filter)
			if err != nil {
				return err
			}
			if len(notes) == 0 {
				if filter.FavoritesOnly {
					a.print.hint("No favorites; mark one with `%s note fav <id>`", appName)
				} else {
					a.print.hint("No notes yet; add one with `%s note add`", appName)
				}
				return nil
			}

			if err = a.printNotes(notes); err != nil {
				return err
			}
			if locked := countLocked(notes); locked > 0 {
				a.print.warn("%d note(s) could not be opened with the current session key", locked)
			}
			return nil
		},
	}
	cmd.Flags().Uint64Var(&filter.Limit, "limit", 0, "Show at most this many notes (0 for all)")
	cmd.Flags().BoolVarP(&filter.FavoritesOnly, "favorites", "f", false, "Show only favorite notes")
	return cmd
}

func (a *App) newNoteEditCmd() *cobra.Command {
	var title, content string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the title or body of a note",
		Long:  "Changes a note. Fields without a flag keep their current value.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			login, err := a.login()
			if err != nil {
				return err
			}
			services, err := a.svc(ctx)
			if err != nil {
				return err
			}

			current, err := services.NoteService.Get(ctx, login, args[0])
			if err != nil {
				return err
			}
			if !current.Accessible {
				return fmt.Errorf("note %s cannot be opened with the current session key", args[0])
			}
			if !cmd.Flags().Changed("title") {
				title = current.Title
			}
			if !cmd.Flags().Changed("content") {
				content = current.Content
			}

			note, err := services.NoteService.Update(ctx, login, args[0], title, content)
			if err != nil {
				return err
			}

			a.print.success("Note %s updated", note.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&content, "content", "m", "", "New body")
	return cmd
}

func (a *App) newNoteRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a note",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			login, err := a.login()
			if err != nil {
				return err
			}
			services, err := a.svc(ctx)
			if err != nil {
				return err
			}

			if err = services.NoteService.Delete(ctx, login, args[0]); err != nil {
				return err
			}
			a.print.success("Note %s deleted", args[0])
			return nil
		},
	}
}

func (a *App) newNoteTagCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tag <id> [tag...]",
		Short: "Replace the tags of a note",
		Long: `Replaces the tags of a note. Tags may be given as separate arguments or
comma separated. Without tags the note's tags are cleared.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			login, err := a.login()
			if err != nil {
				return err
			}
			services, err := a.svc(ctx)
			if err != nil {
				return err
			}
			if err = requireUnlocked(services.AccountService.Status(ctx)); err != nil {
				return err
			}

			var tags []string
			for _, arg := range args[1:] {
				tags = append(tags, strings.Split(arg, ",")...)
			}

			note, err := services.NoteService.SetTags(ctx, login, args[0], tags)
			if err != nil {
				return err
			}

			if len(note.Tags) == 0 {
				a.print.success("Tags of note %s cleared", note.ID)
			} else {
				a.print.success("Note %s tagged: %s", note.ID, strings.Join(note.Tags, ", "))
			}
			return nil
		},
	}
}

func (a *App) newNoteFavoriteCmd() *cobra.Command {
	var off bool

	cmd := &cobra.Command{
		Use:     "fav <id>",
		Aliases: []string{"favorite"},
		Short:   "Mark a note as favorite",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			login, err := a.login()
			if err != nil {
				return err
			}
			services, err := a.svc(ctx)
			if err != nil {
				return err
			}

			if err = services.NoteService.SetFavorite(ctx, login, args[0], !off); err != nil {
				return err
			}
			if off {
				a.print.success("Note %s removed from favorites", args[0])
			} else {
				a.print.success("Note %s added to favorites", args[0])
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&off, "off", false, "Remove the favorite mark instead")
	return cmd
}

func (a *App) newNoteSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <text...>",
		Short: "Find notes by title, body or tag",
		Long: `Searches the decrypted title, body and tags of every note, ignoring case.
Notes the current session key cannot open are not searched.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			login, err := a.login()
			if err != nil {
				return err
			}
			services, err := a.svc(ctx)
			if err != nil {
				return err
			}

			stop := startSpinner(a.errOut, "Searching notes...")
			notes, err := services.NoteService.Search(ctx, login, strings.Join(args, " "))
			stop()
			if err != nil {
				return err
			}
			if len(notes) == 0 {
				a.print.hint("No notes match %q", strings.Join(args, " "))
				return nil
			}
			return a.printNotes(notes)
		},
	}
}

func (a *App) printNotes(notes []models.PlainNote) error {
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUPDATED\tFAV\tTITLE\tTAGS")
	for _, note := range notes {
		fav := ""
		if note.Favorite {
			fav = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			note.ID, note.UpdatedAt.Local().Format(timeLayout), fav, listTitle(note), strings.Join(note.Tags, ","))
	}
	return w.Flush()
}

func countLocked(notes []models.PlainNote) int {
	locked := 0
	for _, note := range notes {
		if !note.Accessible {
			locked++
		}
	}
	return locked
}

func listTitle(note models.PlainNote) string {
	switch {
	case !note.Accessible:
		return "(locked)"
	case note.Title == "":
		return "(untitled)"
	}
	return note.Title
}
