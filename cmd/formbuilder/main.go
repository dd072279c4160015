// Command formbuilder manages form schemas and their responses from the
// terminal: building and editing schemas interactively, filling forms,
// rendering previews, and exporting collected responses to a spreadsheet.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/goliatone/go-formbuilder/internal/config"
	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/export"
	"github.com/goliatone/go-formbuilder/pkg/fill"
	"github.com/goliatone/go-formbuilder/pkg/formfile"
	"github.com/goliatone/go-formbuilder/pkg/importer"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/preview"
	"github.com/goliatone/go-formbuilder/pkg/storage"
	"github.com/goliatone/go-formbuilder/pkg/storage/blob"
	"github.com/goliatone/go-formbuilder/pkg/storage/sqlite"
	"github.com/goliatone/go-formbuilder/pkg/tui"
)

const usage = `Usage: formbuilder <command> [flags]

Commands:
  create                       build a new form interactively
  edit   -form <id>            edit an existing form
  fill   -form <id>            fill a form and submit a response
  list                         list stored forms
  delete -form <id>            delete a form (responses are kept)
  preview -form <id> [-output] render the read-only preview HTML
  export -form <id> [-output]  export responses as a spreadsheet
  responses -form <id>         print submitted responses
  import -source <path> -operation <id> [-save]
                               derive a draft form from an OpenAPI operation
`

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("load configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.Open(cfg.DatabasePath)
	if err != nil {
		logger.Error("open storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx := context.Background()
	if err := run(ctx, cfg, store, os.Args[1], os.Args[2:]); err != nil {
		if errors.Is(err, tui.ErrAborted) {
			os.Exit(130)
		}
		logger.Error("command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, store *sqlite.Store, command string, args []string) error {
	switch command {
	case "create":
		return runBuilder(ctx, store, model.Form{})
	case "edit":
		form, err := fetchFlagForm(ctx, store, command, args)
		if err != nil {
			return err
		}
		return runBuilder(ctx, store, form)
	case "fill":
		return runFill(ctx, cfg, store, command, args)
	case "list":
		return runList(ctx, store)
	case "delete":
		form, err := fetchFlagForm(ctx, store, command, args)
		if err != nil {
			return err
		}
		if err := store.DeleteForm(ctx, form.ID); err != nil {
			return err
		}
		fmt.Printf("Deleted form %s\n", form.ID)
		return nil
	case "preview":
		return runPreview(ctx, store, command, args)
	case "export":
		return runExport(ctx, store, command, args)
	case "responses":
		return runResponses(ctx, store, command, args)
	case "import":
		return runImport(ctx, store, command, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func fetchFlagForm(ctx context.Context, store storage.FormStore, command string, args []string) (model.Form, error) {
	fs := flag.NewFlagSet(command, flag.ExitOnError)
	formID := fs.String("form", "", "form id")
	if err := fs.Parse(args); err != nil {
		return model.Form{}, err
	}
	if *formID == "" {
		return model.Form{}, fmt.Errorf("-form is required")
	}
	form, err := store.FetchForm(ctx, *formID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return model.Form{}, fmt.Errorf("form %s not found", *formID)
		}
		return model.Form{}, err
	}
	return form, nil
}

func runBuilder(ctx context.Context, store *sqlite.Store, form model.Form) error {
	flow := tui.NewBuilderFlow(tui.NewSurveyDriver())
	editor := builder.New(form)
	saved, err := flow.Run(ctx, editor, store)
	if err != nil {
		return err
	}
	fmt.Printf("Saved form %s\n", saved.ID)
	return nil
}

func runFill(ctx context.Context, cfg config.Config, store *sqlite.Store, command string, args []string) error {
	form, err := fetchFlagForm(ctx, store, command, args)
	if err != nil {
		return err
	}
	blobs, err := blob.New(cfg.BlobDir, cfg.BlobBaseURL)
	if err != nil {
		return err
	}
	session := fill.NewSession(form, fill.WithBlobStore(blobs))
	flow := tui.NewFillFlow(tui.NewSurveyDriver())
	if _, err := flow.Run(ctx, session, store); err != nil {
		return err
	}
	return nil
}

func runList(ctx context.Context, store *sqlite.Store) error {
	forms, err := store.ListForms(ctx)
	if err != nil {
		return err
	}
	if len(forms) == 0 {
		fmt.Println("No forms yet.")
		return nil
	}
	for _, form := range forms {
		fmt.Printf("%s\t%s\t(%d questions)\n", form.ID, form.Title, len(form.Questions))
	}
	return nil
}

func runPreview(ctx context.Context, store *sqlite.Store, command string, args []string) error {
	fs := flag.NewFlagSet(command, flag.ExitOnError)
	formID := fs.String("form", "", "form id")
	output := fs.String("output", "", "output file (stdout if empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *formID == "" {
		return fmt.Errorf("-form is required")
	}
	form, err := store.FetchForm(ctx, *formID)
	if err != nil {
		return err
	}
	html, err := preview.HTML(form)
	if err != nil {
		return err
	}
	return writeOutput(*output, html)
}

func runExport(ctx context.Context, store *sqlite.Store, command string, args []string) error {
	fs := flag.NewFlagSet(command, flag.ExitOnError)
	formID := fs.String("form", "", "form id")
	output := fs.String("output", export.FileName, "output file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *formID == "" {
		return fmt.Errorf("-form is required")
	}
	form, err := store.FetchForm(ctx, *formID)
	if err != nil {
		return err
	}
	responses, err := store.ListResponses(ctx, *formID)
	if err != nil {
		return err
	}
	file, err := os.Create(*output)
	if err != nil {
		return err
	}
	if err := export.Responses(file, form, responses); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	fmt.Printf("Exported %d response(s) to %s\n", len(responses), *output)
	return nil
}

func runResponses(ctx context.Context, store *sqlite.Store, command string, args []string) error {
	form, err := fetchFlagForm(ctx, store, command, args)
	if err != nil {
		return err
	}
	responses, err := store.ListResponses(ctx, form.ID)
	if err != nil {
		return err
	}
	if len(responses) == 0 {
		fmt.Println("No responses yet.")
		return nil
	}
	for i, response := range responses {
		fmt.Printf("Response #%d — %s\n", i+1, response.CreatedAt.Format("2006-01-02 15:04:05"))
		for _, row := range export.Details(form, response) {
			fmt.Printf("  %s: %s\n", row.QuestionText, row.Answer)
		}
	}
	return nil
}

func runImport(ctx context.Context, store *sqlite.Store, command string, args []string) error {
	fs := flag.NewFlagSet(command, flag.ExitOnError)
	source := fs.String("source", "", "OpenAPI document path")
	operation := fs.String("operation", "", "operation id to import")
	save := fs.Bool("save", false, "save the draft instead of printing it")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *source == "" || *operation == "" {
		return fmt.Errorf("-source and -operation are required")
	}
	data, err := os.ReadFile(*source)
	if err != nil {
		return err
	}
	form, err := importer.FromDocument(ctx, data, *operation)
	if err != nil {
		return err
	}

	if *save {
		saved, err := store.CreateForm(ctx, form)
		if err != nil {
			return err
		}
		fmt.Printf("Imported draft saved as form %s\n", saved.ID)
		return nil
	}

	doc, err := formfile.Marshal(form)
	if err != nil {
		return err
	}
	return writeOutput("", doc)
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
