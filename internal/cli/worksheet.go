package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/multivar/internal/worksheet"
)

// RunWorksheet loads the worksheet at path, runs it against the app's service and
// prints every result. It fails when any task failed.
func RunWorksheet(ctx context.Context, app *App, path string, out io.Writer, format string) error {
	sheet, err := worksheet.Load(path)
	if err != nil {
		return err
	}
	app.Logger.Info("Running worksheet", "name", sheet.Name, "tasks", len(sheet.Tasks))

	results := worksheet.Run(ctx, app.Service, sheet)

	if format == OutputJSON {
		if err := Print(out, format, sheet.Name, results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.Err != nil {
				fmt.Fprintf(out, ">>> %s (%s) failed: %v\n", r.Task, r.Op, r.Err)
				continue
			}
			if err := Print(out, format, r.Task+" · "+r.Op, r.Value); err != nil {
				return err
			}
		}
	}

	if failed := worksheet.Failed(results); failed > 0 {
		return fmt.Errorf("%d of %d tasks failed", failed, len(results))
	}
	return nil
}
