// Package identify provides the identify command, a terminal client for a
// running plantid server.
package identify

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/verdantlabs/plantid/internal/cmd/application"
	"github.com/verdantlabs/plantid/internal/cmd/output"
	"github.com/verdantlabs/plantid/pkg/client"
	"github.com/verdantlabs/plantid/pkg/errors"
	"github.com/verdantlabs/plantid/pkg/plants"
)

// NewCommand creates the identify command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "identify <image>",
		GroupID: "core",
		Short:   "Identify the plant in an image",
		Long: `Identify sends an image to a running plantid server and prints the
plant's common name, scientific name, description and translated names.

The image may be a raw image file, a file holding base64 text or a data
URL, or "-" to read from standard input.`,
		Example: `  plantid identify rose.jpg
  plantid identify rose.jpg --format json
  plantid identify - < rose.jpg
  plantid identify rose.jpg --server http://plants.internal:5000`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, app)
		},
	}

	cmd.Flags().String("server", "", "plantid server URL (overrides SERVER_URL)")

	return cmd
}

func run(cmd *cobra.Command, args []string, app application.Application) error {
	format, err := output.ParseFormat(app.OutputFormat())
	if err != nil {
		return err
	}
	format = output.DetectFormat(string(format))

	var path string
	if len(args) > 0 {
		path = args[0]
	}

	image, err := readImage(cmd, path)
	if err != nil {
		if errors.Is(err, client.ErrNoFile) {
			return fmt.Errorf("%w: pass an image path or - for stdin", err)
		}
		return err
	}

	c := app.Client()
	if server, _ := cmd.Flags().GetString("server"); server != "" {
		c = client.New(server)
	}

	app.Logger().Debug().
		Str("server", c.BaseURL()).
		Int("image_bytes", len(image)).
		Msg("Submitting image")

	stop := startBusy(cmd.ErrOrStderr())
	result, err := c.Submit(cmd.Context(), image)
	stop()

	if err != nil {
		output.FormatError(cmd.OutOrStdout(), client.Message(err))
		return fmt.Errorf("identify %s: %w", displayPath(path), err)
	}

	langs, err := app.Languages()
	if err != nil {
		app.Logger().Warn().Err(err).Msg("Invalid target languages, showing returned translations")
		langs = nil
	}

	return output.FormatResult(cmd.OutOrStdout(), format, result, langs)
}

func readImage(cmd *cobra.Command, path string) (plants.ImagePayload, error) {
	if path == "-" {
		return client.CaptureReader(cmd.InOrStdin())
	}
	return client.CaptureImage(path)
}

func displayPath(path string) string {
	if path == "-" {
		return "stdin"
	}
	return path
}

var spinnerFrames = []string{"|", "/", "-", "\\"}

// startBusy shows "Identifying..." on w until the returned func is called.
// Terminals get a spinner; anything else gets a single line.
func startBusy(w io.Writer) func() {
	f, ok := w.(*os.File)
	if !ok || !(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		_, _ = fmt.Fprintln(w, "Identifying...")
		return func() {}
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for i := 0; ; i++ {
			_, _ = fmt.Fprintf(w, "\rIdentifying... %s", spinnerFrames[i%len(spinnerFrames)])
			select {
			case <-done:
				_, _ = fmt.Fprint(w, "\r\033[K")
				return
			case <-ticker.C:
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			wg.Wait()
		})
	}
}
