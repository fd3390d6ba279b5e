package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/abhisek/quizter/internal/mathtex"
	"github.com/abhisek/quizter/internal/render"
	"github.com/abhisek/quizter/internal/richdoc"
	"github.com/abhisek/quizter/internal/ui/paint"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render a rich document JSON file to the terminal (no TUI)",
	Long: `Render a document through the full pipeline and print the result.

This is a stateless developer tool for checking how authored content will
look: no database, no quiz session. The input file holds either a JSON
string or a document node tree, the same formats a deck accepts for stems,
options, and explanations. Faults are reported on stderr.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("file", "", "Path to a document JSON file (required)")
	previewCmd.Flags().Bool("inline", false, "Render in inline mode instead of block mode")
	previewCmd.Flags().Bool("html", false, "Print the fragment tree as markup instead of styled text")
	previewCmd.Flags().Int("width", 72, "Wrap width for block output")
	_ = previewCmd.MarkFlagRequired("file")
}

func runPreview(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("file")
	inline, _ := cmd.Flags().GetBool("inline")
	asHTML, _ := cmd.Flags().GetBool("html")
	width, _ := cmd.Flags().GetInt("width")

	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var content richdoc.Content
	if err := json.Unmarshal(raw, &content); err != nil {
		return fmt.Errorf("parse document: %w", err)
	}

	mathtex.SetDefault(mathtex.Simple{})

	variant := render.Block
	if inline {
		variant = render.Inline
	}
	out := render.Render(content, render.Config{
		Variant: variant,
		OnFault: func(f render.Fault) {
			fmt.Fprintln(os.Stderr, "fault:", f.String())
		},
	})

	if asHTML {
		fmt.Println(out.String())
		return nil
	}
	if inline {
		fmt.Println(paint.Inline(out))
		return nil
	}
	fmt.Println(paint.Paint(out, width))
	return nil
}
