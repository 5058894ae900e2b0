package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Motmedel/static_server_go/pkg/config"
	"github.com/Motmedel/static_server_go/pkg/keywords"
	motmedelOs "github.com/Motmedel/static_server_go/pkg/os"
	"github.com/charmbracelet/lipgloss"
	"github.com/jessevdk/go-flags"
)

type Opts struct {
	RootDirectory string `long:"root" env:"ROOT_DIRECTORY" description:"Directory containing the document" default:"./public"`
	Document      string `long:"document" description:"Document to check, relative to the root" default:"index.html"`
}

var (
	boldStyle   = lipgloss.NewStyle().Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	pathStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	sampleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

func run(out io.Writer, documentPath string) int {
	fmt.Fprintf(out, "%s\n\n", boldStyle.Render("Keyword Verification"))
	fmt.Fprintf(out, "Checking: %s\n\n", pathStyle.Render(documentPath))

	if !motmedelOs.Exists(documentPath) {
		fmt.Fprintln(out, failStyle.Render(fmt.Sprintf("✗ Error: %s not found!", filepath.Base(documentPath))))
		return 1
	}

	file, err := os.Open(documentPath)
	if err != nil {
		fmt.Fprintln(out, failStyle.Render(fmt.Sprintf("✗ Error: %v", err)))
		return 1
	}
	defer file.Close()

	result, err := keywords.Extract(file)
	if err != nil {
		if errors.Is(err, keywords.ErrNoKeywordsMeta) {
			fmt.Fprintln(out, failStyle.Render("✗ No keywords meta tag found!"))
			fmt.Fprintf(out, "\nExpected format:\n  %s\n", sampleStyle.Render(keywords.ExpectedFormat))
		} else {
			fmt.Fprintln(out, failStyle.Render(fmt.Sprintf("✗ Error: %v", err)))
		}
		return 1
	}

	fmt.Fprintf(out, "%s\n\n", okStyle.Render("✓ Keywords found!"))
	fmt.Fprintf(out, "%s %s\n\n", boldStyle.Render("Total keywords:"), okStyle.Render(fmt.Sprint(len(result.Keywords))))
	fmt.Fprintln(out, boldStyle.Render("Keywords list:"))
	for i, keyword := range result.Keywords {
		fmt.Fprintf(out, "  %d. %s\n", i+1, keyword)
	}
	fmt.Fprintf(out, "\n%s\n  %s\n", boldStyle.Render("Full meta tag:"), sampleStyle.Render(result.Tag))

	return 0
}

func main() {
	opts := Opts{RootDirectory: config.DefaultRootDirectory}
	if _, err := flags.Parse(&opts); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}

	os.Exit(run(os.Stdout, filepath.Join(opts.RootDirectory, opts.Document)))
}
