package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kamusis/postsearch/internal/output"
	"github.com/kamusis/postsearch/internal/widget"
)

var (
	flagSearchIndex       string
	flagSearchLimit       int
	flagSearchFuzzy       bool
	flagSearchExclude     []string
	flagSearchFormat      string
	flagSearchTemplate    string
	flagSearchInteractive bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search posts by title, description and tags",
	Long: `Search the aggregate index the same way the site's search box does.

With --interactive every line read from stdin is treated as the new content of
the search box and the result list is re-rendered.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&flagSearchIndex, "index", "", "index path or URL (default from config)")
	searchCmd.Flags().IntVarP(&flagSearchLimit, "limit", "k", 0, "maximum number of results (default from config)")
	searchCmd.Flags().BoolVar(&flagSearchFuzzy, "fuzzy", false, "match query characters in order instead of as a substring")
	searchCmd.Flags().StringSliceVar(&flagSearchExclude, "exclude", nil, "titles to leave out of the index (repeatable)")
	searchCmd.Flags().StringVar(&flagSearchFormat, "format", "table", "output format: table, html or text")
	searchCmd.Flags().StringVar(&flagSearchTemplate, "template", "", "result template with {url} {title} {desc} {tags}")
	searchCmd.Flags().BoolVarP(&flagSearchInteractive, "interactive", "i", false, "read queries from stdin, one per line")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if !flagSearchInteractive && len(args) == 0 {
		return cmd.Help()
	}

	wcfg, err := widgetConfig(cmd)
	if err != nil {
		return err
	}
	table := wcfg.Format == "table"
	if table {
		wcfg.Format = widget.FormatText
		if !cmd.Flags().Changed("template") {
			wcfg.ResultTemplate = ""
		}
	}

	source := firstNonEmpty(flagSearchIndex, cfg.IndexSource())
	loadCtx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	var container widget.Container = widget.NewWriterContainer(cmd.OutOrStdout())
	w, err := widget.Initialize(loadCtx, source, container, wcfg, widget.WithLogger(logger))
	if err != nil {
		return err
	}

	if flagSearchInteractive {
		return runSearchInteractive(cmd, w)
	}

	query := strings.Join(args, " ")
	if table {
		return printSearchTable(cmd, w, w.Query(query))
	}
	w.OnInput(query)
	return nil
}

// widgetConfig merges config-file widget options with command-line flags.
func widgetConfig(cmd *cobra.Command) (widget.Config, error) {
	wc := cfg.Widget
	out := widget.Config{
		Limit:          wc.Limit,
		Fuzzy:          wc.Fuzzy,
		Exclude:        wc.Exclude,
		ResultTemplate: wc.ResultTemplate,
		NoResultsText:  wc.NoResultsText,
		Format:         widget.Format(wc.Format),
	}
	f := cmd.Flags()
	if f.Changed("limit") {
		out.Limit = flagSearchLimit
	}
	if f.Changed("fuzzy") {
		out.Fuzzy = flagSearchFuzzy
	}
	if f.Changed("exclude") {
		out.Exclude = append(append([]string(nil), out.Exclude...), flagSearchExclude...)
	}
	if f.Changed("template") {
		out.ResultTemplate = flagSearchTemplate
	}

	switch flagSearchFormat {
	case "table":
		out.Format = "table"
	case "html":
		out.Format = widget.FormatHTML
	case "text":
		out.Format = widget.FormatText
		if !f.Changed("template") && out.ResultTemplate == widget.DefaultHTMLTemplate {
			out.ResultTemplate = ""
		}
	default:
		return out, fmt.Errorf("invalid --format %q (expected table, html or text)", flagSearchFormat)
	}
	return out, nil
}

func printSearchTable(cmd *cobra.Command, w *widget.Widget, st widget.QueryState) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\npostsearch search %q\n\n", st.Query)
	if st.Empty() {
		fmt.Fprintln(out, w.Config().NoResultsText)
		return nil
	}
	fmt.Fprintf(out, "Results (%d found):\n\n", len(st.Results))

	tbl := output.NewTable(out, []string{"#", "Title", "URL", "Matched"})
	for i, d := range st.Results {
		tbl.AddRow(strconv.Itoa(i+1), d.Title, d.URL, st.Fields[i].String())
	}
	return tbl.Render()
}

// runSearchInteractive treats each stdin line as the search box's new value.
func runSearchInteractive(cmd *cobra.Command, w *widget.Widget) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	input := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(input)
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			select {
			case input <- strings.TrimRight(scanner.Text(), "\r"):
			case <-ctx.Done():
				scanErr <- nil
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	if err := w.Listen(ctx, input); err != nil && ctx.Err() == nil {
		return err
	}
	select {
	case err := <-scanErr:
		return err
	default:
		return nil
	}
}
