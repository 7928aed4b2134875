// Command patternlens is a CLI harness for the search core: it loads an
// HTML document (optionally gzip-compressed), runs one command-surface
// action against it, and prints the result. It is not part of the
// specified core; it exists so the core has a runnable, testable entry
// point outside a browser.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/gedex/inflector"
	"github.com/klauspost/pgzip"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/naokirin/chrome-ext-pattern-lens-sub000/internal/domtree"
	"github.com/naokirin/chrome-ext-pattern-lens-sub000/internal/obslog"
	"github.com/naokirin/chrome-ext-pattern-lens-sub000/internal/perftune"
	"github.com/naokirin/chrome-ext-pattern-lens-sub000/searchstate"
)

func main() {
	args := os.Args[1:]
	if len(args) < 2 {
		fmt.Fprintf(os.Stderr, "\nERROR: usage: patternlens <file.html[.gz]> <search|next|prev|jump|results|state> [args...]\n")
		os.Exit(1)
	}

	root, err := loadDocument(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "\nERROR: %s\n", err.Error())
		os.Exit(1)
	}

	budget := perftune.Compute()
	config := searchstate.DefaultConfig()
	machine := searchstate.New(root, "", budget, config, nil)

	action, cmd, err := parseCommand(args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "\nERROR: %s\n", err.Error())
		os.Exit(1)
	}

	resp := machine.Dispatch(action, cmd)
	printResponse(action, resp)
}

// loadDocument opens path and parses it as HTML, transparently
// decompressing a .gz suffix with pgzip for fast parallel decompression of
// large archived-page snapshots.
func loadDocument(path string) (*domtree.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.HasSuffix(path, ".gz") {
		zr, err := pgzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		return domtree.Parse(zr)
	}
	return domtree.Parse(f)
}

func parseCommand(args []string) (string, searchstate.Command, error) {
	action := args[0]
	rest := args[1:]

	switch action {
	case "search":
		return "search", searchstate.Command{Query: parseQuerySpec(rest)}, nil
	case "next":
		return "navigate_next", searchstate.Command{}, nil
	case "prev":
		return "navigate_prev", searchstate.Command{}, nil
	case "jump":
		if len(rest) < 1 {
			return "", searchstate.Command{}, fmt.Errorf("jump requires an index argument")
		}
		i, err := strconv.Atoi(rest[0])
		if err != nil {
			return "", searchstate.Command{}, fmt.Errorf("jump: %w", err)
		}
		return "jump_to_match", searchstate.Command{Index: i}, nil
	case "results":
		contextLength := 0
		if len(rest) > 0 {
			n, err := strconv.Atoi(rest[0])
			if err != nil {
				return "", searchstate.Command{}, fmt.Errorf("results: %w", err)
			}
			contextLength = n
		}
		return "get_results_list", searchstate.Command{ContextLength: contextLength}, nil
	case "state":
		return "get_state", searchstate.Command{}, nil
	default:
		return "", searchstate.Command{}, fmt.Errorf("unrecognized command %q", action)
	}
}

// parseQuerySpec reads a positional query string followed by boolean
// flags: -regex, -case-sensitive, -fuzzy, -element=css|xpath.
func parseQuerySpec(args []string) searchstate.QuerySpec {
	var spec searchstate.QuerySpec
	var queryParts []string
	for _, a := range args {
		switch {
		case a == "-regex":
			spec.UseRegex = true
		case a == "-case-sensitive":
			spec.CaseSensitive = true
		case a == "-fuzzy":
			spec.UseFuzzy = true
		case a == "-element=css":
			spec.UseElementSearch = true
			spec.ElementMode = searchstate.CSSMode
		case a == "-element=xpath":
			spec.UseElementSearch = true
			spec.ElementMode = searchstate.XPathMode
		default:
			queryParts = append(queryParts, a)
		}
	}
	spec.Query = strings.Join(queryParts, " ")
	return spec
}

func printResponse(action string, resp searchstate.Response) {
	if !resp.Ok {
		fmt.Fprintf(os.Stderr, "\n%sERROR: %s%s\n", red(), resetColor(), resp.Error)
		obslog.Errorf("patternlens: %s failed: %s", action, resp.Error)
		os.Exit(1)
	}

	titleCaser := cases.Title(language.English)

	switch action {
	case "get_state":
		fmt.Printf("state: %s, current: %d, total: %d\n", titleCaser.String(resp.State), resp.CurrentIndex, resp.TotalMatches)
	case "get_results_list":
		printResultsList(resp)
	default:
		label := inflector.Pluralize("match")
		if resp.TotalMatches == 1 {
			label = "match"
		}
		fmt.Printf("%d %s, current: %d\n", resp.TotalMatches, label, resp.CurrentIndex)
	}
}

func printResultsList(resp searchstate.Response) {
	highlight := color.New(color.FgRed, color.Bold).SprintFunc()
	for _, item := range resp.Items {
		fmt.Printf("%d: %s%s%s\n", item.Index, item.ContextBefore, highlight(item.MatchedText), item.ContextAfter)
	}
}

func red() string        { return "\033[31m" }
func resetColor() string { return "\033[0m" }
