package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"google.golang.org/genai"

	"github.com/yuchih/stocknote"
	"github.com/yuchih/stocknote/renderer"
)

type assistCmd struct {
	model string
}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "ask the AI assistant a question about your portfolio" }
func (*assistCmd) Usage() string {
	return `sn assist <question...>

  Sends the question to Gemini together with a markdown rendering of the
  current holdings and their figures. Requires GEMINI_API_KEY in the
  environment or a .env file.

Example:
$ sn assist which holding carries the largest unrealized loss?
`
}

func (p *assistCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.model, "model", "gemini-2.5-flash", "Gemini model to use.")
}

func (p *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "assist needs a question")
		return subcommands.ExitUsageError
	}
	question := strings.Join(f.Args(), " ")

	store, err := loadStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var portfolio strings.Builder
	for _, h := range store.Holdings {
		portfolio.WriteString(renderer.Snapshot(h, stocknote.ComputeFinancials(h)))
		portfolio.WriteString("\n")
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	prompt := fmt.Sprintf(
		"You are a careful personal-portfolio assistant. Answer from the holdings below, in the question's language.\n\n%s\nQuestion: %s",
		portfolio.String(), question)

	result, err := client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Assistant failed:", err)
		return subcommands.ExitFailure
	}

	printMarkdown(result.Text())
	return subcommands.ExitSuccess
}
