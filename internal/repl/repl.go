// Package repl is the interactive console front end: read a prompt, forward
// it to the configured backend, render the normalized result per kind.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/nverdier/sherpa/internal/infra/llm"
)

const greeting = `Hello! I'm an intelligent assistant and I can help you with various tasks.
For example, you can ask about:
- Product search and price comparison
- Product analysis and reviews
- Similar product recommendations
- Shopping guidance
- Or any other questions you have!`

// REPL runs the interactive loop over a provider client.
type REPL struct {
	client llm.Client
	reader *bufio.Reader
	writer io.Writer
}

// New builds a REPL over the given client and IO streams.
func New(client llm.Client, reader io.Reader, writer io.Writer) *REPL {
	return &REPL{
		client: client,
		reader: bufio.NewReader(reader),
		writer: writer,
	}
}

// Run blocks until the user exits or input is exhausted. A provider failure
// renders as an error message and the loop keeps going; only broken IO ends
// the session abnormally.
func (r *REPL) Run(ctx context.Context) error {
	meta := r.client.ModelInfo()
	fmt.Fprintln(r.writer, greeting)                                             //nolint:errcheck
	fmt.Fprintf(r.writer, "\n(backend: %s/%s)\n", meta.Provider, meta.ID)        //nolint:errcheck

	for {
		fmt.Fprint(r.writer, "\nPlease enter your request (or 'exit' to quit): ") //nolint:errcheck

		line, err := r.reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				fmt.Fprintln(r.writer, "\nGoodbye!") //nolint:errcheck
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch strings.ToLower(line) {
		case "exit", "quit":
			fmt.Fprintln(r.writer, "Goodbye!") //nolint:errcheck
			return nil
		}

		r.render(r.client.ProcessRequest(ctx, line))
	}
}

// render writes one result according to its kind.
func (r *REPL) render(res llm.Result) {
	switch res.Kind {
	case llm.KindProductSearch:
		fmt.Fprintln(r.writer, "\nSearch Results:")        //nolint:errcheck
		fmt.Fprintf(r.writer, "Query: %s\n", res.Query)    //nolint:errcheck
		fmt.Fprintln(r.writer, res.Answer)                 //nolint:errcheck
	case llm.KindProductAnalysis:
		fmt.Fprintln(r.writer, "\nProduct Analysis:") //nolint:errcheck
		fmt.Fprintln(r.writer, res.Answer)            //nolint:errcheck
	case llm.KindRecommendation:
		fmt.Fprintln(r.writer, "\nRecommendations:") //nolint:errcheck
		for _, rec := range res.Recommendations {
			fmt.Fprintf(r.writer, "- %s\n", rec) //nolint:errcheck
		}
	case llm.KindError:
		fmt.Fprintf(r.writer, "\nSorry, an error occurred: %s\n", res.ErrorMessage) //nolint:errcheck
		fmt.Fprintln(r.writer, "Please try again.")                                 //nolint:errcheck
	default:
		fmt.Fprintf(r.writer, "\n%s\n", res.Answer) //nolint:errcheck
	}
}
