// Package repl implements an interactive session over one ontology project.
// Lines are either commands or triple-pattern queries.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/duynguyendang/ontograph/pkg/export"
	"github.com/duynguyendang/ontograph/pkg/owl"
	"github.com/duynguyendang/ontograph/pkg/service"
	"github.com/duynguyendang/ontograph/pkg/translate"
)

// DisplayLimit caps the rows printed for one command.
const DisplayLimit = 20

const help = `Commands:
  axioms <shape> [compress]   list the axioms of a shape
  describe <iri>              list the axioms mentioning an entity
  find <name>                 fuzzy search over declared entities
  path <iri> <iri>            shortest axiom chain between two entities
  export <file> [shape]...    write the axioms as D3 graph JSON
  shapes                      list the axiom shapes
  history                     show recent queries
  !!                          repeat the last query
  exit | quit
Anything else is evaluated as a query, e.g.
  triples(C, a, <http://www.w3.org/2002/07/owl#Class>)`

// REPL reads commands from in and writes results to out.
type REPL struct {
	svc     *service.GraphService
	project string
	out     io.Writer
	session *SessionContext
}

// New creates a REPL over one project.
func New(svc *service.GraphService, projectID string, out io.Writer) *REPL {
	return &REPL{svc: svc, project: projectID, out: out, session: NewSessionContext()}
}

// Run starts the interactive loop. It returns when in is exhausted, the
// user exits or ctx is cancelled.
func (r *REPL) Run(ctx context.Context, in io.Reader) error {
	fmt.Fprintf(r.out, "\n--- Interactive Query Mode (%s) ---\n", r.project)
	fmt.Fprintln(r.out, "Type 'help' for commands, 'exit' or 'quit' to stop.")
	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(r.out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "exit" || line == "quit" {
			break
		}
		if line == "" {
			continue
		}
		if err := r.Execute(ctx, line); err != nil {
			fmt.Fprintf(r.out, "Error: %v\n", err)
		}
	}
	fmt.Fprintln(r.out, "👋 Bye!")
	return scanner.Err()
}

// Execute runs one command line.
func (r *REPL) Execute(ctx context.Context, line string) error {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	fields := strings.Fields(arg)

	switch cmd {
	case "help":
		fmt.Fprintln(r.out, help)
		return nil
	case "shapes":
		for _, s := range owl.Shapes() {
			fmt.Fprintf(r.out, "%-32s %s\n", s, s.Arity())
		}
		return nil
	case "!!":
		if !r.session.HasContext() {
			return fmt.Errorf("no previous query")
		}
		return r.query(ctx, r.session.LastQuery())
	case "history":
		for _, turn := range r.session.ConversationHistory {
			fmt.Fprintf(r.out, "%s  (%d results)\n", turn.Query, turn.ResultCount)
		}
		return nil
	case "axioms":
		if len(fields) == 0 {
			return fmt.Errorf("usage: axioms <shape> [compress]")
		}
		return r.axioms(fields[0], len(fields) > 1 && fields[1] == "compress")
	case "describe":
		if len(fields) != 1 {
			return fmt.Errorf("usage: describe <iri>")
		}
		axioms, err := r.svc.Describe(r.project, strings.Trim(fields[0], "<>"))
		if err != nil {
			return err
		}
		r.printAxioms(axioms)
		return nil
	case "find":
		if arg == "" {
			return fmt.Errorf("usage: find <name>")
		}
		return r.find(arg)
	case "path":
		if len(fields) != 2 {
			return fmt.Errorf("usage: path <iri> <iri>")
		}
		return r.path(ctx, strings.Trim(fields[0], "<>"), strings.Trim(fields[1], "<>"))
	case "export":
		if len(fields) == 0 {
			return fmt.Errorf("usage: export <file> [shape]...")
		}
		return r.export(fields[0], fields[1:])
	}
	return r.query(ctx, line)
}

func (r *REPL) axioms(name string, compress bool) error {
	shape, err := owl.ParseShape(name)
	if err != nil {
		return err
	}
	axioms, err := r.svc.Axioms(r.project, shape)
	if err != nil {
		return err
	}
	if compress {
		axioms = translate.Compress(axioms)
	}
	r.printAxioms(axioms)
	return nil
}

func (r *REPL) printAxioms(axioms []*owl.Axiom) {
	if len(axioms) == 0 {
		fmt.Fprintln(r.out, "📭 [No axioms]")
		return
	}
	for i, ax := range axioms {
		if i >= DisplayLimit {
			fmt.Fprintf(r.out, "... and %d more\n", len(axioms)-DisplayLimit)
			break
		}
		fmt.Fprintln(r.out, ax)
	}
}

func (r *REPL) find(name string) error {
	g, err := r.svc.ExportGraph(r.project, owl.Declaration)
	if err != nil {
		return err
	}
	byName := make(map[string][]export.D3Node)
	names := make([]string, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		if _, seen := byName[n.Name]; !seen {
			names = append(names, n.Name)
		}
		byName[n.Name] = append(byName[n.Name], n)
	}
	matches := FindBySimilarity(name, names)
	if len(matches) == 0 {
		fmt.Fprintln(r.out, "📭 [No matches]")
		return nil
	}
	for _, m := range matches {
		for _, n := range byName[m] {
			fmt.Fprintf(r.out, "%-20s %s <%s>\n", n.Kind, n.Name, n.ID)
		}
	}
	return nil
}

func (r *REPL) path(ctx context.Context, start, end string) error {
	g, err := r.svc.FindShortestPath(ctx, r.project, start, end)
	if err != nil {
		return err
	}
	if len(g.Nodes) == 0 {
		fmt.Fprintln(r.out, "📭 [No path]")
		return nil
	}
	for _, l := range g.Links {
		fmt.Fprintf(r.out, "<%s> --[%s]--> <%s>\n", l.Source, l.Relation, l.Target)
	}
	return nil
}

func (r *REPL) export(filename string, names []string) error {
	var shapes []owl.Shape
	for _, name := range names {
		s, err := owl.ParseShape(name)
		if err != nil {
			return err
		}
		shapes = append(shapes, s)
	}
	g, err := r.svc.ExportGraph(r.project, shapes...)
	if err != nil {
		return err
	}
	if err := export.SaveD3Graph(g, filename); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "✅ Exported %d nodes and %d links to %s\n", len(g.Nodes), len(g.Links), filename)
	return nil
}

func (r *REPL) query(ctx context.Context, q string) error {
	res, err := r.svc.ExecuteQuery(ctx, r.project, q, 0)
	if err != nil {
		return err
	}
	r.session.AddTurn(ConversationTurn{Query: q, ResultCount: len(res.Results)})
	if len(res.Results) == 0 {
		fmt.Fprintln(r.out, "📭 [No results]")
		return nil
	}
	fmt.Fprintf(r.out, "\n✅ Found %d results:\n", len(res.Results))
	for i, row := range res.Results {
		if i >= DisplayLimit {
			fmt.Fprintf(r.out, "... and %d more\n", len(res.Results)-DisplayLimit)
			break
		}
		cols := make([]string, len(res.Vars))
		for j, v := range res.Vars {
			cols[j] = v + "=" + row[v]
		}
		fmt.Fprintf(r.out, "- %s\n", strings.Join(cols, " "))
	}
	return nil
}
