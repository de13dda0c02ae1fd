package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/duynguyendang/ontograph/pkg/datalog"
	"github.com/duynguyendang/ontograph/pkg/export"
	"github.com/duynguyendang/ontograph/pkg/graph"
	"github.com/duynguyendang/ontograph/pkg/mcp"
	"github.com/duynguyendang/ontograph/pkg/owl"
	"github.com/duynguyendang/ontograph/pkg/repl"
	"github.com/duynguyendang/ontograph/pkg/server"
	"github.com/duynguyendang/ontograph/pkg/service"
	"github.com/duynguyendang/ontograph/pkg/translate"
)

func (a *app) loadCmd() *cobra.Command {
	var check bool
	cmd := &cobra.Command{
		Use:   "load <project> <file.nt>...",
		Short: "Add N-Triples files to a project, creating it if needed",
		Long:  `Reads each file (or stdin for "-") as N-Triples into the project graph.`,
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := a.manager(nil)
			if err != nil {
				return err
			}
			defer mgr.CloseAll()

			p, err := openOrCreate(mgr, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, path := range args[1:] {
				n, err := readFile(cmd, path, p.Graph)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "loaded %d triples from %s\n", n, path)
			}
			if !check {
				return nil
			}

			total := 0
			for _, s := range owl.Shapes() {
				axs, err := p.Cache.Axioms(s)
				if err != nil {
					return err
				}
				if len(axs) > 0 {
					fmt.Fprintf(out, "%-32s %d\n", s, len(axs))
				}
				total += len(axs)
			}
			fmt.Fprintf(out, "%d axioms in %d triples\n", total, p.Graph.Len())
			return nil
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "Read every axiom shape after loading and print counts")
	return cmd
}

func readFile(cmd *cobra.Command, path string, g graph.Graph) (int, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return 0, err
		}
		defer f.Close()
		r = f
	}
	return graph.ReadNTriples(r, g)
}

func (a *app) axiomsCmd() *cobra.Command {
	var compress, triples bool
	cmd := &cobra.Command{
		Use:   "axioms <project> [shape]...",
		Short: "Print the axioms of a project",
		Long:  `Prints the axioms of the named shapes, or of every shape when none is given.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var shapes []owl.Shape
			for _, name := range args[1:] {
				s, err := owl.ParseShape(name)
				if err != nil {
					return err
				}
				shapes = append(shapes, s)
			}
			if len(shapes) == 0 {
				shapes = owl.Shapes()
			}

			mgr, err := a.manager(nil)
			if err != nil {
				return err
			}
			defer mgr.CloseAll()
			p, err := mgr.GetProject(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, s := range shapes {
				axs, err := p.Cache.Axioms(s)
				if err != nil {
					return err
				}
				if compress {
					axs = translate.Compress(axs)
				}
				for _, ax := range axs {
					fmt.Fprintln(out, ax)
					if !triples || compress {
						continue
					}
					ts, err := p.Cache.TriplesOf(ax)
					if err != nil {
						return err
					}
					for _, t := range ts.Sorted() {
						fmt.Fprintf(out, "    %s\n", t)
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&compress, "compress", false, "Merge pairwise n-ary axioms into larger groups")
	cmd.Flags().BoolVar(&triples, "triples", false, "Print the triples of each axiom")
	return cmd
}

func (a *app) queryCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "query <project> <query>",
		Short: "Match triple patterns against a project graph",
		Long: `Evaluates a conjunction of triples(S, P, O) atoms with optional
neq(A, B), A != B and regex(A, "re") filters. Prints one line per result.`,
		Example: `  ontograph query pizza 'triples(C, a, <http://www.w3.org/2002/07/owl#Class>)'`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := datalog.Compile(args[1])
			if err != nil {
				return err
			}
			mgr, err := a.manager(nil)
			if err != nil {
				return err
			}
			defer mgr.CloseAll()
			p, err := mgr.GetProject(args[0])
			if err != nil {
				return err
			}

			results, err := q.Eval(cmd.Context(), p.Graph, limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, b := range results {
				cols := make([]string, 0, len(q.Vars()))
				for _, v := range q.Vars() {
					cols = append(cols, v+"="+b[v].String())
				}
				fmt.Fprintln(out, strings.Join(cols, "\t"))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of results (0 for all)")
	return cmd
}

func (a *app) exportCmd() *cobra.Command {
	var (
		output string
		d3     bool
	)
	cmd := &cobra.Command{
		Use:   "export <project>",
		Short: "Write a project graph as sorted N-Triples",
		Long:  `Writes the project graph as sorted N-Triples, or with --d3 its axioms as D3 graph JSON.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := a.manager(nil)
			if err != nil {
				return err
			}
			defer mgr.CloseAll()
			p, err := mgr.GetProject(args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			if !d3 {
				return graph.WriteNTriples(w, p.Graph)
			}
			var axioms []*owl.Axiom
			for _, s := range owl.Shapes() {
				axs, err := p.Cache.Axioms(s)
				if err != nil {
					return err
				}
				axioms = append(axioms, axs...)
			}
			return export.WriteD3Graph(w, export.ExportD3(mgr.Registry().Identities(), axioms))
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().BoolVar(&d3, "d3", false, "Write the axioms as D3 force-directed graph JSON")
	return cmd
}

func (a *app) serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the REST API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.Addr
			}
			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)

			mgr, err := a.manager(reg)
			if err != nil {
				return err
			}
			defer mgr.CloseAll()

			srv := server.NewServer(mgr, reg)
			fmt.Fprintf(cmd.OutOrStdout(), "Starting REST API Server. Project Root: %s\n", a.cfg.DataDir)
			return srv.Run(addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	return cmd
}

func (a *app) mcpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the projects to MCP clients over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := a.manager(nil)
			if err != nil {
				return err
			}
			defer mgr.CloseAll()
			return mcp.Run(cmd.Context(), mgr)
		},
	}
}

func (a *app) replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl <project>",
		Short: "Start an interactive query session on a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := a.manager(nil)
			if err != nil {
				return err
			}
			defer mgr.CloseAll()
			if _, err := mgr.GetProject(args[0]); err != nil {
				return err
			}
			r := repl.New(service.NewGraphService(mgr), args[0], cmd.OutOrStdout())
			return r.Run(cmd.Context(), cmd.InOrStdin())
		},
	}
}
