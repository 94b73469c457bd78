package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/javafix/internal/logging"
	"github.com/yaklabco/javafix/pkg/config"
	"github.com/yaklabco/javafix/pkg/inspect"
	"github.com/yaklabco/javafix/pkg/projectview"
	"github.com/yaklabco/javafix/pkg/session"
)

type treeFlags struct {
	search string
	expand []string
	depth  int
	all    bool
	counts bool
}

func newTreeCommand() *cobra.Command {
	var cfg config.Config
	flags := &treeFlags{}

	cmd := &cobra.Command{
		Use:   "tree [path]",
		Short: "Show the project view with error stripes",
		Long: `Print the project as a tree of directories, packages, files and classes.
A stripe in the left margin marks collapsed nodes containing problems,
colored by the most severe one.

--search performs a speed search: every matching node is revealed and
highlighted. Patterns match name prefixes or camel humps ("CTCN" matches
CallToClassName).

--expand takes paths relative to the project root or node IDs
(d:dir, f:file, p:root:package, c:file#Class).`,
		Example: `  javafix tree                         # Top level only
  javafix tree --all --counts          # Everything, with problem counts
  javafix tree --search ChildCl        # Reveal matching classes
  javafix tree --expand src/main/java`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(cmd, args, &cfg, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.search, "search", "s", "", "speed search pattern to reveal")
	cmd.Flags().StringSliceVarP(&flags.expand, "expand", "e", nil, "paths or node IDs to expand")
	cmd.Flags().IntVar(&flags.depth, "depth", 0, "expand nodes down to this depth")
	cmd.Flags().BoolVar(&flags.all, "all", false, "expand every node")
	cmd.Flags().BoolVar(&flags.counts, "counts", false, "show problem counts on files and classes")

	return cmd
}

func runTree(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *treeFlags) error {
	paths, err := absPaths(args)
	if err != nil {
		return err
	}

	sess, err := openSession(cmd, paths, cliCfg)
	if err != nil {
		return err
	}

	tree, err := buildTree(cmd, sess)
	if err != nil {
		return err
	}

	switch {
	case flags.all:
		tree.ExpandAll()
	case flags.depth > 0:
		tree.ExpandToDepth(flags.depth)
	}

	if len(paths) > 0 {
		if id, ok := nodeID(sess, paths[0]); ok {
			tree.Expand(id)
		}
	}
	for _, target := range flags.expand {
		id := target
		if !hasNodePrefix(target) {
			var ok bool
			if id, ok = nodeID(sess, filepath.Join(sess.Project.Root(), target)); !ok {
				return fmt.Errorf("%w: %q is not inside the project", ErrUsage, target)
			}
		}
		if !tree.Expand(id) {
			logging.Default().Warn("no such node", "id", id)
		}
	}

	out := cmd.OutOrStdout()
	renderer := projectview.NewRenderer(out, colorFlag(cmd))
	renderer.ShowCounts = flags.counts

	if flags.search != "" {
		renderer.Pattern = flags.search
		if tree.Reveal(flags.search) == 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "nothing matches %q\n", flags.search)
		}
	}

	return renderer.Render(out, tree)
}

// buildTree inspects the whole project and builds its view.
func buildTree(cmd *cobra.Command, sess *session.Session) (*projectview.Tree, error) {
	result, err := sess.Check(commandContext(cmd))
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(result.Files))
	problems := make(map[string][]inspect.Problem, len(result.Files))
	for _, f := range result.Files {
		files = append(files, f.Path)
		if f.Result != nil && f.Result.DocumentResult != nil {
			problems[f.Path] = f.Result.Problems
		}
	}

	root := sess.Project.Root()
	entries := projectview.Entries(sess.Project.Scope, files, sess.Project.Index(), problems)
	return projectview.New(filepath.Base(root), entries, nil), nil
}

// nodeID maps a path inside the project to the ID of its directory or file
// node.
func nodeID(sess *session.Session, path string) (string, bool) {
	rel, ok := sess.Project.Rel(path)
	if !ok || rel == "." || rel == "" {
		return "", false
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return "d:" + filepath.ToSlash(rel), true
	}
	return "f:" + filepath.ToSlash(rel), true
}

func hasNodePrefix(s string) bool {
	for _, p := range []string{"d:", "f:", "p:", "c:"} {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
