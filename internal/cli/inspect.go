package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/sanity-io/litter"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stltree/pkg/pipeline"
	"github.com/matzehuels/stltree/pkg/stl"
)

// dumper prints trees as Go-like literals.
var dumper = litter.Options{
	Compact:           false,
	StripPackageNames: true,
	HidePrivateFields: true,
	Separator:         " ",
}

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Show a decoded formula tree and a summary",
		Long: `Decode a formula tree and print it with its size, depth and the operators
it uses. Unsupported operators are listed so a tree can be checked before
rendering. Reads stdin when the file is "-" or omitted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "-"
			if len(args) == 1 {
				input = args[0]
			}
			tree, err := c.readTree(input)
			if err != nil {
				return err
			}
			summary := pipeline.Summarize(tree)
			if asJSON {
				return c.writeSummaryJSON(summary)
			}
			c.writeInspect(tree, summary)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print only the summary as JSON")
	return cmd
}

func (c *CLI) writeInspect(tree stl.Node, s pipeline.Summary) {
	fmt.Fprintln(c.out, dumper.Sdump(tree))
	fmt.Fprintln(c.out)
	fprintKeyValue(c.out, "size", strconv.Itoa(s.Size))
	fprintKeyValue(c.out, "depth", strconv.Itoa(s.Depth))
	fprintKeyValue(c.out, "operators", strings.Join(s.Kinds, ", "))
	if s.Renderable() {
		fprintKeyValue(c.out, "renderable", "yes")
	} else {
		fprintKeyValue(c.out, "renderable", "no, unsupported: "+strings.Join(s.Unsupported, ", "))
	}
}

func (c *CLI) writeSummaryJSON(s pipeline.Summary) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		pipeline.Summary
		Renderable bool `json:"renderable"`
	}{s, s.Renderable()})
}
