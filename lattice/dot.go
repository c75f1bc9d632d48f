package lattice

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/hupe1980/gsfs/featureset"
)

// WriteDOT writes the graph in Graphviz DOT format. Node labels are the
// feature names; withStats appends T, mean score and variance.
func (x *Index) WriteDOT(w io.Writer, u *featureset.Universe, withStats bool) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "digraph gsfs {")
	for _, n := range x.nodes {
		label := n.Label(u)
		if withStats {
			label += fmt.Sprintf("\nT: %d\navg score: %.4f\nvar: %.4f", n.visits, n.Mean(), n.Variance())
		}
		fmt.Fprintf(bw, "  n%d [label=%s];\n", n.id, strconv.Quote(label))
	}
	for _, n := range x.nodes {
		for _, cid := range n.children {
			fmt.Fprintf(bw, "  n%d -> n%d;\n", n.id, cid)
		}
	}
	fmt.Fprintln(bw, "}")

	return bw.Flush()
}
