package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/clusterkit/mst"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type output struct {
	Edges                   []mst.Edge `json:"edges"`
	CoreDistances           []float64  `json:"coreDistances,omitempty"`
	DendrogramParents       []int      `json:"dendrogramParents,omitempty"`
	DendrogramParentHeights []float64  `json:"dendrogramParentHeights,omitempty"`
	ChainOffsets            []int      `json:"chainOffsets,omitempty"`
	ChainLevels             []int      `json:"chainLevels,omitempty"`
}

func newRootCmd() *cobra.Command {
	var (
		k          int
		dendrogram bool
		workers    int
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "mst [file]",
		Short: "Compute a minimum spanning tree over points read from CSV",
		Long: `Reads one point per CSV row (all rows must have the same number of
columns), computes the MST under the Euclidean metric (default) or the
mutual-reachability metric (--k > 1), and writes the result as JSON.

With no file argument, or with "-", points are read from stdin.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			points, err := readPoints(in)
			if err != nil {
				return err
			}

			cfg := mst.DefaultConfig()
			cfg.K = k
			cfg.Workers = workers
			if dendrogram {
				cfg.Mode = mst.ModeDendrogram
			}
			if verbose {
				logger, err := zap.NewDevelopment()
				if err != nil {
					return err
				}
				defer logger.Sync()
				cfg.Logger = logger
			}

			res, err := mst.Compute(points, cfg)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(output{
				Edges:                   res.Edges,
				CoreDistances:           res.CoreDistances,
				DendrogramParents:       res.DendrogramParents,
				DendrogramParentHeights: res.DendrogramParentHeights,
				ChainOffsets:            res.ChainOffsets,
				ChainLevels:             res.ChainLevels,
			})
		},
	}

	cmd.Flags().IntVar(&k, "k", 1, "neighbor count; 1 = Euclidean, >1 = mutual reachability")
	cmd.Flags().BoolVar(&dendrogram, "dendrogram", false, "also build the single-linkage dendrogram")
	cmd.Flags().IntVar(&workers, "workers", 0, "goroutines for parallel stages (0 = all CPUs)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log per-round progress to stderr")

	return cmd
}

// readPoints parses one point per CSV row.
func readPoints(in io.Reader) ([][]float64, error) {
	r := csv.NewReader(in)
	var points [][]float64
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make([]float64, len(rec))
		for i, field := range rec {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d, column %d: %w", len(points)+1, i+1, err)
			}
			row[i] = v
		}
		points = append(points, row)
	}
	return points, nil
}
