// Command app is the demo harness of the parallel Voronoi builder: an HTTP
// page with the chart, a batch build over stdin and a self check.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/0x0FACED/go-fortune-parallel/pkg/config"
)

// loadFunc откладывает чтение конфига до запуска команды, когда флаги уже разобраны
type loadFunc func() (*config.Config, error)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "voronoi",
		Short: "Parallel Fortune Voronoi builder",
		Long: `Builds Voronoi diagrams by sweeping chunks of sites in parallel
and merging the partial diagrams pairwise.

Commands:
  serve     HTTP page with the diagram chart and /metrics
  build     build a diagram from stdin or random sites and print a summary
  check     compare parallel and single chunk builds on random sites`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to voronoi.yaml")

	load := func() (*config.Config, error) {
		return config.LoadConfig(configPath)
	}

	rootCmd.AddCommand(newServeCommand(load))
	rootCmd.AddCommand(newBuildCommand(load))
	rootCmd.AddCommand(newCheckCommand(load))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
