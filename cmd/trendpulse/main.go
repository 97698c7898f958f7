package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "trendpulse",
		Short: "Aggregate and rank trending content from social, video, and web origins",
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")

	root.AddCommand(fetchCmd())
	root.AddCommand(trendingCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(runCmd())

	return root
}

func fetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Fetch all enabled origins and store scored candidates",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch()
		},
	}
}

func trendingCmd() *cobra.Command {
	var (
		jsonOutput bool
		minScore   float64
		limit      int
		categories []string
	)

	cmd := &cobra.Command{
		Use:   "trending",
		Short: "Show the current trending ranking",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrending(jsonOutput, minScore, limit, categories)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	cmd.Flags().Float64Var(&minScore, "min-score", -1, "minimum overall score (default: from config)")
	cmd.Flags().IntVar(&limit, "limit", 0, "max results (default: from config)")
	cmd.Flags().StringSliceVar(&categories, "category", nil, "filter to categories (e.g., technology,science)")
	return cmd
}

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "server port (default: from config)")
	return cmd
}

func runCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start daemon with scheduler and HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "server port (default: from config)")
	return cmd
}
