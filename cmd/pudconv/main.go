package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/guffzilla/pudconv/internal/model"
	"github.com/guffzilla/pudconv/pkg/pudconv"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var log = logrus.New()

func main() {
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log.SetOutput(os.Stderr)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pudconv",
	Short: "Decode tile-based map files and re-encode them compactly",
	Long: `pudconv is a tool for working with PUD-style map files.

It decodes the tagged-chunk container into an in-memory model and
re-encodes it as a structured JSON document, a compressed byte stream,
or a compact fixed-layout binary stream.`,
}

func init() {
	rootCmd.AddCommand(jsonCmd)
	rootCmd.AddCommand(compressCmd)
	rootCmd.AddCommand(packCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log decode diagnostics")
}

// decodeFile reads and decodes a map file, logging diagnostics.
func decodeFile(cmd *cobra.Command, path string) (*model.MapModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input file: %w", err)
	}

	m, diags, err := pudconv.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode map: %w", err)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		for _, d := range diags {
			log.WithField("file", path).Warn(d)
		}
	}
	return m, nil
}

// writeOutput writes data to the -o target, or stdout when unset.
func writeOutput(cmd *cobra.Command, data []byte) error {
	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}
	return nil
}

// json command
var jsonCmd = &cobra.Command{
	Use:   "json <input.pud>",
	Short: "Render the structured JSON projection",
	Long: `Decode a map file and render the structured-text projection:
dimensions, tileset, terrain runs, markers and terrain statistics.`,
	Args: cobra.ExactArgs(1),
	RunE: runJSON,
}

func init() {
	jsonCmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
}

func runJSON(cmd *cobra.Command, args []string) error {
	m, err := decodeFile(cmd, args[0])
	if err != nil {
		return err
	}

	doc, err := pudconv.ProjectJSON(m)
	if err != nil {
		return err
	}
	return writeOutput(cmd, doc)
}

// compress command
var compressCmd = &cobra.Command{
	Use:   "compress <input.pud>",
	Short: "Render the compressed projection",
	Long: `Decode a map file, render the structured-text projection and
compress it with a general-purpose codec. The size report is logged.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompress,
}

func init() {
	compressCmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
	compressCmd.Flags().String("codec", "gzip", "Compression codec: gzip, lz4, xz")
}

func runCompress(cmd *cobra.Command, args []string) error {
	m, err := decodeFile(cmd, args[0])
	if err != nil {
		return err
	}

	codec, _ := cmd.Flags().GetString("codec")
	packed, report, err := pudconv.ProjectCompressed(m, pudconv.Codec(codec))
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"codec":           codec,
		"original_size":   report.OriginalSize,
		"compressed_size": report.EncodedSize,
		"ratio":           fmt.Sprintf("%.1f%%", report.Ratio),
	}).Info("compressed projection written")

	return writeOutput(cmd, packed)
}

// pack command
var packCmd = &cobra.Command{
	Use:   "pack <input.pud>",
	Short: "Render the compact binary projection",
	Long: `Decode a map file and render the fixed-layout little-endian
binary projection. The size report against the JSON projection is logged.`,
	Args: cobra.ExactArgs(1),
	RunE: runPack,
}

func init() {
	packCmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
}

func runPack(cmd *cobra.Command, args []string) error {
	m, err := decodeFile(cmd, args[0])
	if err != nil {
		return err
	}

	packed, report, err := pudconv.ProjectBinary(m)
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"json_size":   report.OriginalSize,
		"binary_size": report.EncodedSize,
		"ratio":       fmt.Sprintf("%.1f%%", report.Ratio),
	}).Info("binary projection written")

	return writeOutput(cmd, packed)
}

// info command
var infoCmd = &cobra.Command{
	Use:   "info <input.pud>",
	Short: "Display map file information",
	Long: `Display metadata and statistics about a map file.

Shows dimensions, tileset, player count, and unit/resource summaries.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	infoCmd.Flags().Bool("brief", false, "Show only summary")
}

func runInfo(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	brief, _ := cmd.Flags().GetBool("brief")

	stat, err := os.Stat(inputPath)
	if err != nil {
		return fmt.Errorf("stat input file: %w", err)
	}

	m, err := decodeFile(cmd, inputPath)
	if err != nil {
		return err
	}

	return outputInfoText(inputPath, m, stat.Size(), brief)
}

func outputInfoText(path string, m *model.MapModel, fileSize int64, brief bool) error {
	runs, markers, stats := pudconv.Derive(m)

	if brief {
		fmt.Printf("%s: %dx%d tileset=%s players=%d units=%d resources=%d runs=%d\n",
			path, m.Width, m.Height, model.TilesetName(m.Tileset),
			m.MaxPlayers, len(m.Units), len(m.Resources), len(runs))
		return nil
	}

	fmt.Printf("Map File: %s\n", path)
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println()

	fmt.Println("Header:")
	if m.Name != "" {
		fmt.Printf("  Name:           %s\n", m.Name)
	}
	if m.Description != "" {
		fmt.Printf("  Description:    %s\n", m.Description)
	}
	fmt.Printf("  Dimensions:     %dx%d tiles\n", m.Width, m.Height)
	fmt.Printf("  Tileset:        %d (%s)\n", m.Tileset, model.TilesetName(m.Tileset))
	fmt.Printf("  Max Players:    %d\n", m.MaxPlayers)
	fmt.Println()

	fmt.Println("Contents:")
	fmt.Printf("  Units:          %d\n", len(m.Units))
	fmt.Printf("  Resources:      %d\n", len(m.Resources))
	fmt.Printf("  Terrain Runs:   %d (from %d tiles)\n", len(runs), len(m.Tiles))
	fmt.Printf("  Markers:        %d\n", len(markers))
	fmt.Println()

	fmt.Println("Terrain:")
	fmt.Printf("  Water:          %5.1f%%\n", stats.Water)
	fmt.Printf("  Forest:         %5.1f%%\n", stats.Forest)
	fmt.Printf("  Grass:          %5.1f%%\n", stats.Grass)
	fmt.Printf("  Rock:           %5.1f%%\n", stats.Rock)
	fmt.Printf("  Shore:          %5.1f%%\n", stats.Shore)
	fmt.Printf("  Dirt:           %5.1f%%\n", stats.Dirt)
	fmt.Printf("  Coverage:       %5.1f%%\n", stats.Coverage)
	fmt.Println()

	fmt.Printf("File Size:        %s (%d bytes)\n", formatBytes(fileSize), fileSize)

	if len(markers) > 0 && len(markers) <= 20 {
		fmt.Println()
		fmt.Println("Markers:")
		for _, mk := range markers {
			fmt.Printf("  %-9s (%3d,%3d) %s", mk.Kind, mk.X, mk.Y, mk.Label)
			if mk.Amount > 0 {
				fmt.Printf(" [%d]", mk.Amount)
			}
			fmt.Println()
		}
	}

	return nil
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pudconv version %s\n", version)
		fmt.Printf("commit: %s\n", commit)
		fmt.Printf("built: %s\n", date)
	},
}
