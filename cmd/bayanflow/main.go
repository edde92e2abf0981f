package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bayanflow/bayan-flow/internal/algorithms"
	"github.com/bayanflow/bayan-flow/internal/algorithms/pathfinding"
	"github.com/bayanflow/bayan-flow/internal/algorithms/sorting"
	"github.com/bayanflow/bayan-flow/internal/preferences"
	"github.com/bayanflow/bayan-flow/internal/tui"
)

//nolint:gochecknoglobals // Cobra requires package-level vars for flag bindings in current structure.
var (
	// Version metadata populated at build time via -ldflags.
	releaseVersion = "dev"
	commit         = "none"
	date           = "unknown"

	// Used for flags.
	configFile   string
	settingsFile string
	localesDir   string
	soundOut     string
	language     string
	verbose      bool
	jsonOutput   bool
	mode         string
	speed        string
	arraySize    int
	arrayInput   string
	preset       string
	gridRows     int
	gridCols     int
	wallDensity  float64
	seed         uint64

	rootCmd = &cobra.Command{
		Use:   "bayanflow [ALGORITHM]",
		Short: "Step through sorting and pathfinding algorithms in your terminal.",
		Long:  `Bayan Flow visualizes sorting and pathfinding algorithms one step at a time. Run it without arguments to pick an algorithm interactively, or name one to open it directly. Swipe with the mouse or use the arrow keys to step, and press f for flow mode.`,
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			env, err := newEnv(cmd)
			if err != nil {
				logrus.Fatal(err)
			}
			defer env.Close()

			opts := env.tuiOptions()
			if len(args) == 1 {
				opts.Algorithm = args[0]
			}
			if err := tui.Run(cmd.Context(), opts); err != nil {
				logrus.Fatalf("TUI mode failed: %v", err)
			}
		},
	}
)

//nolint:gochecknoinits // Cobra command wiring performed in init in current structure.
func init() {
	// Route logs to stderr to avoid polluting stdout, especially for --json output.
	logrus.SetOutput(os.Stderr)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable detailed logging output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", defaultConfigPath, "Path to the YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&settingsFile, "settings", "", "Path to the settings file (overrides settings_path in the config)")
	rootCmd.PersistentFlags().StringVar(&localesDir, "locales-dir", "", "Optional: directory of extra <lang>.yaml catalogs to merge over the built-in ones")
	rootCmd.PersistentFlags().StringVar(&soundOut, "sound-out", "", "Optional: write every audio cue to this WAV file and enable sound")
	rootCmd.PersistentFlags().StringVar(&language, "lang", "", "Interface language as a BCP 47 tag (en, fr, ar)")
	rootCmd.PersistentFlags().StringVar(&speed, "speed", "", "Autoplay speed: slow, medium, fast or veryFast")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "Seed for generated data; 0 picks a random seed")
	rootCmd.PersistentFlags().IntVar(&arraySize, "size", 0, "Number of elements in generated arrays")
	rootCmd.PersistentFlags().IntVar(&gridRows, "rows", 0, "Grid rows for pathfinding")
	rootCmd.PersistentFlags().IntVar(&gridCols, "cols", 0, "Grid columns for pathfinding")
	rootCmd.PersistentFlags().Float64Var(&wallDensity, "walls", 0, "Fraction of grid cells turned into walls, in [0, 1)")
	rootCmd.Flags().StringVar(&mode, "mode", "", "Playback mode: manual or autoplay")

	for _, c := range []*cobra.Command{sortCmd, pathCmd, algorithmsCmd} {
		c.Flags().BoolVar(&jsonOutput, "json", false, "Output steps in JSON format instead of text")
	}
	sortCmd.Flags().StringVar(&arrayInput, "input", "", "Comma-separated array to sort instead of generated data")
	sortCmd.Flags().StringVar(&preset, "preset", "random", "Generated data shape: random, nearly-sorted or reversed")

	rootCmd.AddCommand(sortCmd)
	rootCmd.AddCommand(pathCmd)
	rootCmd.AddCommand(algorithmsCmd)

	prefsCmd.AddCommand(prefsSetCmd)
	prefsCmd.AddCommand(prefsResetCmd)
	rootCmd.AddCommand(prefsCmd)

	// Built-in version flag: set version string and a custom template.
	rootCmd.Version = releaseVersion
	rootCmd.Annotations = map[string]string{"commit": commit, "date": date}
	rootCmd.SetVersionTemplate("{{printf \"%s %s\\ncommit: %s\\ndate: %s\\n\" .DisplayName .Version (index .Annotations \"commit\") (index .Annotations \"date\")}}")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func main() {
	Execute()
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var sortCmd = &cobra.Command{
	Use:   "sort ALGORITHM",
	Short: "Print the steps of a sorting algorithm",
	Long:  "Generate an array (or use --input) and print every step the sorting algorithm takes, with its localized description.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		env, err := newEnv(cmd)
		if err != nil {
			logrus.Fatal(err)
		}
		defer env.Close()

		info, err := algorithms.Get(args[0])
		if err != nil {
			logrus.Fatal(err)
		}
		if info.Kind != algorithms.KindSorting {
			logrus.Fatalf("%s is a %s algorithm; use the path command", info.ID, info.Kind)
		}

		arr, err := env.array()
		if err != nil {
			logrus.Fatal(err)
		}
		frames, err := algorithms.Run(info.ID, algorithms.Input{Array: arr})
		if err != nil {
			logrus.Fatal(err)
		}
		env.replaySound(frames)

		if jsonOutput {
			steps := make([]sorting.Step, len(frames))
			for i, f := range frames {
				steps[i] = *f.Sort
			}
			printJSON(stepDump{Algorithm: info, Input: arr, Steps: steps})
			return
		}
		for i, f := range frames {
			fmt.Fprintf(os.Stdout, "%4d  %v  %s\n", i+1, f.Sort.Array, env.tr.Render(f.Description()))
		}
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var pathCmd = &cobra.Command{
	Use:   "path ALGORITHM",
	Short: "Print the steps of a pathfinding algorithm",
	Long:  "Generate a grid with random start, end and walls and print every step the search takes, followed by the final grid.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		env, err := newEnv(cmd)
		if err != nil {
			logrus.Fatal(err)
		}
		defer env.Close()

		info, err := algorithms.Get(args[0])
		if err != nil {
			logrus.Fatal(err)
		}
		if info.Kind != algorithms.KindPathfinding {
			logrus.Fatalf("%s is a %s algorithm; use the sort command", info.ID, info.Kind)
		}

		in, err := env.grid()
		if err != nil {
			logrus.Fatal(err)
		}
		frames, err := algorithms.Run(info.ID, in)
		if err != nil {
			logrus.Fatal(err)
		}
		env.replaySound(frames)

		if jsonOutput {
			steps := make([]pathfinding.Step, len(frames))
			for i, f := range frames {
				steps[i] = *f.Path
			}
			printJSON(stepDump{Algorithm: info, Rows: in.Grid.Rows, Cols: in.Grid.Cols, Start: &in.Start, End: &in.End, Steps: steps})
			return
		}
		for i, f := range frames {
			fmt.Fprintf(os.Stdout, "%4d  %s\n", i+1, env.tr.Render(f.Description()))
		}
		fmt.Fprintln(os.Stdout)
		fmt.Fprint(os.Stdout, drawGrid(frames[len(frames)-1].Path.States))
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var algorithmsCmd = &cobra.Command{
	Use:   "algorithms",
	Short: "List the available algorithms and their complexity",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		all := algorithms.All()
		if jsonOutput {
			printJSON(all)
			return
		}
		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tKIND\tNAME\tBEST\tAVERAGE\tWORST\tSPACE")
		for _, a := range all {
			c := a.Complexity
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", a.ID, a.Kind, a.Name, c.Best, c.Average, c.Worst, c.Space)
		}
		if err := tw.Flush(); err != nil {
			logrus.Fatal(err)
		}
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure
var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Manage the persisted preferences",
	Long:  "View, set, or reset the stored preferences: " + strings.Join(preferences.Keys(), ", ") + ".",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		m, err := preferences.NewManager(resolveSettingsPath())
		if err != nil {
			logrus.Fatal(err)
		}
		m.View(os.Stdout)
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var prefsSetCmd = &cobra.Command{
	Use:   "set [KEY] [VALUE]",
	Short: "Set one stored preference",
	Args:  cobra.ExactArgs(2), //nolint:mnd // 'set' requires exactly a key and a value by CLI contract
	Run: func(cmd *cobra.Command, args []string) {
		m, err := preferences.NewManager(resolveSettingsPath())
		if err != nil {
			logrus.Fatal(err)
		}
		if err := m.Set(args[0], args[1]); err != nil {
			logrus.Fatal(err)
		}
		fmt.Fprintf(os.Stdout, "%s set to %s\n", args[0], args[1])
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var prefsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset every stored preference",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		m, err := preferences.NewManager(resolveSettingsPath())
		if err != nil {
			logrus.Fatal(err)
		}
		if err := m.Reset(); err != nil {
			logrus.Fatal(err)
		}
		fmt.Fprintln(os.Stdout, "Preferences reset")
	},
}

// stepDump is the --json shape of the sort and path commands.
type stepDump struct {
	Algorithm algorithms.Info       `json:"algorithm"`
	Input     []int                 `json:"input,omitempty"`
	Rows      int                   `json:"rows,omitempty"`
	Cols      int                   `json:"cols,omitempty"`
	Start     *pathfinding.Position `json:"start,omitempty"`
	End       *pathfinding.Position `json:"end,omitempty"`
	Steps     any                   `json:"steps"`
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		logrus.Fatal(err)
	}
}

// parseArray reads a comma-separated list of integers.
func parseArray(s string) ([]int, error) {
	fields := strings.Split(s, ",")
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid array element %q: %w", f, err)
		}
		out = append(out, v)
	}
	return out, nil
}

//nolint:gochecknoglobals // fixed glyph table.
var cellGlyphs = map[pathfinding.CellState]byte{
	pathfinding.Default: '.',
	pathfinding.Open:    'o',
	pathfinding.Closed:  'x',
	pathfinding.Path:    '*',
	pathfinding.Start:   'S',
	pathfinding.End:     'E',
	pathfinding.Wall:    '#',
}

func drawGrid(states [][]pathfinding.CellState) string {
	var b strings.Builder
	for _, row := range states {
		for _, st := range row {
			b.WriteByte(cellGlyphs[st])
		}
		b.WriteByte('\n')
	}
	return b.String()
}
