package main

import (
	"fmt"
	"io"
	"os"
	"path"
	"slices"

	"github.com/limaJavier/itc2019/pkg/evaluation"
	"github.com/limaJavier/itc2019/pkg/model"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var validFormats = []string{"json", "csv"}

func newRootCmd(out io.Writer, feasible *bool) *cobra.Command {
	root := &cobra.Command{
		Use:           "itc2019",
		Short:         "Evaluate timetables of the International Timetabling Competition 2019",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)

	root.AddCommand(
		newEvaluateCmd(feasible),
		newInspectCmd(),
	)
	return root
}

func newEvaluateCmd(feasible *bool) *cobra.Command {
	var instanceFile, solutionFile, configFile, format, outFile string
	var detailed bool

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Check the feasibility of a solution and compute its penalty",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Validate arguments
			if !slices.Contains(validFormats, format) {
				return fmt.Errorf("%v is not a valid format", format)
			}

			config, err := loadConfig(configFile)
			if err != nil {
				return err
			}

			// Extract input
			instance, err := model.LoadInstance(instanceFile)
			if err != nil {
				return fmt.Errorf("cannot parse instance file: %w", err)
			}
			timetable, err := model.LoadSolution(solutionFile, instance)
			if err != nil {
				return fmt.Errorf("cannot parse solution file: %w", err)
			}

			report, err := evaluation.NewEvaluator(config).Evaluate(instance, timetable)
			if err != nil {
				return fmt.Errorf("an error occurred during evaluation: %w", err)
			}
			*feasible = report.Feasible

			// Write the report into the Standard Output unless an output file is given
			writer := cmd.OutOrStdout()
			if outFile != "" {
				file, err := os.Create(outFile)
				if err != nil {
					return fmt.Errorf("cannot create output file: %w", err)
				}
				defer file.Close()
				writer = file
			}

			if format == "csv" {
				return evaluation.WriteCsv(writer, report)
			}
			return evaluation.WriteJson(writer, report, detailed)
		},
	}

	cmd.Flags().StringVar(&instanceFile, "instance", "", "Path to the instance file, JSON or XML by extension")
	cmd.Flags().StringVar(&solutionFile, "solution", "", "Path to the solution file, JSON or XML by extension")
	cmd.Flags().StringVar(&configFile, "config", "", "Path to the config file; if empty, config.json next to the executable is used when present")
	cmd.Flags().StringVar(&format, "format", "json", `Report format. Allowed values are "json" and "csv"`)
	cmd.Flags().StringVar(&outFile, "out", "", "Path to the file where the report will be written; if empty, it'll be written into the Standard Output")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "Include every constraint and conflict in the json report")
	_ = cmd.MarkFlagRequired("instance")
	_ = cmd.MarkFlagRequired("solution")

	return cmd
}

func newInspectCmd() *cobra.Command {
	var instanceFile string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Validate an instance and summarize its size",
		RunE: func(cmd *cobra.Command, args []string) error {
			instance, err := model.LoadInstance(instanceFile)
			if err != nil {
				return fmt.Errorf("cannot parse instance file: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Instance: %v\n", instance.Name)
			fmt.Fprintf(out, "Days: %v, Weeks: %v, Slots: %v\n", instance.NrDays, instance.NrWeeks, instance.SlotsPerDay)
			fmt.Fprintf(out, "Rooms: %v\n", len(instance.Rooms))
			fmt.Fprintf(out, "Courses: %v\n", len(instance.Courses))
			fmt.Fprintf(out, "Classes: %v\n", len(instance.Classes))
			fmt.Fprintf(out, "Students: %v\n", len(instance.Students))
			fmt.Fprintf(out, "Hard constraints: %v\n", len(instance.Hard))
			fmt.Fprintf(out, "Soft constraints: %v\n", len(instance.Soft))
			return nil
		},
	}

	cmd.Flags().StringVar(&instanceFile, "instance", "", "Path to the instance file, JSON or XML by extension")
	_ = cmd.MarkFlagRequired("instance")

	return cmd
}

// loadConfig reads the given config file or, if none is given, the config.json lying next to the executable. Without
// either the default config is used
func loadConfig(configFile string) (evaluation.Config, error) {
	if configFile != "" {
		return evaluation.ConfigFromJson(configFile)
	}

	execPath, err := os.Executable()
	if err != nil {
		return evaluation.Config{}, fmt.Errorf("cannot determine executable path: %w", err)
	}
	execPath = path.Dir(execPath)

	files, err := os.ReadDir(execPath)
	if err != nil {
		return evaluation.Config{}, fmt.Errorf("cannot read executable's directory: %w", err)
	}
	fileNames := lo.Map(files, func(file os.DirEntry, _ int) string { return file.Name() })
	if !slices.Contains(fileNames, "config.json") {
		return evaluation.DefaultConfig(), nil
	}
	return evaluation.ConfigFromJson(path.Join(execPath, "config.json"))
}
