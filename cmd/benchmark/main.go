package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/limaJavier/itc2019/pkg/evaluation"
	"github.com/limaJavier/itc2019/pkg/model"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

const solutionSuffix = ".solution"

var extensions = []string{".json", ".xml"}

// TestCase is an instance file together with the solution to evaluate against it
type TestCase struct {
	Instance string
	Solution string
}

type BenchmarkResult struct {
	Test        string `csv:"Test"`
	Workers     int    `csv:"Workers"`
	Classes     int    `csv:"Classes"`
	Hard        int    `csv:"Hard"`
	Soft        int    `csv:"Soft"`
	Feasible    bool   `csv:"Feasible"`
	Penalty     int    `csv:"Penalty"`
	Load        int64  `csv:"Load(ms)"`
	Evaluation  int64  `csv:"Evaluation(ms)"`
	Repetitions int    `csv:"Repetitions"`
}

func main() {
	var directory, outFile string
	var workers []int
	var repetitions int

	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Time the evaluation of every solution of a directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			if repetitions < 1 {
				return fmt.Errorf("repetitions must be positive: %v", repetitions)
			}

			entries, err := os.ReadDir(directory)
			if err != nil {
				return fmt.Errorf("cannot read directory: %w", err)
			}
			tests := pairFiles(lo.Map(entries, func(entry os.DirEntry, _ int) string { return entry.Name() }))

			results := make([]BenchmarkResult, 0, len(tests)*len(workers))
			for _, test := range tests {
				for _, worker := range workers {
					fmt.Printf("Benchmarking test \"%v\" with %v workers\n", test.Instance, worker)
					results = append(results, measure(directory, test, worker, repetitions))
				}
			}
			return toCsv(outFile, results)
		},
	}

	cmd.Flags().StringVar(&directory, "dir", "../../test/instances/", "Directory holding instances and their solutions")
	cmd.Flags().StringVar(&outFile, "out", "benchmark_results.csv", "Path to the CSV file where results will be written")
	cmd.Flags().IntSliceVar(&workers, "workers", []int{1, 2, 4, 8}, "Worker counts to benchmark")
	cmd.Flags().IntVar(&repetitions, "repetitions", 5, "Evaluations per measure, the average is reported")

	if err := cmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

// pairFiles matches every instance "name.json" or "name.xml" with its solution "name.solution.json" or
// "name.solution.xml" of the same format; instances without a solution are skipped
func pairFiles(fileNames []string) []TestCase {
	tests := lo.FilterMap(fileNames, func(name string, _ int) (TestCase, bool) {
		extension := filepath.Ext(name)
		base := strings.TrimSuffix(name, extension)
		if !slices.Contains(extensions, extension) || strings.HasSuffix(base, solutionSuffix) {
			return TestCase{}, false
		}
		solution := base + solutionSuffix + extension
		return TestCase{Instance: name, Solution: solution}, slices.Contains(fileNames, solution)
	})
	slices.SortFunc(tests, func(a, b TestCase) int { return strings.Compare(a.Instance, b.Instance) })
	return tests
}

func measure(directory string, test TestCase, workers, repetitions int) BenchmarkResult {
	start := time.Now()
	instance, err := model.LoadInstance(filepath.Join(directory, test.Instance))
	if err != nil {
		log.Fatalf("cannot parse instance file \"%v\": %v", test.Instance, err)
	}
	timetable, err := model.LoadSolution(filepath.Join(directory, test.Solution), instance)
	if err != nil {
		log.Fatalf("cannot parse solution file \"%v\": %v", test.Solution, err)
	}
	load := time.Since(start)

	evaluator := evaluation.NewEvaluator(evaluation.Config{Workers: workers, FullReport: true})
	var report evaluation.Report
	start = time.Now()
	for range repetitions {
		report, err = evaluator.Evaluate(instance, timetable)
		if err != nil {
			log.Fatalf("an error occurred during the evaluation of \"%v\": %v", test.Solution, err)
		}
	}
	elapsed := time.Since(start) / time.Duration(repetitions)

	return BenchmarkResult{
		Test:        test.Instance,
		Workers:     workers,
		Classes:     len(instance.Classes),
		Hard:        len(instance.Hard),
		Soft:        len(instance.Soft),
		Feasible:    report.Feasible,
		Penalty:     report.Score.Total,
		Load:        load.Milliseconds(),
		Evaluation:  elapsed.Milliseconds(),
		Repetitions: repetitions,
	}
}

func toCsv(outFile string, results []BenchmarkResult) error {
	file, err := os.Create(outFile)
	if err != nil {
		return fmt.Errorf("cannot create CSV file: %w", err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&results, file); err != nil {
		return fmt.Errorf("cannot write CSV file: %w", err)
	}
	return nil
}
