package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/orayew2002/rast-attendance/attendance"
	"github.com/orayew2002/rast-attendance/domain"
	"github.com/orayew2002/rast-attendance/excel"
	"github.com/orayew2002/rast-attendance/processor"
	"github.com/orayew2002/rast-attendance/report"
	"github.com/orayew2002/rast-attendance/sample"
)

func main() {
	input := flag.String("input", "", "path to the attendance export (.xlsx, .xls or .csv)")
	outDir := flag.String("out-dir", ".", "directory for the generated reports")
	csvPath := flag.String("csv", "", "optional path for the flat ledger CSV")
	demo := flag.String("demo", "", "write a generated sample export to this path and exit")
	employees := flag.Int("employees", 10, "employees in the sample export")
	days := flag.Int("days", 31, "days per employee in the sample export")
	flag.Parse()

	if *demo != "" {
		if err := writeDemo(*demo, *employees, *days); err != nil {
			fmt.Fprintf(os.Stderr, "demo: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("done:", *demo)
		return
	}

	if *input == "" {
		fmt.Fprintln(os.Stderr, "missing -input")
		flag.Usage()
		os.Exit(1)
	}

	// Step 1: decode the export and fold every sheet into the ledger.
	result, err := processor.New(attendance.New(), nil).ProcessFile(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "process: %v\n", err)
		os.Exit(1)
	}

	// Step 2: write the detailed and summary workbooks.
	paths, err := writeReports(result.Groups, *outDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reports: %v\n", err)
		os.Exit(1)
	}

	// Step 3: optional flat ledger.
	if *csvPath != "" {
		data, err := report.LedgerCSV(result.Groups)
		if err == nil {
			err = os.WriteFile(*csvPath, data, 0644)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "csv: %v\n", err)
			os.Exit(1)
		}
		paths = append(paths, *csvPath)
	}

	fmt.Printf("employees: %d, records: %d, total hours: %s\n",
		result.Stats.TotalEmployees, result.Stats.TotalRecords, result.Stats.TotalHours.StringFixed(2))
	for _, p := range paths {
		fmt.Println("done:", p)
	}
}

func writeReports(groups []domain.EmployeeGroup, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	var paths []string
	for _, wb := range []*excel.OutputWorkbook{report.BuildDetailed(groups), report.BuildSummary(groups)} {
		path, err := excel.WriteFile(wb, dir)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeDemo(path string, employees, days int) error {
	data, err := sample.GenerateBytes(sample.Options{Employees: employees, Days: days})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
