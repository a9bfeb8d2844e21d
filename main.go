package main

import (
	"os"

	"github.com/storefront-kit/facetq/cmd"
	"github.com/storefront-kit/facetq/internal/colors"
	"github.com/storefront-kit/facetq/internal/errors"
)

func main() {
	os.Exit(run(cmd.Execute))
}

// run executes the CLI and maps its error to an exit code.
func run(execute func() error) int {
	colors.Structured("startup", "main", "started", nil, nil)
	if err := execute(); err != nil {
		errors.Report(errors.NewDefaultCLIHandler(), "", err)
		colors.Structured("startup", "main", "failed", err, nil)
		return 1
	}
	colors.Structured("startup", "main", "completed", nil, nil)
	return 0
}
