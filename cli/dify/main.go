package main

import (
	"fmt"
	"os"

	difycmder "github.com/papercomputeco/dify/cmd/dify"
	"github.com/papercomputeco/dify/pkg/cliui"
)

func main() {
	cmd := difycmder.NewDifyCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "  %s %v\n", cliui.FailMark, err)
		os.Exit(1)
	}
}
