package main

import (
	"context"
	"errors"
	"fmt"

	"dagger/dify/internal/dagger"
)

// CheckGoModTidy fails when "go mod tidy" would change go.mod or go.sum and
// prints the pending diff.
//
// +check
func (d *Dify) CheckGoModTidy(ctx context.Context) (string, error) {
	_, err := d.goContainer().
		WithExec([]string{"go", "mod", "tidy", "-diff"}).
		Stdout(ctx)

	var e *dagger.ExecError
	if errors.As(err, &e) {
		return "", fmt.Errorf("go.mod or go.sum need tidying:\n\n%s", e.Stdout)
	} else if err != nil {
		return "", fmt.Errorf("running go mod tidy: %w", err)
	}

	return "go.mod and go.sum are tidy", nil
}

// CheckGoModVerify checks that downloaded modules match go.sum.
//
// +check
func (d *Dify) CheckGoModVerify(ctx context.Context) (string, error) {
	return d.goContainer().
		WithExec([]string{"go", "mod", "verify"}).
		Stdout(ctx)
}
