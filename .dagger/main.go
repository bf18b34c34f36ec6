// Dify CI/CD
//
// Package main provides reproducible builds and tests locally and in GitHub actions.
package main

import (
	"context"

	"dagger/dify/internal/dagger"
)

// Dify is the main module for the dify CI/CD pipeline
type Dify struct {
	// Project source directory
	//
	// +private
	Source *dagger.Directory
}

// New creates a new Dify CI/CD module instance
func New(
	// Project source directory.
	//
	// +defaultPath="/"
	// +ignore=[".git", ".direnv", ".devenv", ".dify", "build", "tmp"]
	source *dagger.Directory,
) *Dify {
	return &Dify{
		Source: source,
	}
}

// goContainer returns a Go container with the module caches and the project
// source mounted. The client is pure Go so cgo stays off.
func (d *Dify) goContainer() *dagger.Container {
	return dag.Container().
		From("golang:1.25-bookworm").
		WithEnvVariable("CGO_ENABLED", "0").
		WithEnvVariable("PATH", "/go/bin:$PATH", dagger.ContainerWithEnvVariableOpts{Expand: true}).
		WithMountedCache("/go/pkg/mod", dag.CacheVolume("go-mod")).
		WithMountedCache("/root/.cache/go-build", dag.CacheVolume("go-build")).
		WithWorkdir("/src").
		WithDirectory("/src", d.Source)
}

// Test runs the unit tests via "go test"
func (d *Dify) Test(ctx context.Context) (string, error) {
	return d.goContainer().
		WithExec([]string{"go", "test", "-v", "./..."}).
		Stdout(ctx)
}

// Vet runs "go vet" over the module
//
// +check
func (d *Dify) Vet(ctx context.Context) (string, error) {
	return d.goContainer().
		WithExec([]string{"go", "vet", "./..."}).
		Stdout(ctx)
}
