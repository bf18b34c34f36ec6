package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dagger/dify/internal/dagger"
)

var (
	releaseOSes   = []string{"linux", "darwin", "windows"}
	releaseArches = []string{"amd64", "arm64"}
)

// Build cross-compiles cli/dify into <os>/<arch>/ directories
func (d *Dify) Build(
	ctx context.Context,

	// Linker flags for go build
	// +optional
	// +default="-s -w"
	ldflags string,
) *dagger.Directory {
	outputs := dag.Directory()

	golang := dag.Container().
		From("golang:1.25-alpine").
		WithEnvVariable("CGO_ENABLED", "0").
		WithMountedCache("/go/pkg/mod", dag.CacheVolume("go-mod")).
		WithMountedCache("/root/.cache/go-build", dag.CacheVolume("go-build")).
		WithDirectory("/src", d.Source).
		WithWorkdir("/src")

	for _, goos := range releaseOSes {
		for _, goarch := range releaseArches {
			path := fmt.Sprintf("%s/%s/", goos, goarch)

			build := golang.
				WithEnvVariable("GOOS", goos).
				WithEnvVariable("GOARCH", goarch).
				WithExec([]string{"go", "build", "-ldflags", ldflags, "-o", path, "./cli/dify"})

			outputs = outputs.WithDirectory(path, build.Directory(path))
		}
	}

	return outputs
}

// BuildRelease compiles versioned release binaries with embedded version info
func (d *Dify) BuildRelease(
	ctx context.Context,

	// Version string of build
	version string,

	// Git commit SHA of build
	commit string,
) *dagger.Directory {
	buildtime := time.Now().UTC().Format(time.RFC3339)

	ldflags := []string{
		"-s",
		"-w",
		fmt.Sprintf("-X 'github.com/papercomputeco/dify/pkg/utils.Version=%s'", version),
		fmt.Sprintf("-X 'github.com/papercomputeco/dify/pkg/utils.Sha=%s'", commit),
		fmt.Sprintf("-X 'github.com/papercomputeco/dify/pkg/utils.Buildtime=%s'", buildtime),
	}

	return d.Build(ctx, strings.Join(ldflags, " "))
}
