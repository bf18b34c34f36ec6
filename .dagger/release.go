package main

import (
	"context"
	"fmt"
	"path"
	"time"

	"dagger/dify/internal/dagger"
)

// bucketPrefix keeps dify artifacts apart from anything else in the bucket.
const bucketPrefix = "dify"

// Package flattens the Build output into one binary per platform named
// dify_<version>_<os>_<arch>[.exe] and adds a checksums.txt over them.
func (d *Dify) Package(
	ctx context.Context,

	// Version string of build
	version string,

	// Git commit SHA of build
	commit string,
) *dagger.Directory {
	builds := d.BuildRelease(ctx, version, commit)

	dist := dag.Directory()
	for _, goos := range releaseOSes {
		for _, goarch := range releaseArches {
			bin := "dify"
			if goos == "windows" {
				bin += ".exe"
			}
			name := fmt.Sprintf("dify_%s_%s_%s", version, goos, goarch)
			if goos == "windows" {
				name += ".exe"
			}
			dist = dist.WithFile(name, builds.File(path.Join(goos, goarch, bin)))
		}
	}

	return dag.Container().
		From("alpine:3.20").
		WithDirectory("/dist", dist).
		WithWorkdir("/dist").
		WithExec([]string{"sh", "-c", "sha256sum dify_* > checksums.txt"}).
		Directory("/dist")
}

type bucket struct {
	endpoint        *dagger.Secret
	name            *dagger.Secret
	accessKeyID     *dagger.Secret
	secretAccessKey *dagger.Secret
}

// sync copies artifacts to s3://<bucket>/dify/<prefix> on an S3-compatible
// endpoint.
func (b *bucket) sync(ctx context.Context, artifacts *dagger.Directory, prefix string) error {
	name, err := b.name.Plaintext(ctx)
	if err != nil {
		return fmt.Errorf("reading bucket name: %w", err)
	}
	endpoint, err := b.endpoint.Plaintext(ctx)
	if err != nil {
		return fmt.Errorf("reading bucket endpoint: %w", err)
	}

	destination := "s3://" + path.Join(name, bucketPrefix, prefix)

	_, err = dag.Container().
		From("amazon/aws-cli:latest").
		WithSecretVariable("AWS_ACCESS_KEY_ID", b.accessKeyID).
		WithSecretVariable("AWS_SECRET_ACCESS_KEY", b.secretAccessKey).
		WithEnvVariable("AWS_DEFAULT_REGION", "auto").
		WithDirectory("/dist", artifacts).
		WithWorkdir("/dist").
		WithExec([]string{"aws", "s3", "sync", ".", destination, "--delete", "--endpoint-url", endpoint}).
		Sync(ctx)
	if err != nil {
		return fmt.Errorf("uploading to %s: %w", destination, err)
	}
	return nil
}

// Release packages a tagged version and publishes it under both the version
// and "latest".
func (d *Dify) Release(
	ctx context.Context,

	// Version tag (e.g., "v0.3.0")
	version string,

	// Git commit SHA
	commit string,

	endpoint *dagger.Secret,
	bucketName *dagger.Secret,
	accessKeyID *dagger.Secret,
	secretAccessKey *dagger.Secret,
) (*dagger.Directory, error) {
	dist := d.Package(ctx, version, commit)
	b := &bucket{endpoint: endpoint, name: bucketName, accessKeyID: accessKeyID, secretAccessKey: secretAccessKey}

	for _, prefix := range []string{version, "latest"} {
		if err := b.sync(ctx, dist, prefix); err != nil {
			return dist, err
		}
	}
	return dist, nil
}

// Nightly packages the given commit as nightly-<date> and publishes it under
// "nightly".
func (d *Dify) Nightly(
	ctx context.Context,

	// Git commit SHA
	commit string,

	endpoint *dagger.Secret,
	bucketName *dagger.Secret,
	accessKeyID *dagger.Secret,
	secretAccessKey *dagger.Secret,
) (*dagger.Directory, error) {
	version := "nightly-" + time.Now().UTC().Format("20060102")
	dist := d.Package(ctx, version, commit)
	b := &bucket{endpoint: endpoint, name: bucketName, accessKeyID: accessKeyID, secretAccessKey: secretAccessKey}

	return dist, b.sync(ctx, dist, "nightly")
}
