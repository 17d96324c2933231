package cargo

import (
	"bytes"
	"context"
	"os/exec"

	pkgerrors "github.com/packforge/packforge/pkg/errors"
)

// Add runs `cargo add <crate> --rename <rename>` in the current project,
// enabling the given features. rename lets consumers refer to a published
// pack by its short name (cli-pack installs as cli). An empty rename keeps
// the crate's own name.
func Add(ctx context.Context, crate, rename string, features []string) error {
	args := []string{"add", crate}
	if rename != "" {
		args = append(args, "--rename", rename)
	}
	for _, f := range features {
		args = append(args, "--features", f)
	}
	return run(ctx, "", args...)
}

// Scaffold runs cargo-generate against a local template directory,
// creating a new project named name in the current working directory.
// templatePath selects the template subdirectory inside the pack's crate.
func Scaffold(ctx context.Context, crateDir, templatePath, name string) error {
	if _, err := exec.LookPath("cargo-generate"); err != nil {
		return pkgerrors.New(pkgerrors.ErrCodeCargoFailed,
			"scaffolding requires cargo-generate. Install with:\n  cargo install cargo-generate")
	}

	args := []string{"generate", "--path", crateDir, templatePath}
	if name != "" {
		args = append(args, "--name", name)
	}
	return run(ctx, "", args...)
}

// run executes cargo with the given arguments, surfacing the first stderr
// line on failure.
func run(ctx context.Context, dir string, args ...string) error {
	cmd := exec.CommandContext(ctx, "cargo", args...)
	if dir != "" {
		cmd.Dir = dir
	}

	var errBuf bytes.Buffer
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return pkgerrors.Wrap(pkgerrors.ErrCodeCargoFailed, err,
			"cargo %s: %s", args[0], firstLine(errBuf.String()))
	}
	return nil
}
