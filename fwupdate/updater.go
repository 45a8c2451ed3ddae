// Package fwupdate drives the IPMC firmware upgrade workflow through
// the ipmitool management CLI: validate the slot's FRU inventory, push
// the HPM upgrade image, then activate it.
//
// The package shells out rather than speaking IPMB itself; the command
// runner is injectable so the workflow is testable without ipmitool or
// a shelf on the bench.
package fwupdate

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// ExpectedFRUDescription is the FRU inventory value an IPMC must
// report before any firmware operation is attempted against its slot.
const ExpectedFRUDescription = "Builtin FRU Device (ID 0)"

// Runner executes a management CLI command and returns its combined
// output. The default runner invokes the binary via os/exec.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// InfoMismatchError indicates that a slot's FRU inventory does not
// identify an IPMC we are willing to flash.
type InfoMismatchError struct {
	IPMB     string
	Field    string
	Expected string
	Actual   string
}

func (e *InfoMismatchError) Error() string {
	return fmt.Sprintf("wrong information for slot %s: %s = %q (expected %q)",
		e.IPMB, e.Field, e.Actual, e.Expected)
}

// Config holds the updater configuration.
type Config struct {
	// Tool is the management CLI binary name
	Tool string

	// Runner executes the CLI; replaceable for tests
	Runner Runner
}

// Option is a functional option for configuring the Updater.
type Option func(*Config)

// WithTool overrides the management CLI binary (default "ipmitool").
func WithTool(tool string) Option {
	return func(c *Config) {
		if tool != "" {
			c.Tool = tool
		}
	}
}

// WithRunner replaces the command runner. Intended for tests.
func WithRunner(runner Runner) Option {
	return func(c *Config) {
		if runner != nil {
			c.Runner = runner
		}
	}
}

// Updater performs firmware operations against IPMCs reachable through
// one shelf manager.
type Updater struct {
	shelf  string
	config Config
}

// New creates an Updater for the shelf at the given address.
func New(shelf string, opts ...Option) *Updater {
	cfg := Config{Tool: "ipmitool", Runner: execRunner}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Updater{shelf: shelf, config: cfg}
}

func (u *Updater) run(ctx context.Context, ipmb string, args ...string) ([]byte, error) {
	base := []string{"-H", u.shelf, "-P", "", "-t", ipmb}
	return u.config.Runner(ctx, u.config.Tool, append(base, args...)...)
}

// QueryFRU retrieves and parses the slot's FRU inventory. The output
// is colon-separated "name : value" lines; lines without a colon are
// ignored and on duplicate names the first occurrence wins, matching
// ipmitool's own layout where the description line comes first.
func (u *Updater) QueryFRU(ctx context.Context, ipmb string) (map[string]string, error) {
	out, err := u.run(ctx, ipmb, "fru")
	if err != nil {
		return nil, fmt.Errorf("fru query for slot %s: %w", ipmb, err)
	}

	fields := make(map[string]string)
	for _, line := range strings.Split(string(out), "\n") {
		parts := strings.SplitN(line, ":", 2)
		if len(parts) < 2 {
			continue
		}
		name := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if _, ok := fields[name]; !ok {
			fields[name] = value
		}
	}
	return fields, nil
}

// ValidateInfo checks that the slot's FRU inventory identifies a
// builtin IPMC FRU device. A mismatch fails with *InfoMismatchError so
// callers can skip the slot and continue with the rest.
func (u *Updater) ValidateInfo(ctx context.Context, ipmb string) error {
	fields, err := u.QueryFRU(ctx, ipmb)
	if err != nil {
		return err
	}

	const field = "FRU Device Description"
	actual, ok := fields[field]
	if !ok || actual != ExpectedFRUDescription {
		return &InfoMismatchError{
			IPMB:     ipmb,
			Field:    field,
			Expected: ExpectedFRUDescription,
			Actual:   actual,
		}
	}
	return nil
}

// Upgrade pushes the HPM upgrade image to the slot's IPMC.
func (u *Updater) Upgrade(ctx context.Context, ipmb, imagePath string) error {
	if out, err := u.run(ctx, ipmb, "hpm", "upgrade", imagePath); err != nil {
		return fmt.Errorf("hpm upgrade for slot %s: %w (output: %s)", ipmb, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Activate activates the newly installed firmware on the slot's IPMC.
// Callers should allow the controller a short pause between Upgrade
// and Activate.
func (u *Updater) Activate(ctx context.Context, ipmb string) error {
	if out, err := u.run(ctx, ipmb, "hpm", "activate"); err != nil {
		return fmt.Errorf("hpm activate for slot %s: %w (output: %s)", ipmb, err, strings.TrimSpace(string(out)))
	}
	return nil
}
