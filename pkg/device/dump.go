package device

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/qe-first/qedriver/pkg/core"
)

const deviceDumpPath = "/sdcard/window_dump.xml"

// DumpUI captures the current accessibility tree and returns the raw
// XML. The whole capture runs under ctx; a deadline hit surfaces as
// core.ErrDumpTimeout and is never silently retried, since a retry
// against a stale UI state could later select the wrong element.
func (d *AndroidDevice) DumpUI(ctx context.Context) (string, error) {
	if _, err := d.shellCtx(ctx, "uiautomator dump "+deviceDumpPath); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", core.ErrDumpTimeout.WithCause(err)
		}
		return "", fmt.Errorf("uiautomator dump failed: %w", err)
	}

	xml, err := d.execOutCtx(ctx, "cat", deviceDumpPath)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", core.ErrDumpTimeout.WithCause(err)
		}
		return "", fmt.Errorf("pulling dump failed: %w", err)
	}

	return xml, nil
}

// shellCtx runs an adb shell command under a context.
func (d *AndroidDevice) shellCtx(ctx context.Context, cmd string) (string, error) {
	return d.adbCtx(ctx, "shell", cmd)
}

// execOutCtx runs `adb exec-out` to read binary-safe command output.
func (d *AndroidDevice) execOutCtx(ctx context.Context, args ...string) (string, error) {
	return d.adbCtx(ctx, append([]string{"exec-out"}, args...)...)
}

func (d *AndroidDevice) adbCtx(ctx context.Context, args ...string) (string, error) {
	cmdArgs := make([]string, 0, len(args)+2)
	if d.serial != "" {
		cmdArgs = append(cmdArgs, "-s", d.serial)
	}
	cmdArgs = append(cmdArgs, args...)

	out, err := exec.CommandContext(ctx, d.adbPath, cmdArgs...).Output()
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("adb %s: %w", strings.Join(args, " "), err)
	}
	return string(out), nil
}
