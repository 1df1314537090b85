package suites

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"plugcheck/internal/harness"
	"plugcheck/internal/notify"
	"plugcheck/internal/types"
)

// runNotifications exercises OS detection, payload parsing, and the
// notification log.
func runNotifications(ctx *harness.TestContext, env Env) {
	ctx.Group("OS detection")
	host := notify.HostOS()
	ctx.Check(host.Validate() == nil, "detected OS is a known kind", fmt.Sprintf("got %q", host))

	switch runtime.GOOS {
	case "darwin":
		ctx.Equals(string(types.OSMacOS), string(host), "detection matches host OS")
	case "linux":
		ctx.Check(host == types.OSLinux || host == types.OSWSL,
			"detection matches host OS", fmt.Sprintf("got %q on linux", host))
	default:
		ctx.Equals(string(types.OSUnknown), string(host), "detection matches host OS")
	}

	ctx.Check(notify.DetectOS("linux", "Linux version 5.15-microsoft-standard-WSL2") == types.OSWSL,
		"microsoft kernel classified as wsl", "")
	ctx.Check(notify.DetectOS("darwin", "") == types.OSMacOS, "darwin classified as macos", "")

	ctx.Group("payload parsing")
	ctx.Equals("Test", notify.ExtractMessage([]byte(`{"message":"Test"}`)), "message field extracted")
	ctx.Equals(notify.DefaultMessage, notify.ExtractMessage([]byte(`not json`)), "malformed JSON falls back")
	ctx.Equals(notify.DefaultMessage, notify.ExtractMessage([]byte(`{"title":"x"}`)), "missing field falls back")
	ctx.Equals(notify.DefaultMessage, notify.ExtractMessage([]byte(`{"message":null}`)), "null field falls back")

	ctx.Group("notification log")
	dir, err := os.MkdirTemp("", "plugcheck-notify-")
	if !ctx.Check(err == nil, "fixture directory created", fmt.Sprintf("%v", err)) {
		return
	}
	defer os.RemoveAll(dir)

	logPath := filepath.Join(dir, "notifications.log")
	now := time.Now()
	err = notify.AppendLog(logPath, "Test", now)
	ctx.Check(err == nil, "log line appended", fmt.Sprintf("%v", err))

	data, err := os.ReadFile(logPath)
	if ctx.Check(err == nil, "log readable", fmt.Sprintf("%v", err)) {
		line := strings.TrimSpace(string(data))
		prefix := "[" + now.Format("2006-01-02")
		ctx.Check(strings.HasPrefix(line, prefix), "log line has timestamp prefix",
			fmt.Sprintf("line %q lacks prefix %q", line, prefix))
		ctx.Check(strings.HasSuffix(line, "Test"), "log line carries the message",
			fmt.Sprintf("line %q", line))
	}
}
