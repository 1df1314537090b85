// Package notify implements the desktop-notification helpers: host OS
// detection, extraction of the message field from a hook payload, and the
// notification log.
package notify

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"plugcheck/internal/types"
)

// DefaultMessage is used when a payload has no usable message field.
const DefaultMessage = "Claude needs your attention"

// DetectOS classifies a host given its GOOS and the content of
// /proc/version (empty on non-Linux hosts). Linux kernels built for WSL
// identify themselves in the version string.
func DetectOS(goos, procVersion string) types.OSKind {
	switch goos {
	case "darwin":
		return types.OSMacOS
	case "linux":
		lower := strings.ToLower(procVersion)
		if strings.Contains(lower, "microsoft") || strings.Contains(lower, "wsl") {
			return types.OSWSL
		}
		return types.OSLinux
	default:
		return types.OSUnknown
	}
}

// HostOS detects the OS of the current host.
func HostOS() types.OSKind {
	var procVersion string
	if runtime.GOOS == "linux" {
		if data, err := os.ReadFile("/proc/version"); err == nil {
			procVersion = string(data)
		}
	}
	return DetectOS(runtime.GOOS, procVersion)
}

// ExtractMessage returns the .message field of a JSON notification
// payload. Malformed JSON, a missing field, a non-string value, or an
// empty string all fall back to DefaultMessage; notification delivery
// must never fail on bad input.
func ExtractMessage(payload []byte) string {
	var doc struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(payload, &doc); err != nil {
		return DefaultMessage
	}
	var msg string
	if err := json.Unmarshal(doc.Message, &msg); err != nil {
		return DefaultMessage
	}
	if msg == "" {
		return DefaultMessage
	}
	return msg
}

// AppendLog appends a timestamp-prefixed line to the notification log,
// creating the file if needed.
func AppendLog(path, message string, now time.Time) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	line := fmt.Sprintf("[%s] %s\n", now.Format("2006-01-02 15:04:05"), message)
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
