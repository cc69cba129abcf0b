package resume

import (
	"path"
	"strings"
)

// NormalizeFilename trims the name, drops any directory part and ensures a
// ".pdf" extension.
func NormalizeFilename(name string) (string, error) {
	name = strings.TrimSpace(strings.ReplaceAll(name, "\\", "/"))
	name = path.Base(name)
	if name == "" || name == "." || name == "/" {
		return "", NewError(KindValidation, "filename is required", nil)
	}
	if strings.ContainsAny(name, "\x00\r\n") {
		return "", NewError(KindValidation, "filename contains control characters", nil)
	}
	if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		name += ".pdf"
	}
	return name, nil
}
