package output

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/blackwell-systems/aptext/internal/store"
)

// RenderBackupTable renders the backup history. Rows keep the order given
// (the store returns newest first).
func RenderBackupTable(backups []*store.Backup) string {
	if len(backups) == 0 {
		return "No backups recorded.\n"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-5s %-16s %-9s %-20s %s\n",
		"ID", "Created", "Packages", "Kernel", "Path"))
	sb.WriteString(strings.Repeat("─", 80))
	sb.WriteString("\n")

	for _, b := range backups {
		kernel := b.KernelRelease
		if kernel == "" {
			kernel = "-"
		}
		sb.WriteString(fmt.Sprintf("%-5d %-16s %-9d %-20s %s\n",
			b.ID,
			truncate(humanize.Time(b.CreatedAt), 16),
			b.PackageCount,
			truncate(kernel, 20),
			b.Path))
	}

	return sb.String()
}

// truncate shortens s to maxLen runes, marking the cut with "...".
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
