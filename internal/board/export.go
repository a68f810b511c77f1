package board

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/renukapawar30/Project-Planner-Tool/pkg/models"
)

const exportRule = "------------------------------------------------------------"

// ExportFileName returns the file name an export of b is written to.
func ExportFileName(b models.Board) string {
	return sanitize(b.Name) + "_" + b.ID + ".txt"
}

// sanitize replaces every rune that is not a letter or digit with '_'.
func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return r
		}
		return '_'
	}, name)
}

func renderExport(b models.Board, exportedAt string) string {
	var sb strings.Builder
	field := func(label, value string) {
		fmt.Fprintf(&sb, "%-15s: %s\n", label, value)
	}
	field("BOARD NAME", b.Name)
	field("BOARD ID", b.ID)
	field("DESCRIPTION", b.Description)
	field("TEAM ID", b.TeamID)
	field("STATUS", b.Status)
	field("CREATED AT", b.CreatedAt)
	field("END TIME", orDash(b.EndTime))
	field("TASK COUNT", strconv.Itoa(len(b.Tasks)))
	field("EXPORT TIME", exportedAt)
	sb.WriteString(exportRule + "\n")

	if len(b.Tasks) == 0 {
		sb.WriteString("No tasks available in this board.\n")
		return sb.String()
	}
	for i, t := range b.Tasks {
		fmt.Fprintf(&sb, "TASK %d\n", i+1)
		fmt.Fprintf(&sb, "  %-12s: %s\n", "ID", t.ID)
		fmt.Fprintf(&sb, "  %-12s: %s\n", "Title", t.Title)
		fmt.Fprintf(&sb, "  %-12s: %s\n", "Description", t.Description)
		fmt.Fprintf(&sb, "  %-12s: %s\n", "Assigned To", t.UserID)
		fmt.Fprintf(&sb, "  %-12s: %s\n", "Status", t.Status)
		fmt.Fprintf(&sb, "  %-12s: %s\n", "Created At", t.CreatedAt)
		fmt.Fprintf(&sb, "  %-12s: %s\n", "Last Updated", orDash(t.LastUpdated))
		sb.WriteString(exportRule + "\n")
	}
	return sb.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func writeExport(dir string, b models.Board, exportedAt string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	name := ExportFileName(b)
	if err := os.WriteFile(filepath.Join(dir, name), []byte(renderExport(b, exportedAt)), 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return name, nil
}
