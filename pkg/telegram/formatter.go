package telegram

import (
	"fmt"
	"strings"
	"time"
)

// RefreshedGame is one row in a trending cache refresh summary.
type RefreshedGame struct {
	Name          string
	TrendingScore int
	HasGameplay   bool
}

// FormatTrendingRefreshSummary builds the Markdown message sent after a
// trending cache refresh run.
func FormatTrendingRefreshSummary(checked, updated int, games []RefreshedGame, ranAt time.Time) string {
	var b strings.Builder

	b.WriteString("*Trending Cache Refresh*\n")
	b.WriteString(fmt.Sprintf("Time: %s\n", ranAt.Format("2006-01-02 15:04 MST")))
	b.WriteString(fmt.Sprintf("Checked: %d | Updated: %d\n", checked, updated))

	if len(games) == 0 {
		return b.String()
	}

	b.WriteString("\n*Top signals:*\n")
	for i, g := range games {
		if i >= 10 {
			break
		}
		gameplay := ""
		if g.HasGameplay {
			gameplay = " (gameplay)"
		}
		b.WriteString(fmt.Sprintf("%d. %s — %d%s\n", i+1, g.Name, g.TrendingScore, gameplay))
	}

	return b.String()
}
