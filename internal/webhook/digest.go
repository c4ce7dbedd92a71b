package webhook

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hytaletravelers/playerstats/internal/model"
)

// digestSize caps how many players appear in the daily leaderboard
const digestSize = 10

// digestMarkers decorate the top three ranks
var digestMarkers = [3]string{":first_place:", ":second_place:", ":third_place:"}

// BuildDigestDescription renders the daily leaderboard body.
// Ranking uses settled cumulative playtime only, so a long open session does
// not shuffle the board mid-day; the displayed playtime still includes it.
func BuildDigestDescription(snapshot []model.StatRecord, now time.Time) string {
	ranked := make([]model.StatRecord, len(snapshot))
	copy(ranked, snapshot)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].CumulativePlaytimeSeconds > ranked[j].CumulativePlaytimeSeconds
	})

	if len(ranked) > digestSize {
		ranked = ranked[:digestSize]
	}

	var b strings.Builder
	for i := range ranked {
		p := &ranked[i]
		marker := "**#" + strconv.Itoa(i+1) + "**"
		if i < len(digestMarkers) {
			marker = digestMarkers[i]
		}
		fmt.Fprintf(&b, "%s **%s** - %s | K: %d D: %d\n",
			marker, p.Username, p.FormattedPlaytime(now), p.KillCount(), p.DeathCount)
	}
	return b.String()
}
