// pkg/checklist/aggregate.go
package checklist

// Stats are the roll-up counters persisted on the report envelope.
// NA and NOT_CHECKED items count toward the total but toward neither
// pass nor fail.
type Stats struct {
	TotalCheckItems int  `json:"totalCheckItems"`
	PassCount       int  `json:"passCount"`
	FailCount       int  `json:"failCount"`
	HasIssues       bool `json:"hasIssues"`
}

func (s *Stats) tally(items []Item) {
	for _, it := range items {
		s.TotalCheckItems++
		switch it.Result {
		case ResultPass:
			s.PassCount++
		case ResultFail:
			s.FailCount++
		}
	}
	s.HasIssues = s.FailCount > 0
}
