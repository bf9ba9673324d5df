package checker

import "context"

//go:generate mockgen -package mockchecker -source=interface.go -destination=mock/mockchecker.go *
type Checker interface {
	// Check looks up the availability of every domain in names and returns
	// one result per input, in input order. It never returns an error: all
	// per-domain faults are converted to failed results.
	Check(ctx context.Context, names []string) Report
}
