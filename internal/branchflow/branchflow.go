// Package branchflow names the kind of merge a pull request performs from its
// head and base branch names.
package branchflow

import "strings"

type FlowLabel int

const (
	Unknown FlowLabel = iota
	StablePromotion
	IllegalFlow
	FixesPromotion
	EmergentPatching
	ReleasePromotion
	Delivering
)

func (f FlowLabel) String() string {
	switch f {
	case StablePromotion:
		return "Stable Promotion"
	case IllegalFlow:
		return "<Illegal Flow>"
	case FixesPromotion:
		return "Fixes Promotion"
	case EmergentPatching:
		return "Emergent Patching"
	case ReleasePromotion:
		return "Release Promotion"
	case Delivering:
		return "Delivering"
	default:
		return "?"
	}
}

func isDev(branch string) bool {
	return branch == "dev" || strings.HasPrefix(branch, "dev-")
}

// Classify maps (head, base) branch names to a flow label. Both names must
// already have any "owner:" prefix removed.
func Classify(head, base string) FlowLabel {
	switch {
	case strings.HasPrefix(head, "ft-"):
		switch {
		case isDev(base):
			return StablePromotion
		case base == "master":
			return IllegalFlow
		}
		return Unknown
	case strings.HasPrefix(head, "fix-"):
		switch {
		case isDev(base):
			return FixesPromotion
		case base == "master":
			return EmergentPatching
		}
		return Unknown
	case isDev(head):
		if base == "master" {
			return ReleasePromotion
		}
		return Delivering
	case head == "master":
		if isDev(base) {
			return Delivering
		}
		return IllegalFlow
	}
	return Unknown
}

// BranchName strips the "owner:" prefix from a ref label.
func BranchName(label string) string {
	if _, branch, ok := strings.Cut(label, ":"); ok {
		return branch
	}
	return label
}

// Describe renders the Branch Flow field value for a pair of ref labels.
func Describe(headLabel, baseLabel string) string {
	flow := Classify(BranchName(headLabel), BranchName(baseLabel))
	return flow.String() + " (" + headLabel + " => " + baseLabel + ")"
}
