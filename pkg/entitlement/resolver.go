// Package entitlement decides, per feature and per user, whether access
// is free, subscribed, premium, or locked, and what the caller should do
// about it. It is pure decision logic: callers pass everything in.
package entitlement

// AccessStatus is the resolved entitlement state of one feature for one user.
type AccessStatus string

const (
	StatusFree       AccessStatus = "free"
	StatusSubscribed AccessStatus = "subscribed"
	StatusPremium    AccessStatus = "premium"
	StatusLocked     AccessStatus = "locked"
	StatusLoading    AccessStatus = "loading"
)

// AccessMap maps feature code -> status for one user. It is replaced
// wholesale on refetch, never merged.
type AccessMap map[string]AccessStatus

// Feature is the catalog view the resolver needs. Status here is the
// catalog-level flag ("free" or "premium"), not the per-user result.
type Feature struct {
	Code   string
	Status string
}

// ActionKind tells the caller what to do when the user taps a feature.
type ActionKind string

const (
	ActionOpen   ActionKind = "open"
	ActionLogin  ActionKind = "login"
	ActionUpsell ActionKind = "upsell"
)

// Action pairs a kind with its target: the tool URL for open, empty otherwise.
type Action struct {
	Kind   ActionKind
	Target string
}

// ResolveStatus computes the entitlement state of a feature.
//
// Branch order matters. Catalog-free wins over everything; an
// unauthenticated user is locked before the map is consulted; a map
// still loading must not read as denial; and a code missing from a
// settled map fails closed to premium.
func ResolveStatus(feature Feature, accessMap AccessMap, isAuthenticated, isMapLoading bool) AccessStatus {
	if feature.Status == string(StatusFree) {
		return StatusFree
	}
	if !isAuthenticated {
		return StatusLocked
	}
	if isMapLoading {
		return StatusLoading
	}
	if status, ok := accessMap[feature.Code]; ok {
		return status
	}
	return StatusPremium
}

// DecideAction converts a resolved status into the caller's next move.
// Free and subscribed open directly; anyone unauthenticated is sent to
// login before premium/locked branching; everything else upsells.
func DecideAction(feature Feature, resolved AccessStatus, isAuthenticated bool, toolURL string) Action {
	if resolved == StatusFree || resolved == StatusSubscribed {
		return Action{Kind: ActionOpen, Target: toolURL}
	}
	if !isAuthenticated {
		return Action{Kind: ActionLogin}
	}
	return Action{Kind: ActionUpsell}
}

// BuildAccessMap derives the per-user map from the catalog and the
// user's subscription state. Subscribed users get "subscribed" on every
// premium feature in their package; free features stay "free"; the rest
// resolve to "premium".
func BuildAccessMap(catalog []Feature, subscribedCodes map[string]struct{}) AccessMap {
	m := make(AccessMap, len(catalog))
	for _, f := range catalog {
		switch {
		case f.Status == string(StatusFree):
			m[f.Code] = StatusFree
		case subscribedCodes != nil && hasCode(subscribedCodes, f.Code):
			m[f.Code] = StatusSubscribed
		default:
			m[f.Code] = StatusPremium
		}
	}
	return m
}

func hasCode(set map[string]struct{}, code string) bool {
	_, ok := set[code]
	return ok
}

// AccessibleCodes lists the codes a user may open right now: free
// features plus subscribed ones.
func AccessibleCodes(catalog []Feature, accessMap AccessMap) []string {
	codes := make([]string, 0, len(catalog))
	for _, f := range catalog {
		status := accessMap[f.Code]
		if f.Status == string(StatusFree) || status == StatusFree || status == StatusSubscribed {
			codes = append(codes, f.Code)
		}
	}
	return codes
}
