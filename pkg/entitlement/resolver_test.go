package entitlement

import (
	"reflect"
	"testing"
)

func TestResolveStatus(t *testing.T) {
	premiumFeature := Feature{Code: "invoice", Status: "premium"}
	freeFeature := Feature{Code: "kalkulator", Status: "free"}

	tests := []struct {
		name      string
		feature   Feature
		accessMap AccessMap
		auth      bool
		loading   bool
		want      AccessStatus
	}{
		{
			name:      "catalog free wins over map and auth",
			feature:   freeFeature,
			accessMap: AccessMap{"kalkulator": StatusLocked},
			auth:      false,
			loading:   false,
			want:      StatusFree,
		},
		{
			name:      "catalog free wins while loading",
			feature:   freeFeature,
			accessMap: nil,
			auth:      true,
			loading:   true,
			want:      StatusFree,
		},
		{
			name:      "unauthenticated is locked even if map says subscribed",
			feature:   premiumFeature,
			accessMap: AccessMap{"invoice": StatusSubscribed},
			auth:      false,
			loading:   false,
			want:      StatusLocked,
		},
		{
			name:      "loading map reported as loading not locked",
			feature:   premiumFeature,
			accessMap: AccessMap{},
			auth:      true,
			loading:   true,
			want:      StatusLoading,
		},
		{
			name:      "authenticated subscriber",
			feature:   premiumFeature,
			accessMap: AccessMap{"invoice": StatusSubscribed},
			auth:      true,
			loading:   false,
			want:      StatusSubscribed,
		},
		{
			name:      "missing code fails closed to premium",
			feature:   premiumFeature,
			accessMap: AccessMap{},
			auth:      true,
			loading:   false,
			want:      StatusPremium,
		},
		{
			name:      "nil map fails closed to premium",
			feature:   premiumFeature,
			accessMap: nil,
			auth:      true,
			loading:   false,
			want:      StatusPremium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveStatus(tt.feature, tt.accessMap, tt.auth, tt.loading)
			if got != tt.want {
				t.Errorf("ResolveStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecideAction(t *testing.T) {
	feature := Feature{Code: "invoice", Status: "premium"}

	tests := []struct {
		name     string
		resolved AccessStatus
		auth     bool
		wantKind ActionKind
	}{
		{name: "free opens", resolved: StatusFree, auth: false, wantKind: ActionOpen},
		{name: "subscribed opens", resolved: StatusSubscribed, auth: true, wantKind: ActionOpen},
		{name: "unauthenticated premium goes to login", resolved: StatusLocked, auth: false, wantKind: ActionLogin},
		{name: "authenticated premium upsells", resolved: StatusPremium, auth: true, wantKind: ActionUpsell},
		{name: "authenticated locked upsells", resolved: StatusLocked, auth: true, wantKind: ActionUpsell},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecideAction(feature, tt.resolved, tt.auth, "https://tools.example.com/invoice")
			if got.Kind != tt.wantKind {
				t.Errorf("DecideAction() kind = %q, want %q", got.Kind, tt.wantKind)
			}
			if tt.wantKind == ActionOpen && got.Target == "" {
				t.Error("open action should carry the tool URL")
			}
		})
	}
}

// Unauthenticated users must never get "open" unless the feature is
// catalog-free, whatever the map contains.
func TestDecideActionNeverOpensForUnauthenticated(t *testing.T) {
	feature := Feature{Code: "invoice", Status: "premium"}
	maps := []AccessMap{
		nil,
		{},
		{"invoice": StatusSubscribed},
		{"invoice": StatusFree},
	}

	for _, m := range maps {
		resolved := ResolveStatus(feature, m, false, false)
		action := DecideAction(feature, resolved, false, "https://tools.example.com/invoice")
		if action.Kind == ActionOpen {
			t.Errorf("map %v: unauthenticated user got open action", m)
		}
	}
}

// A failed access fetch leaves callers with an empty settled map; every
// non-free feature must then resolve to premium and upsell.
func TestResolveStatusFailedFetchFailsClosed(t *testing.T) {
	feature := Feature{Code: "invoice", Status: "premium"}

	resolved := ResolveStatus(feature, AccessMap{}, true, false)
	if resolved != StatusPremium {
		t.Fatalf("resolved = %q, want %q", resolved, StatusPremium)
	}
	action := DecideAction(feature, resolved, true, "")
	if action.Kind != ActionUpsell {
		t.Errorf("action = %q, want %q", action.Kind, ActionUpsell)
	}
}

func TestBuildAccessMap(t *testing.T) {
	catalog := []Feature{
		{Code: "kalkulator", Status: "free"},
		{Code: "invoice", Status: "premium"},
		{Code: "kwitansi", Status: "premium"},
	}
	subscribed := map[string]struct{}{"invoice": {}}

	got := BuildAccessMap(catalog, subscribed)
	want := AccessMap{
		"kalkulator": StatusFree,
		"invoice":    StatusSubscribed,
		"kwitansi":   StatusPremium,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BuildAccessMap() = %v, want %v", got, want)
	}
}

func TestBuildAccessMapNoSubscription(t *testing.T) {
	catalog := []Feature{
		{Code: "kalkulator", Status: "free"},
		{Code: "invoice", Status: "premium"},
	}

	got := BuildAccessMap(catalog, nil)
	if got["kalkulator"] != StatusFree {
		t.Errorf("free feature resolved to %q", got["kalkulator"])
	}
	if got["invoice"] != StatusPremium {
		t.Errorf("premium feature without subscription resolved to %q", got["invoice"])
	}
}

func TestAccessibleCodes(t *testing.T) {
	catalog := []Feature{
		{Code: "kalkulator", Status: "free"},
		{Code: "invoice", Status: "premium"},
		{Code: "kwitansi", Status: "premium"},
	}
	accessMap := AccessMap{
		"kalkulator": StatusFree,
		"invoice":    StatusSubscribed,
		"kwitansi":   StatusPremium,
	}

	got := AccessibleCodes(catalog, accessMap)
	want := []string{"kalkulator", "invoice"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AccessibleCodes() = %v, want %v", got, want)
	}
}
