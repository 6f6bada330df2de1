package policy

import (
	"strings"
	"testing"

	"polymarket-hotpath/apperrors"
	"polymarket-hotpath/clobtypes"
)

func TestFixedResolves(t *testing.T) {
	got, err := Fixed(clobtypes.TickSize0p001).Resolve("tick_size")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != clobtypes.TickSize0p001 {
		t.Fatalf("resolved %v", got)
	}
}

func TestFetchAndCacheFailsNamingSlot(t *testing.T) {
	_, err := FetchAndCache[bool]().Resolve("neg_risk")
	if err == nil {
		t.Fatal("expected error for fetch_and_cache slot")
	}
	if apperrors.KindOf(err) != apperrors.KindConfig {
		t.Fatalf("kind = %v, want config", apperrors.KindOf(err))
	}
	if !strings.Contains(err.Error(), "neg_risk") {
		t.Fatalf("error does not name the slot: %v", err)
	}
}

func TestUnsetSlotFails(t *testing.T) {
	var slot FixedOrFetch[uint32]
	_, err := slot.Resolve("fee_rate_bps")
	if err == nil {
		t.Fatal("expected error for unset slot")
	}
	if apperrors.KindOf(err) != apperrors.KindConfig {
		t.Fatalf("kind = %v, want config", apperrors.KindOf(err))
	}
}

func TestTimePolicy(t *testing.T) {
	if err := TimeFixed.EnsureSupported(); err != nil {
		t.Fatalf("fixed time policy should be supported: %v", err)
	}
	if err := TimeFetchAndCache.EnsureSupported(); err == nil {
		t.Fatal("fetch_and_cache time policy must fail")
	}
}

// Validate 必须在任何网络请求之前一次性暴露所有槽位的配置问题。
func TestValidateEager(t *testing.T) {
	good := HotPathPolicies{
		TickSize:   Fixed(clobtypes.TickSize0p01),
		NegRisk:    Fixed(false),
		FeeRateBps: Fixed(uint32(0)),
		Time:       TimeFixed,
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("valid policies rejected: %v", err)
	}

	cases := []struct {
		name string
		pol  HotPathPolicies
	}{
		{"fetch tick", HotPathPolicies{
			TickSize:   FetchAndCache[clobtypes.TickSize](),
			NegRisk:    Fixed(false),
			FeeRateBps: Fixed(uint32(0)),
		}},
		{"fetch neg risk", HotPathPolicies{
			TickSize:   Fixed(clobtypes.TickSize0p01),
			NegRisk:    FetchAndCache[bool](),
			FeeRateBps: Fixed(uint32(0)),
		}},
		{"fetch fee", HotPathPolicies{
			TickSize:   Fixed(clobtypes.TickSize0p01),
			NegRisk:    Fixed(false),
			FeeRateBps: FetchAndCache[uint32](),
		}},
		{"fetch time", HotPathPolicies{
			TickSize:   Fixed(clobtypes.TickSize0p01),
			NegRisk:    Fixed(false),
			FeeRateBps: Fixed(uint32(0)),
			Time:       TimeFetchAndCache,
		}},
		{"unset slot", HotPathPolicies{
			TickSize:   Fixed(clobtypes.TickSize0p01),
			FeeRateBps: Fixed(uint32(0)),
		}},
	}
	for _, c := range cases {
		if err := c.pol.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", c.name)
		}
	}
}
