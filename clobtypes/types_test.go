package clobtypes

import (
	"encoding/json"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func TestParseSignatureType(t *testing.T) {
	cases := map[string]SignatureType{
		"eoa":         SignatureEOA,
		"0":           SignatureEOA,
		"Proxy":       SignatureProxy,
		"1":           SignatureProxy,
		"gnosis":      SignatureGnosisSafe,
		"gnosis_safe": SignatureGnosisSafe,
		"safe":        SignatureGnosisSafe,
		"2":           SignatureGnosisSafe,
	}
	for in, want := range cases {
		got, err := ParseSignatureType(in)
		if err != nil {
			t.Fatalf("ParseSignatureType(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseSignatureType(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseSignatureType("multisig"); err == nil {
		t.Fatal("expected error for unknown signature type")
	}
}

func TestParseTickSize(t *testing.T) {
	for _, in := range []string{"0.1", "0.01", "0.001", "0.0001"} {
		tick, err := ParseTickSize(in)
		if err != nil {
			t.Fatalf("ParseTickSize(%q): %v", in, err)
		}
		if tick.Decimal().String() != in {
			t.Fatalf("tick %q decimal = %s", in, tick.Decimal())
		}
	}
	if _, err := ParseTickSize("0.05"); err == nil {
		t.Fatal("expected error for unsupported tick")
	}
}

func TestTickSizeScale(t *testing.T) {
	if got := TickSize0p01.Scale(); got != 2 {
		t.Fatalf("scale = %d, want 2", got)
	}
	if got := TickSize0p0001.Scale(); got != 4 {
		t.Fatalf("scale = %d, want 4", got)
	}
}

func TestOrderWireFormat(t *testing.T) {
	o := Order{
		Salt:          big.NewInt(12345),
		Maker:         common.HexToAddress("0x1111111111111111111111111111111111111111"),
		Signer:        common.HexToAddress("0x2222222222222222222222222222222222222222"),
		TokenID:       big.NewInt(777),
		MakerAmount:   big.NewInt(5500000),
		TakerAmount:   big.NewInt(10000000),
		Expiration:    big.NewInt(0),
		Nonce:         big.NewInt(0),
		FeeRateBps:    big.NewInt(0),
		Side:          Buy,
		SignatureType: SignatureProxy,
	}
	raw, err := json.Marshal(SignedOrder{
		Order:     o,
		Signature: "0xabcdef",
		OrderType: OrderTypeGTC,
		Owner:     "key-1",
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(raw)

	// uint256 字段一律十进制字符串，side 为枚举名。
	for _, want := range []string{
		`"salt":"12345"`,
		`"makerAmount":"5500000"`,
		`"takerAmount":"10000000"`,
		`"side":"BUY"`,
		`"signatureType":1`,
		`"orderType":"GTC"`,
		`"owner":"key-1"`,
		`"postOnly":null`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("wire body missing %s: %s", want, body)
		}
	}
}
