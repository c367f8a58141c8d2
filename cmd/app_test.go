package cmd

import (
	"testing"

	"github.com/coredump-ch/gitcash"
)

func TestAppConfigPointOfSale(t *testing.T) {
	testCases := []struct {
		name    string
		account string
		want    gitcash.Account
		wantErr bool
	}{
		{name: "pos account", account: "pos:kiosk", want: gitcash.Account{Type: gitcash.PointOfSale, Name: "kiosk"}},
		{name: "missing", account: "", wantErr: true},
		{name: "user account", account: "user:alice", wantErr: true},
		{name: "source account", account: "source:cash", wantErr: true},
		{name: "unparsable", account: "kiosk", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &AppConfig{Account: tc.account}
			got, err := cfg.PointOfSale()
			if tc.wantErr {
				if err == nil {
					t.Fatalf("PointOfSale() = %v, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("PointOfSale() returned error: %v", err)
			}
			if got != tc.want {
				t.Errorf("PointOfSale() = %v, want %v", got, tc.want)
			}
		})
	}
}
