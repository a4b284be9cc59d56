package models

import (
	"testing"
	"time"
)

func TestSlugify(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	cases := map[string]string{
		"Jordan 1 Retro High OG Chicago": "jordan-1-retro-high-og-chicago-1700000000123",
		"  Yeezy 350 V2 (Zebra)!! ":      "yeezy-350-v2-zebra-1700000000123",
		"NB 550/White+Green":             "nb-550-white-green-1700000000123",
	}
	for in, want := range cases {
		if got := Slugify(in, now); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"350", 35000, false},
		{"12.5", 1250, false},
		{"12,50", 1250, false},
		{" 0.99 ", 99, false},
		{"", 0, true},
		{"abc", 0, true},
		{"1.234", 0, true},
		{"-5", 0, true},
		{"5.", 0, true},
		{"-0.50", 0, true},
		{"+12", 0, true},
		{"12.+5", 0, true},
		{"12.-5", 0, true},
		{"1 000", 0, true},
		{"1844674407370955162", 0, true},
		{"200000000000000000", 0, true},
		{"92233720368547757", 9223372036854775700, false},
		{"92233720368547758", 0, true},
	}
	for _, tt := range tests {
		got, err := ParsePrice(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePrice(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePrice(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFormatPrice(t *testing.T) {
	if got := FormatPrice(35000); got != "350.00" {
		t.Errorf("FormatPrice(35000) = %q", got)
	}
	if got := FormatPrice(1250); got != "12.50" {
		t.Errorf("FormatPrice(1250) = %q", got)
	}
}

func TestConditionLabelAndValid(t *testing.T) {
	if ConditionLikeNew.Label() != "Like New (VNDS)" {
		t.Errorf("label = %q", ConditionLikeNew.Label())
	}
	if Condition("mint").Valid() {
		t.Error("unknown condition reported valid")
	}
	if !StatusTraded.Valid() || ListingStatus("gone").Valid() {
		t.Error("status validity wrong")
	}
}
