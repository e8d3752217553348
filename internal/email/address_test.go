package email

import (
	"reflect"
	"testing"
)

func TestValidAddress(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@example.com",
		"user+tag@sub.example.com",
		"user_name@example.co.uk",
		"u@x.io",
		"weird!#$%&'*+/=?^_`{|}~-chars@example.com",
	}
	for _, addr := range valid {
		if !ValidAddress(addr) {
			t.Errorf("ValidAddress(%q) = false, want true", addr)
		}
	}

	invalid := []string{
		"",
		"plainaddress",
		"missing-domain@",
		"@missing-local.com",
		"no-dot-domain@localhost",
		"two@@example.com",
		"spaces in@example.com",
		"user@example.com ",
		" user@example.com",
		"user@-example.com",
		"user@example-.com",
		"user@example.com\nBcc: evil@example.com",
		"user@exam ple.com",
	}
	for _, addr := range invalid {
		if ValidAddress(addr) {
			t.Errorf("ValidAddress(%q) = true, want false", addr)
		}
	}
}

func TestValidateAddresses(t *testing.T) {
	if err := ValidateAddresses(nil); err != nil {
		t.Errorf("ValidateAddresses(nil): unexpected error: %v", err)
	}
	if err := ValidateAddresses([]string{"a@x.com", "b@y.org"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	err := ValidateAddresses([]string{"a@x.com", "not-an-address"})
	if err == nil {
		t.Fatal("expected error for invalid address, got nil")
	}
	want := "invalid recipient address: not-an-address"
	if err.Error() != want {
		t.Errorf("error: got %q, want %q", err.Error(), want)
	}
}

func TestParseList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"single", "a@x.com", []string{"a@x.com"}},
		{"multiple", "a@x.com,b@y.org", []string{"a@x.com", "b@y.org"}},
		{"whitespace", "  a@x.com , b@y.org  ", []string{"a@x.com", "b@y.org"}},
		{"empty entries", "a@x.com,,  ,b@y.org,", []string{"a@x.com", "b@y.org"}},
		{"empty string", "", nil},
		{"only commas", ",,,", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseList(tt.input)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseList(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
