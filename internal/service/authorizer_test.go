package service

import (
	"errors"
	"testing"
)

func TestAuthorizer_Authorize(t *testing.T) {
	a := NewAuthorizer("+38160123456789", "openrelay")

	cases := []struct {
		name    string
		sender  string
		body    string
		wantErr error
	}{
		{name: "admin with secret", sender: "+38160123456789", body: "openrelay"},
		{name: "surrounding whitespace", sender: " +38160123456789\n", body: " openrelay\r\n"},
		{name: "other number", sender: "+38160123456788", body: "openrelay", wantErr: ErrUnauthorizedSender},
		{name: "missing plus", sender: "38160123456789", body: "openrelay", wantErr: ErrUnauthorizedSender},
		{name: "prefix of admin", sender: "+3816012345678", body: "openrelay", wantErr: ErrUnauthorizedSender},
		{name: "empty sender", sender: "", body: "openrelay", wantErr: ErrUnauthorizedSender},
		{name: "wrong keyword", sender: "+38160123456789", body: "closerelay", wantErr: ErrUnknownCommand},
		{name: "keyword is case sensitive", sender: "+38160123456789", body: "OPENRELAY", wantErr: ErrUnknownCommand},
		{name: "keyword inside sentence", sender: "+38160123456789", body: "please openrelay", wantErr: ErrUnknownCommand},
		{name: "stranger with keyword", sender: "+10000000000", body: "openrelay", wantErr: ErrUnauthorizedSender},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := a.Authorize(tc.sender, tc.body)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("Authorize() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Authorize() error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}
