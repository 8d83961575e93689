package nakama

import (
	"testing"

	jwt "github.com/form3tech-oss/jwt-go"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("server-key"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestExtractUserIDFromToken(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		want    string
		wantErr bool
	}{
		{name: "uid claim", token: signedToken(t, jwt.MapClaims{"uid": "user-42", "usn": "alice"}), want: "user-42"},
		{name: "missing uid", token: signedToken(t, jwt.MapClaims{"usn": "alice"}), wantErr: true},
		{name: "non-string uid", token: signedToken(t, jwt.MapClaims{"uid": 42}), wantErr: true},
		{name: "malformed", token: "not.a.jwt", wantErr: true},
		{name: "empty", token: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractUserIDFromToken(tt.token)
			if (err != nil) != tt.wantErr {
				t.Fatalf("extractUserIDFromToken() err = %v, wantErr %t", err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("extractUserIDFromToken() = %q, want %q", got, tt.want)
			}
		})
	}
}
