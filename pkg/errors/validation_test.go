package errors

import "testing"

func TestValidateHexColor(t *testing.T) {
	tests := []struct {
		color   string
		wantErr bool
	}{
		{"ff0000", false},
		{"#ff0000", false},
		{"FFFFFF", false},
		{"#00aaBB", false},
		{"", true},
		{"fff", true},
		{"#fff", true},
		{"gg0000", true},
		{"#ff00001", true},
		{"rgb(0,0,0)", true},
	}

	for _, tt := range tests {
		t.Run(tt.color, func(t *testing.T) {
			err := ValidateHexColor(tt.color)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateHexColor(%q) error = %v, wantErr %v", tt.color, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidColor) {
				t.Errorf("error code = %q, want %q", GetCode(err), ErrCodeInvalidColor)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	if err := ValidateURL("https://fonts.gstatic.com/s/inter/v13/a.ttf"); err != nil {
		t.Errorf("valid https URL rejected: %v", err)
	}
	if err := ValidateURL("http://localhost:8080/font.ttf"); err != nil {
		t.Errorf("valid http URL rejected: %v", err)
	}
	if err := ValidateURL(""); err == nil {
		t.Error("empty URL accepted")
	}
	if err := ValidateURL("ftp://example.com/font.ttf"); err == nil {
		t.Error("ftp URL accepted")
	}
	if err := ValidateURL("file:///etc/passwd"); err == nil {
		t.Error("file URL accepted")
	}
}

func TestValidateFontFamily(t *testing.T) {
	if err := ValidateFontFamily("Playfair Display"); err != nil {
		t.Errorf("valid family rejected: %v", err)
	}
	if err := ValidateFontFamily(""); err == nil {
		t.Error("empty family accepted")
	}
	if err := ValidateFontFamily("bad\x00name"); err == nil {
		t.Error("family with control character accepted")
	}
}
