package validation

import "testing"

func TestValidateDocumentURL_Valid(t *testing.T) {
	v := NewURLValidator()

	urls := []string{
		"https://example.com/documents/card.jpg",
		"http://cdn.example.com/uploads/123",
		"https://account.blob.core.windows.net/documents?blob=card.jpg",
	}

	for _, u := range urls {
		if err := v.ValidateDocumentURL(u); err != nil {
			t.Errorf("Expected %q valid, got %v", u, err)
		}
	}
}

func TestValidateDocumentURL_Invalid(t *testing.T) {
	v := NewURLValidator()

	tests := []struct {
		name string
		url  string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"no host", "https://"},
		{"bad scheme", "ftp://example.com/card.jpg"},
		{"file scheme", "file:///etc/passwd"},
		{"relative path", "/documents/card.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := v.ValidateDocumentURL(tt.url); err == nil {
				t.Errorf("Expected %q rejected", tt.url)
			}
		})
	}
}

func TestValidateDocumentURL_HostAllowlist(t *testing.T) {
	v := NewURLValidatorWithOptions([]string{"https"}, []string{"docs.example.com"})

	if err := v.ValidateDocumentURL("https://docs.example.com/card.jpg"); err != nil {
		t.Errorf("Expected allowlisted host accepted, got %v", err)
	}
	if err := v.ValidateDocumentURL("https://other.example.com/card.jpg"); err == nil {
		t.Error("Expected non-allowlisted host rejected")
	}
	if err := v.ValidateDocumentURL("http://docs.example.com/card.jpg"); err == nil {
		t.Error("Expected disallowed scheme rejected")
	}
}
