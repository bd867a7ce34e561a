package i18n

import "testing"

func TestDetectLanguage(t *testing.T) {
	if DetectLanguage("en-US,en;q=0.9") != "en" {
		t.Fatalf("expected en")
	}
	if DetectLanguage("EN-gb") != "en" {
		t.Fatalf("expected en for EN-gb")
	}
	if DetectLanguage("ko-KR,ko;q=0.8") != "ko" {
		t.Fatalf("expected ko")
	}
	if DetectLanguage("fr-FR,fr;q=0.8") != "ko" {
		t.Fatalf("expected ko fallback for unsupported language")
	}
	if DetectLanguage("") != "ko" {
		t.Fatalf("expected default ko")
	}
}

func TestTranslations(t *testing.T) {
	if T("en", "required") != "Required" {
		t.Fatalf("expected Required")
	}
	if T("ko", "required") != "필수 항목입니다" {
		t.Fatalf("expected ko translation")
	}
	// unknown code -> fallback to code
	if T("en", "__nope__") != "__nope__" {
		t.Fatalf("expected fallback to code")
	}
	// unknown language -> fallback to ko translation if exists
	if T("es", "total") != "합계 금액" {
		t.Fatalf("expected ko fallback for es lang")
	}
}
