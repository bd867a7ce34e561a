package i18n

import "strings"

// Supported languages. Korean is the product's home market and the default.
const DefaultLang = "ko"

var translations = map[string]map[string]string{
	"ko": {
		"quote":              "견 적 서",
		"quote.rental":       "견 적 서 (Rental)",
		"quote.purchase":     "견 적 서 (Purchase)",
		"quote.rental.sub":   "렌탈 서비스 견적 제안",
		"quote.purchase.sub": "구매 견적 제안",
		"to":                 "수신처",
		"from":               "발신처",
		"manager":            "매니저",
		"item":               "품목",
		"item.placeholder":   "품목명",
		"no_specs":           "스펙 정보 없음",
		"monthly":            "월 렌탈료",
		"price":              "단가",
		"qty":                "수량",
		"term":               "기간(월)",
		"amount":             "금액",
		"subtotal":           "소계",
		"tax":                "세액",
		"tax.visual":         "(표시 전용)",
		"total":              "합계 금액",
		"validity_note":      "* 견적 유효기간: 발행일로부터 14일",
		"vat_note":           "* 부가세(VAT) 별도 기준",
		"note.validity":      "1. 본 견적서는 발행일로부터 14일간 유효합니다.",
		"note.payment":       "2. 결제 조건: 협의 가능.",
		"signature":          "(서명 또는 날인)",
		"official_proposal":  "공식 제안서",
		"required":           "필수 항목입니다",
		"not_found":          "찾을 수 없습니다",
		"saved":              "저장되었습니다",
		"library.saved":      "라이브러리에 저장되었습니다",
		"nav.dashboard":      "대시보드",
		"nav.login":          "로그인",
		"nav.signup":         "회원가입",
		"nav.logout":         "로그아웃",
		"field.name":         "이름",
		"field.password":     "비밀번호",
		"field.title":        "제목",
		"field.status":       "상태",
		"landing.title":      "모두의 견적서",
		"landing.tagline":    "팀 단위로 견적서를 작성하고 공유하세요.",
		"dash.teams":         "내 팀",
		"dash.no_teams":      "소속된 팀이 없습니다.",
		"dash.projects":      "프로젝트",
		"dash.quotes":        "견적서",
		"dash.products":      "제품",
		"dash.recent":        "최근 견적서",
	},
	"en": {
		"quote":              "QUOTATION",
		"quote.rental":       "QUOTATION (Rental)",
		"quote.purchase":     "QUOTATION (Purchase)",
		"quote.rental.sub":   "Rental Service Proposal",
		"quote.purchase.sub": "Purchase Proposal",
		"to":                 "Recipient",
		"from":               "Supplier",
		"manager":            "Manager",
		"item":               "Item",
		"item.placeholder":   "Item name",
		"no_specs":           "No specifications",
		"monthly":            "Monthly",
		"price":              "Unit Price",
		"qty":                "Qty",
		"term":               "Term (months)",
		"amount":             "Amount",
		"subtotal":           "Subtotal",
		"tax":                "Tax",
		"tax.visual":         "(Visual Only)",
		"total":              "Total Amount",
		"validity_note":      "* This quotation is valid for 14 days from issue.",
		"vat_note":           "* VAT not included.",
		"note.validity":      "1. This quotation is valid for 14 days.",
		"note.payment":       "2. Payment terms: Negotiable.",
		"signature":          "(Authorized Signature)",
		"official_proposal":  "Official Proposal",
		"required":           "Required",
		"not_found":          "Not found",
		"saved":              "Saved",
		"library.saved":      "Saved to library",
		"nav.dashboard":      "Dashboard",
		"nav.login":          "Log in",
		"nav.signup":         "Sign up",
		"nav.logout":         "Log out",
		"field.name":         "Name",
		"field.password":     "Password",
		"field.title":        "Title",
		"field.status":       "Status",
		"landing.title":      "Quotes for everyone",
		"landing.tagline":    "Author and share quotations as a team.",
		"dash.teams":         "My teams",
		"dash.no_teams":      "You are not in a team yet.",
		"dash.projects":      "Projects",
		"dash.quotes":        "Quotes",
		"dash.products":      "Products",
		"dash.recent":        "Recent quotes",
	},
}

// T returns the translation for code in lang. Unknown languages fall back to
// the default language; unknown codes fall back to the code itself so missing
// entries stay visible instead of rendering blank.
func T(lang, code string) string {
	m, ok := translations[lang]
	if !ok {
		m = translations[DefaultLang]
	}
	if s, ok := m[code]; ok {
		return s
	}
	if lang != DefaultLang {
		if s, ok := translations[DefaultLang][code]; ok {
			return s
		}
	}
	return code
}

// DetectLanguage maps an Accept-Language header to a supported language.
func DetectLanguage(header string) string {
	h := strings.ToLower(strings.TrimSpace(header))
	if h == "" {
		return DefaultLang
	}
	for _, part := range strings.Split(h, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if tag == "" {
			continue
		}
		base := strings.SplitN(tag, "-", 2)[0]
		if _, ok := translations[base]; ok {
			return base
		}
	}
	return DefaultLang
}
