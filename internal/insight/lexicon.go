package insight

// Aspect names used as keys in the aspect analysis output.
const (
	AspectQuality   = "quality"
	AspectPrice     = "price"
	AspectDelivery  = "delivery"
	AspectService   = "service"
	AspectPackaging = "packaging"
)

// AspectDef binds an aspect name to the comment keywords that attribute a
// review to it.
type AspectDef struct {
	Name     string
	Keywords []string
}

// ThemeDef binds a narrative theme label to its detection keywords. Themes
// overlap with aspects in intent but carry display labels for composing the
// rule-based narrative.
type ThemeDef struct {
	Label    string
	Keywords []string
}

// Lexicon is the language data the engine works with: stopwords for keyword
// extraction, the aspect taxonomy, and the narrative theme taxonomy. It is
// injected into the engine so tests can substitute smaller fixtures.
type Lexicon struct {
	Stopwords map[string]struct{}
	Aspects   []AspectDef
	Themes    []ThemeDef
}

// DefaultLexicon returns the production Vietnamese lexicon.
func DefaultLexicon() Lexicon {
	stopwords := []string{
		// Function words.
		"và", "là", "của", "có", "cho", "với", "này", "kia", "thì", "mà",
		"rất", "quá", "lắm", "cũng", "được", "không", "các", "những", "một",
		"tôi", "mình", "bạn", "nên", "đã", "sẽ", "khi", "như", "về", "nhưng",
		"vì", "nữa", "vào", "lên", "còn", "hơn", "nhiều", "thấy", "luôn",
		// Domain-generic nouns that carry no signal in a review corpus.
		"sản", "phẩm", "hàng", "mua", "bán", "shop", "dùng", "đặt",
	}

	sw := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		sw[w] = struct{}{}
	}

	return Lexicon{
		Stopwords: sw,
		Aspects: []AspectDef{
			{Name: AspectQuality, Keywords: []string{"chất lượng", "bền", "đẹp", "xịn", "tốt", "chắc chắn", "hoàn thiện"}},
			{Name: AspectPrice, Keywords: []string{"giá", "rẻ", "đắt", "tiền", "hời"}},
			{Name: AspectDelivery, Keywords: []string{"giao hàng", "giao", "ship", "vận chuyển"}},
			{Name: AspectService, Keywords: []string{"dịch vụ", "phục vụ", "tư vấn", "hỗ trợ", "nhiệt tình", "phản hồi"}},
			{Name: AspectPackaging, Keywords: []string{"đóng gói", "gói hàng", "bao bì", "hộp", "bọc"}},
		},
		Themes: []ThemeDef{
			{Label: "chất lượng", Keywords: []string{"chất lượng", "bền", "xịn", "tốt", "chắc chắn", "hoàn thiện"}},
			{Label: "giá cả", Keywords: []string{"giá", "rẻ", "đắt", "hời", "đáng tiền"}},
			{Label: "giao hàng", Keywords: []string{"giao", "ship", "vận chuyển", "nhanh", "chậm", "trễ"}},
			{Label: "dịch vụ", Keywords: []string{"dịch vụ", "phục vụ", "tư vấn", "nhiệt tình", "hỗ trợ", "phản hồi"}},
			{Label: "đóng gói", Keywords: []string{"đóng gói", "gói hàng", "bao bì", "hộp", "bọc"}},
		},
	}
}
