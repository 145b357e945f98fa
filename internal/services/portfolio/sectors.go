package portfolio

// SectorUncategorized is the rollup bucket for holdings whose provider
// sector is absent or not in the translation table.
const SectorUncategorized = "その他業種"

// sectorTranslations maps the provider's sector taxonomy to the local
// display buckets used by the sector rollup.
var sectorTranslations = map[string]string{
	"Financial Services":     "銀行・金融",
	"Healthcare":             "医薬品・ヘルスケア",
	"Technology":             "情報・通信",
	"Consumer Defensive":     "生活必需品",
	"Communication Services": "通信サービス",
	"Industrials":            "機械・工業",
	"Real Estate":            "不動産",
	"Utilities":              "電気・ガス",
	"Basic Materials":        "化学・素材",
	"Consumer Cyclical":      "一般消費財",
	"Energy":                 "エネルギー",
	"Information Technology": "情報技術",
}

// TranslateSector maps a raw provider sector to its display bucket.
func TranslateSector(raw string) string {
	if translated, ok := sectorTranslations[raw]; ok {
		return translated
	}
	return SectorUncategorized
}
