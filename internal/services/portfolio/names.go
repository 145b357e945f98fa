package portfolio

import (
	"regexp"
	"strings"

	"github.com/nyontakai/Asset-Cockpit/internal/common"
	"github.com/nyontakai/Asset-Cockpit/internal/models"
)

// defaultNameOverrides is the curated display-name table. Overrides win over
// anything the provider reports. Extendable via portfolio.name_overrides in
// the config file.
var defaultNameOverrides = map[string]string{
	"4661.T": "オリエンタルランド",
	"8593.T": "三菱HCキャピタル",
	"9433.T": "KDDI",
	"7203.T": "トヨタ自動車",
	"6758.T": "ソニーグループ",
	"9984.T": "ソフトバンクグループ",
	"8306.T": "三菱UFJフィナンシャルG",
	"8316.T": "三井住友FG",
	"8411.T": "みずほFG",
	"4063.T": "信越化学工業",
	"8031.T": "三井物産",
	"8766.T": "東京海上HD",
	"2914.T": "日本たばこ産業",
	"6098.T": "リクルートHD",
	"4502.T": "武田薬品工業",
	"6954.T": "ファナック",
	"7974.T": "任天堂",
	"9022.T": "JR東海",
	"6367.T": "ダイキン工業",
	"9513.T": "電源開発 (J-POWER)",
	"8058.T": "三菱商事",
	"8001.T": "伊藤忠商事",
	"9432.T": "日本電信電話",
	"7267.T": "本田技研工業",
	"6501.T": "日立製作所",
	"7751.T": "キヤノン",
	"8035.T": "東京エレクトロン",
}

// defaultRemovals is the corporate-entity boilerplate stripped from raw
// provider names. Mostly aimed at the English renderings of Japanese
// company names.
var defaultRemovals = []string{
	"Corporation", "Corp", "Company", "Co., Ltd", "Co.,Ltd", "Limited", "Ltd",
	"Holdings", "Group", "K.K.", "Inc", "Incorporated", "International", "Solutions",
	"Systems", "Industries", "Manufacturing", "Energy", "Electric", "Electronic",
	"Stock", "Exchange", "Global", "Partners", "Technology", "Technologies",
	"Service", "Services", "Park", "Japan", "Real", "Estate",
}

var multiSpace = regexp.MustCompile(`\s{2,}`)

// Namer produces clean, locale-appropriate display names for tickers.
// Best-effort cosmetic transform: not guaranteed unique or stable across
// provider updates.
type Namer struct {
	overrides map[string]string
	removals  []*regexp.Regexp
}

// NewNamer builds a Namer from the built-in tables plus any configured
// extensions.
func NewNamer(config common.PortfolioConfig) *Namer {
	overrides := make(map[string]string, len(defaultNameOverrides)+len(config.NameOverrides))
	for k, v := range defaultNameOverrides {
		overrides[k] = v
	}
	for k, v := range config.NameOverrides {
		overrides[k] = v
	}

	words := append(append([]string{}, defaultRemovals...), config.ExtraRemovals...)
	removals := make([]*regexp.Regexp, 0, len(words))
	for _, word := range words {
		removals = append(removals, removalPattern(word))
	}

	return &Namer{overrides: overrides, removals: removals}
}

// removalPattern compiles a case-insensitive word-boundary matcher for one
// boilerplate word. Periods inside the word are optional ("Co., Ltd" also
// matches "Co, Ltd"), and a trailing period is consumed ("Inc." as well as
// "Inc").
func removalPattern(word string) *regexp.Regexp {
	quoted := regexp.QuoteMeta(word)
	quoted = strings.ReplaceAll(quoted, `\.`, `\.?`)
	return regexp.MustCompile(`(?i)\b` + quoted + `\b\.?`)
}

// DisplayName resolves the display name for a ticker: curated override,
// else cleaned long name, else cleaned short name, else the raw ticker id.
func (n *Namer) DisplayName(ticker string, meta *models.Metadata) string {
	if name, ok := n.overrides[ticker]; ok {
		return name
	}

	raw := meta.LongName
	if raw == "" {
		raw = meta.ShortName
	}
	if raw == "" {
		return ticker
	}

	cleaned := raw
	for _, re := range n.removals {
		cleaned = strings.TrimSpace(re.ReplaceAllString(cleaned, ""))
	}

	// Tokyo listings get their English-transliteration punctuation removed
	// as well; other markets keep theirs.
	if models.IsTokyoTicker(ticker) {
		cleaned = strings.ReplaceAll(cleaned, "&", "")
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	}

	cleaned = strings.TrimSpace(multiSpace.ReplaceAllString(cleaned, " "))
	if cleaned == "" {
		return ticker
	}
	return cleaned
}
