package tables

import "github.com/okian/astrohero/internal/domain/astro"

// SunTrait is the origin story keyed by the sun sign.
type SunTrait struct {
	Trait       string
	Origin      string
	Environment string
}

// MoonTrait is the inner motivation keyed by the moon sign.
type MoonTrait struct {
	Trait   string
	Calling string
}

// MarsTrait is the combat style keyed by the mars sign.
type MarsTrait struct {
	Trait string
	Style string
}

var sunTraits = [astro.SignCount + 1]SunTrait{
	astro.Aries:       {"勇敢無畏", "出生在戰士家族", "邊境要塞"},
	astro.Taurus:      {"堅韌不拔", "來自農牧世家", "肥沃平原"},
	astro.Gemini:      {"機智靈活", "生於商人家庭", "繁華商港"},
	astro.Cancer:      {"保護本能", "出身守護者血脈", "古老聖地"},
	astro.Leo:         {"天生領袖", "貴族世家後裔", "輝煌王都"},
	astro.Virgo:       {"完美主義", "學者世家傳人", "知識聖殿"},
	astro.Libra:       {"追求平衡", "外交官家族", "和平城邦"},
	astro.Scorpio:     {"洞察深邃", "神秘組織成員", "隱秘山谷"},
	astro.Sagittarius: {"自由探索", "遊牧民族後代", "廣闊草原"},
	astro.Capricorn:   {"堅定意志", "工匠世家子弟", "山地要塞"},
	astro.Aquarius:    {"創新思維", "發明家後裔", "魔法學院"},
	astro.Pisces:      {"直覺敏銳", "預言者血脈", "神聖湖泊"},
}

var moonTraits = [astro.SignCount + 1]MoonTrait{
	astro.Aries:       {"內在火焰", "內心燃燒的正義之火"},
	astro.Taurus:      {"穩定渴望", "對安全與穩定的深層需求"},
	astro.Gemini:      {"知識渴求", "對知識與真理的無盡追求"},
	astro.Cancer:      {"保護慾望", "保護弱者的強烈使命感"},
	astro.Leo:         {"榮耀追求", "對榮耀與認可的渴望"},
	astro.Virgo:       {"服務精神", "為他人服務的純真願望"},
	astro.Libra:       {"和諧需求", "對公正與和諧的執著"},
	astro.Scorpio:     {"轉化力量", "內在的轉化與重生力量"},
	astro.Sagittarius: {"智慧追尋", "對智慧與真理的探索"},
	astro.Capricorn:   {"成就動機", "建立持久成就的雄心"},
	astro.Aquarius:    {"改革理想", "改變世界的理想主義"},
	astro.Pisces:      {"靈性連結", "與更高存在的靈性連結"},
}

var marsTraits = [astro.SignCount + 1]MarsTrait{
	astro.Aries:       {"直接衝鋒", "總是第一個衝向敵人"},
	astro.Taurus:      {"穩健防守", "如山岳般穩固的防禦"},
	astro.Gemini:      {"靈活戰術", "變化多端的戰術運用"},
	astro.Cancer:      {"保護戰法", "優先保護隊友的戰鬥方式"},
	astro.Leo:         {"英勇表現", "在戰場上展現英勇氣概"},
	astro.Virgo:       {"精準打擊", "每一擊都精確計算"},
	astro.Libra:       {"平衡攻防", "攻守平衡的戰鬥藝術"},
	astro.Scorpio:     {"致命一擊", "等待時機給予致命打擊"},
	astro.Sagittarius: {"遠程精準", "精準的遠程攻擊"},
	astro.Capricorn:   {"持久作戰", "持久而有條理的戰鬥"},
	astro.Aquarius:    {"創新戰法", "運用創新的戰鬥技巧"},
	astro.Pisces:      {"直覺戰鬥", "憑藉直覺進行戰鬥"},
}

// DefaultTraitSign is the sign whose phrases stand in for unknown signs.
const DefaultTraitSign = astro.Aries

// SunTraitFor returns the sun phrases for s, falling back to the
// DefaultTraitSign entry (ok=false) when s is not a valid sign.
func SunTraitFor(s astro.Sign) (SunTrait, bool) {
	if !s.Valid() {
		return sunTraits[DefaultTraitSign], false
	}
	return sunTraits[s], true
}

// MoonTraitFor returns the moon phrases for s with the same fallback rule.
func MoonTraitFor(s astro.Sign) (MoonTrait, bool) {
	if !s.Valid() {
		return moonTraits[DefaultTraitSign], false
	}
	return moonTraits[s], true
}

// MarsTraitFor returns the mars phrases for s with the same fallback rule.
func MarsTraitFor(s astro.Sign) (MarsTrait, bool) {
	if !s.Valid() {
		return marsTraits[DefaultTraitSign], false
	}
	return marsTraits[s], true
}
