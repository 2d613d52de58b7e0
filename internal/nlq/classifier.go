package nlq

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/langchou/fleetquery/internal/models"
)

var (
	vehicleStatusRe = regexp.MustCompile(`status (?:of|for) (ev\d+)`)
	vehicleRiskRe   = regexp.MustCompile(`is (ev\d+) at risk of (.+)`)
	generalRiskRe   = regexp.MustCompile(`at risk of (.+)`)
	nextPeriodRe    = regexp.MustCompile(`next\s(\d+)\s(years|months|days)`)
	wordYearRe      = regexp.MustCompile(`(\w+)\s(\d{4})`)
)

// "next N months" 按每月 30 天近似，不做自然月运算
var periodDays = map[string]int{
	"years":  365,
	"months": 30,
	"days":   1,
}

// 超过该天数的时间窗口视为无法识别
const maxWindowDays = 365 * 1000

// rule 一条分类规则，match 命中即返回，不再尝试后续规则
type rule struct {
	name  string
	match func(text string) (Intent, bool)
}

// rules 按优先级排列，先匹配先生效
var rules = []rule{
	{name: "vehicle_status", match: matchVehicleStatus},
	{name: "specific_vehicle_risk", match: matchVehicleRisk},
	{name: "charge_low", match: matchKeyword("low charge", Intent{Kind: IntentChargeLevel, Tier: TierLow})},
	{name: "charge_medium", match: matchKeyword("medium charge", Intent{Kind: IntentChargeLevel, Tier: TierMedium})},
	{name: "charge_high", match: matchKeyword("high charge", Intent{Kind: IntentChargeLevel, Tier: TierHigh})},
	{name: "general_risk", match: matchGeneralRisk},
	{name: "malfunction", match: matchMalfunction},
	{name: "average_charge", match: matchKeyword("average state of charge", Intent{Kind: IntentSummary, Operation: SummaryAverageCharge})},
	{name: "fleet_health", match: matchKeyword("fleet health", Intent{Kind: IntentSummary, Operation: SummaryFleetHealth})},
}

// Rules 返回规则名称，顺序即匹配优先级
func Rules() []string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.name
	}
	return names
}

// Classify 识别问题意图，没有规则命中时返回 Unknown
func Classify(text string) Intent {
	intent, _ := ClassifyRule(text)
	return intent
}

// ClassifyRule 识别问题意图，同时返回命中的规则名称（未命中为空字符串）
func ClassifyRule(text string) (Intent, string) {
	lower := strings.ToLower(text)
	for _, r := range rules {
		if intent, ok := r.match(lower); ok {
			return intent, r.name
		}
	}
	return Unknown(), ""
}

func matchKeyword(keyword string, intent Intent) func(string) (Intent, bool) {
	return func(text string) (Intent, bool) {
		if strings.Contains(text, keyword) {
			return intent, true
		}
		return Intent{}, false
	}
}

func matchVehicleStatus(text string) (Intent, bool) {
	m := vehicleStatusRe.FindStringSubmatch(text)
	if m == nil {
		return Intent{}, false
	}
	return Intent{
		Kind:      IntentVehicleStatus,
		VehicleID: models.NormalizeVehicleID(m[1]),
	}, true
}

func matchVehicleRisk(text string) (Intent, bool) {
	m := vehicleRiskRe.FindStringSubmatch(text)
	if m == nil {
		return Intent{}, false
	}
	return Intent{
		Kind:      IntentSpecificVehicleRisk,
		VehicleID: models.NormalizeVehicleID(m[1]),
		RiskType:  cleanRiskType(m[2]),
	}, true
}

func matchGeneralRisk(text string) (Intent, bool) {
	m := generalRiskRe.FindStringSubmatch(text)
	if m == nil {
		return Intent{}, false
	}
	return Intent{
		Kind:     IntentGeneralRisk,
		RiskType: cleanRiskType(m[1]),
	}, true
}

// cleanRiskType 去掉首尾空白和末尾问号，并转为小写
func cleanRiskType(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "?")
	return strings.ToLower(strings.TrimSpace(s))
}

// matchMalfunction 故障预测问题；时间表达无法解析时返回 Unknown 且不再匹配后续规则
func matchMalfunction(text string) (Intent, bool) {
	if !strings.Contains(text, "malfunction") {
		return Intent{}, false
	}

	spec, ok := parseTimeSpec(text)
	if !ok {
		return Unknown(), true
	}
	return Intent{Kind: IntentMalfunction, Window: &spec}, true
}

// parseTimeSpec 按优先级解析时间表达:
// next month > next year > next N years|months|days > <词> <年份> > 默认 180 天
func parseTimeSpec(text string) (TimeSpec, bool) {
	if strings.Contains(text, "next month") {
		return TimeSpec{Kind: TimeNextMonth}, true
	}

	if strings.Contains(text, "next year") {
		return TimeSpec{Kind: TimeDays, Days: 365}, true
	}

	if m := nextPeriodRe.FindStringSubmatch(text); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil || n > maxWindowDays {
			return TimeSpec{}, false
		}
		days := n * periodDays[m[2]]
		if days > maxWindowDays {
			return TimeSpec{}, false
		}
		return TimeSpec{Kind: TimeDays, Days: days}, true
	}

	if m := wordYearRe.FindStringSubmatch(text); m != nil {
		year, _ := strconv.Atoi(m[2])
		if m[1] == "in" {
			return TimeSpec{Kind: TimeYear, Year: year}, true
		}
		month, ok := parseMonth(m[1])
		if !ok {
			return TimeSpec{}, false
		}
		return TimeSpec{Kind: TimeMonth, Year: year, Month: month}, true
	}

	return TimeSpec{Kind: TimeDays, Days: defaultMalfunctionDays}, true
}

// parseMonth 只接受英文月份全称，不区分大小写
func parseMonth(word string) (time.Month, bool) {
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(word, m.String()) {
			return m, true
		}
	}
	return 0, false
}
