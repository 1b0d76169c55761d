// Package extract turns free-text business requirements into a structured
// Intent using bounded keyword and regex heuristics. It has no failure mode:
// unrecognized text yields an Intent with no use cases.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	contractx "github.com/iquotehq/iquote/agent/contract"
)

const defaultBranchCount = 10

// budgetMagnitude multiplies an extracted amount when a 万/k/thousand marker
// appears anywhere in the text.
const budgetMagnitude = 10000

type useCaseKeywords struct {
	UseCase  string
	Keywords []string
}

// useCaseTable is the fixed bilingual keyword list per use-case category.
// Detection is plain lower-cased substring matching; order fixes the order of
// mentioned use cases in the Intent.
var useCaseTable = []useCaseKeywords{
	{"SD-WAN", []string{"sd-wan", "sdwan", "software defined wan", "分支连接", "广域网"}},
	{"Switching", []string{"switching", "switch", "交换机", "局域网", "lan"}},
	{"Wireless", []string{"wireless", "wi-fi", "wifi", "无线", "wifi覆盖"}},
	{"Network Security", []string{"security", "firewall", "防火墙", "网络安全", "安全"}},
	{"Access Security", []string{"access control", "nac", "访问控制", "准入控制"}},
	{"IOT Security", []string{"iot", "internet of things", "物联网", "iot安全"}},
}

// branchPatterns are tried in order; the first match wins.
var branchPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)\s*(?:个|)(?:分支|分公司|办事处|网点|分店|门店)`),
	regexp.MustCompile(`(?i)(\d+)\s*(?:branches?|offices?|sites?|locations?)`),
	regexp.MustCompile(`(?i)for\s+(\d+)\s+(?:branches?|offices?|sites?)`),
	regexp.MustCompile(`(?i)(\d+)\s*branch`),
}

var budgetPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:预算|budget|cost).*?(\d+(?:\.\d+)?)\s*(?:万|k|thousand)`),
	regexp.MustCompile(`(?i)(?:预算|budget|cost).*?(\d+(?:\.\d+)?)\s*(?:万元|万人民币)`),
	regexp.MustCompile(`(?i)budget\s*(?:of|is|:)?\s*\$?(\d+(?:,\d+)*(?:\.\d+)?)`),
	regexp.MustCompile(`(?i)(\d+(?:,\d+)*(?:\.\d+)?)\s*(?:dollar|usd|rmb|yuan)`),
}

type Service struct{}

func New() *Service {
	return &Service{}
}

var _ contractx.Extractor = (*Service)(nil)

func (s *Service) Extract(text string) contractx.Intent {
	return contractx.Intent{
		UseCases:    detectUseCases(text),
		BranchCount: extractBranchCount(text),
		Budget:      extractBudget(text),
	}
}

func detectUseCases(text string) []string {
	lower := strings.ToLower(text)

	var mentioned []string
	for _, entry := range useCaseTable {
		for _, keyword := range entry.Keywords {
			if strings.Contains(lower, keyword) {
				mentioned = append(mentioned, entry.UseCase)
				break
			}
		}
	}
	return mentioned
}

func extractBranchCount(text string) int {
	for _, pattern := range branchPatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		count, err := strconv.Atoi(match[1])
		if err != nil || count <= 0 {
			continue
		}
		return count
	}
	return defaultBranchCount
}

func extractBudget(text string) *float64 {
	for _, pattern := range budgetPatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		amount, err := strconv.ParseFloat(strings.ReplaceAll(match[1], ",", ""), 64)
		if err != nil {
			continue
		}
		if hasMagnitudeMarker(text) {
			amount *= budgetMagnitude
		}
		return &amount
	}
	return nil
}

func hasMagnitudeMarker(text string) bool {
	if strings.Contains(text, "万") {
		return true
	}
	lower := strings.ToLower(text)
	return strings.Contains(lower, "k") || strings.Contains(lower, "thousand")
}
