package reasoning

import (
	"fmt"
	"strings"

	"github.com/casetrace/casetrace/pkg/models"
)

// sentencePairs are assertion/negation keyword pairs checked in both
// directions between sentences.
var sentencePairs = [][2]string{
	{"是", "不是"},
	{"有", "没有"},
	{"同意", "不同意"},
	{"认可", "不认可"},
	{"支付", "未支付"},
	{"收到", "未收到"},
}

// evidencePairs are checked one direction only over lowercased descriptions.
var evidencePairs = [][2]string{
	{"是", "不是"},
	{"存在", "不存在"},
	{"真实", "虚假"},
	{"正确", "错误"},
}

// detectConflicts finds pairwise fact contradictions between sentences and
// pairwise contradictions between evidence descriptions. Indices in the
// findings refer to sentence order and to the caller's evidence slice.
func detectConflicts(text string, evidences []models.Evidence) models.ConflictAnalysis {
	analysis := models.ConflictAnalysis{
		FactConflicts:     detectFactConflicts(text),
		EvidenceConflicts: make([]models.EvidenceConflict, 0),
	}
	if len(evidences) > 0 {
		analysis.EvidenceConflicts = detectEvidenceConflicts(evidences)
	}
	analysis.TotalConflicts = len(analysis.FactConflicts) + len(analysis.EvidenceConflicts)
	return analysis
}

func detectFactConflicts(text string) []models.FactConflict {
	conflicts := make([]models.FactConflict, 0)

	sentences := make([]string, 0)
	for _, s := range strings.Split(text, "。") {
		if s = strings.TrimSpace(s); s != "" {
			sentences = append(sentences, s)
		}
	}

	for i := 0; i < len(sentences); i++ {
		for j := i + 1; j < len(sentences); j++ {
			if !sentencesContradict(sentences[i], sentences[j]) {
				continue
			}
			conflicts = append(conflicts, models.FactConflict{
				Type: "fact",
				Description: fmt.Sprintf("事实矛盾: '%s' 与 '%s' 可能存在矛盾",
					sentences[i], sentences[j]),
				Severity:  models.SeverityMedium,
				Sentences: []int{i, j},
			})
		}
	}

	return conflicts
}

func detectEvidenceConflicts(evidences []models.Evidence) []models.EvidenceConflict {
	conflicts := make([]models.EvidenceConflict, 0)

	for i := 0; i < len(evidences); i++ {
		for j := i + 1; j < len(evidences); j++ {
			if !evidenceContradicts(evidences[i], evidences[j]) {
				continue
			}
			conflicts = append(conflicts, models.EvidenceConflict{
				Type: "evidence",
				Description: fmt.Sprintf("证据矛盾: %s 与 %s 可能存在矛盾",
					evidences[i].Name, evidences[j].Name),
				Severity:  models.SeverityHigh,
				Evidences: []int{i, j},
			})
		}
	}

	return conflicts
}

func sentencesContradict(s1, s2 string) bool {
	for _, pair := range sentencePairs {
		if strings.Contains(s1, pair[0]) && strings.Contains(s2, pair[1]) {
			return true
		}
		if strings.Contains(s1, pair[1]) && strings.Contains(s2, pair[0]) {
			return true
		}
	}
	return false
}

func evidenceContradicts(ev1, ev2 models.Evidence) bool {
	desc1 := strings.ToLower(ev1.Description)
	desc2 := strings.ToLower(ev2.Description)
	for _, pair := range evidencePairs {
		if strings.Contains(desc1, pair[0]) && strings.Contains(desc2, pair[1]) {
			return true
		}
	}
	return false
}
